package matcher

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatchRecognizesTags(t *testing.T) {
	m, err := New(DefaultTags)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	cases := map[string]struct {
		line string
		want Hit
	}{
		"hash comment with colon": {line: "# TODO: fix this", want: Hit{Tag: "TODO", Message: "fix this", Column: 3}},
		"lower case":              {line: "// todo handle errors", want: Hit{Tag: "TODO", Message: "handle errors", Column: 4}},
		"fixme with dash":         {line: "x := 1 // FIXME - overflow", want: Hit{Tag: "FIXME", Message: "overflow", Column: 11}},
		"owner":                   {line: "// TODO(alice): rename", want: Hit{Tag: "TODO", Owner: "alice", Message: "rename", Column: 4}},
		"block closer trimmed":    {line: "/* HACK: temporary */", want: Hit{Tag: "HACK", Message: "temporary", Column: 4}},
		"html closer trimmed":     {line: "<!-- XXX check layout -->", want: Hit{Tag: "XXX", Message: "check layout", Column: 6}},
		"empty message":           {line: "# TODO", want: Hit{Tag: "TODO", Message: "", Column: 3}},
		"tag at line start":       {line: "TODO: plain text", want: Hit{Tag: "TODO", Message: "plain text", Column: 1}},
		"first tag wins":          {line: "# FIXME and TODO", want: Hit{Tag: "FIXME", Message: "and TODO", Column: 3}},
		"long option kept":        {line: "// TODO --force should warn", want: Hit{Tag: "TODO", Message: "--force should warn", Column: 4}},
		"negative number kept":    {line: "# TODO:-1 is off by one", want: Hit{Tag: "TODO", Message: "-1 is off by one", Column: 3}},
		"only one separator":      {line: "# TODO: - item", want: Hit{Tag: "TODO", Message: "- item", Column: 3}},
		"colon run kept":          {line: "# TODO:: scope", want: Hit{Tag: "TODO", Message: ": scope", Column: 3}},
		"owner then dash":         {line: "// FIXME(bob) - leaks", want: Hit{Tag: "FIXME", Owner: "bob", Message: "leaks", Column: 4}},
		"trailing number kept":    {line: "# TODO 2 more", want: Hit{Tag: "TODO", Message: "2 more", Column: 3}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := m.Match(tc.line)
			if !ok {
				t.Fatalf("expected a match for %q", tc.line)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("hit mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatchRequiresWholeWord(t *testing.T) {
	m, err := New(DefaultTags)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	lines := []string{
		"",
		"nothing to see here",
		"var todos = list()",
		"mastodon := 1",
		"// TODOS are plural",
		"call(TODO_LIST)",
		"fixmes := 0",
		"hex := 0xxxxf",
		"hackathon planning",
		"TODO² superscript",
		"²TODO superscript",
		"TODO٣ arabic digit",
	}
	for _, line := range lines {
		if hit, ok := m.Match(line); ok {
			t.Fatalf("unexpected match for %q: %+v", line, hit)
		}
	}
}

func TestMatchSkipsEmbeddedOccurrenceAndFindsLaterOne(t *testing.T) {
	m, err := New([]string{"TODO"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	hit, ok := m.Match("TODOLIST then // TODO: real one")
	if !ok {
		t.Fatal("expected the standalone tag to match")
	}
	if hit.Message != "real one" || hit.Column != 18 {
		t.Fatalf("unexpected hit: %+v", hit)
	}
}

func TestMatchHonorsConfiguredTags(t *testing.T) {
	m, err := New([]string{" note ", "NOTE", "todo"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if diff := cmp.Diff([]string{"NOTE", "TODO"}, m.Tags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if _, ok := m.Match("# FIXME: not configured"); ok {
		t.Fatal("FIXME should not match when not configured")
	}
	hit, ok := m.Match("# Note: configured")
	if !ok || hit.Tag != "NOTE" {
		t.Fatalf("expected NOTE hit, got %+v ok=%v", hit, ok)
	}
}

func TestCommentsOnly(t *testing.T) {
	base, err := New(DefaultTags)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	m := base.Restrict([]string{"//", "", "/*"})
	if _, ok := m.Match(`msg := "TODO: not a comment"`); ok {
		t.Fatal("tag before any comment token should not match")
	}
	if hit, ok := m.Match(`call() // TODO: inside comment`); !ok || hit.Message != "inside comment" {
		t.Fatalf("expected comment match, got %+v ok=%v", hit, ok)
	}
	if hit, ok := m.Match(`   * FIXME: block continuation`); !ok || hit.Tag != "FIXME" {
		t.Fatalf("expected block continuation match, got %+v ok=%v", hit, ok)
	}
}

func TestRestrictKeepsOriginal(t *testing.T) {
	base, err := New(DefaultTags)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	restricted := base.Restrict([]string{"#"})
	if _, ok := restricted.Match("TODO outside"); ok {
		t.Fatal("restricted matcher should need a comment token")
	}
	if _, ok := base.Match("TODO outside"); !ok {
		t.Fatal("base matcher should be unaffected by Restrict")
	}
	if base.Restrict(nil) != base {
		t.Fatal("Restrict(nil) should return the receiver")
	}
}

func TestNewRejectsEmptyTags(t *testing.T) {
	if _, err := New([]string{" ", ""}); err == nil {
		t.Fatal("expected error for empty tag list")
	}
	if _, err := New([]string{"TO DO"}); err == nil {
		t.Fatal("expected error for tag containing whitespace")
	}
}
