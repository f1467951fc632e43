package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/phyten/what2do/internal/model"
	"github.com/phyten/what2do/internal/progress"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("ディレクトリの作成に失敗しました: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("ファイルの作成に失敗しました: %v", err)
		}
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// 発見内容のみを比較する (時刻などの付随情報は除外)
var coreFields = cmpopts.IgnoreFields(model.Finding{}, "Column", "Text", "Context", "Scope", "Lang", "Modified", "Owner")

func TestRunPythonExample(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.py": "import os\n\n# TODO: fix this\nprint(os.getcwd())\n",
	})
	chdir(t, root)

	res, err := Run(context.Background(), Options{Roots: []string{"."}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := []model.Finding{{File: "a.py", Line: 3, Tag: "TODO", Message: "fix this"}}
	if diff := cmp.Diff(want, res.Findings, coreFields); diff != "" {
		t.Fatalf("findings mismatch (-want +got):\n%s", diff)
	}
	got := res.Findings[0]
	if got.Lang != "python" || got.Scope != "main" || got.Context != "" || got.Column != 3 {
		t.Fatalf("descriptive fields unexpected: %+v", got)
	}
	if got.Modified.IsZero() {
		t.Fatal("Modified should carry the file mtime")
	}
	if res.Files != 1 || res.Total != 1 || res.ErrorCount != 0 {
		t.Fatalf("unexpected counters: files=%d total=%d errors=%d", res.Files, res.Total, res.ErrorCount)
	}
}

func TestRunOrdersFindingsByDiscovery(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"b.go":       "package b\n// FIXME: second file\n",
		"a.go":       "package a\n\n// TODO first\n// HACK(bob): later line\n",
		"sub/c.sh":   "#!/bin/sh\necho hi # XXX shell\n",
		"notes.txt":  "nothing here\n",
		"sub/d.todo": "todolist is not a tag\n",
	})

	res, err := Run(context.Background(), Options{Roots: []string{root}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := []model.Finding{
		{File: filepath.Join(root, "a.go"), Line: 3, Tag: "TODO", Message: "first"},
		{File: filepath.Join(root, "a.go"), Line: 4, Tag: "HACK", Message: "later line"},
		{File: filepath.Join(root, "b.go"), Line: 2, Tag: "FIXME", Message: "second file"},
		{File: filepath.Join(root, "sub", "c.sh"), Line: 2, Tag: "XXX", Message: "shell"},
	}
	if diff := cmp.Diff(want, res.Findings, coreFields); diff != "" {
		t.Fatalf("findings mismatch (-want +got):\n%s", diff)
	}
	if res.Findings[1].Owner != "bob" {
		t.Fatalf("owner not captured: %+v", res.Findings[1])
	}
	if res.Findings[1].Context != "// TODO first" {
		t.Fatalf("context should be the previous line, got %q", res.Findings[1].Context)
	}
	if res.Files != 5 {
		t.Fatalf("Files = %d, want 5", res.Files)
	}

	again, err := Run(context.Background(), Options{Roots: []string{root}})
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if diff := cmp.Diff(res.Findings, again.Findings); diff != "" {
		t.Fatalf("repeated scans differ (-first +second):\n%s", diff)
	}
}

func TestRunOverlappingRootsReportOnce(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"sub/a.go": "// TODO: once\n"})
	chdir(t, root)

	res, err := Run(context.Background(), Options{Roots: []string{".", ".", "sub"}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := []model.Finding{{File: filepath.Join("sub", "a.go"), Line: 1, Tag: "TODO", Message: "once"}}
	if diff := cmp.Diff(want, res.Findings, coreFields); diff != "" {
		t.Fatalf("重複した発見があります (-want +got):\n%s", diff)
	}
	if res.Files != 1 {
		t.Fatalf("Files = %d, want 1", res.Files)
	}
}

func TestRunScope(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"m.py": "# TODO: top level\nclass Box:\n    def open(self):\n        # FIXME: leaks\n        pass\n",
	})
	res, err := Run(context.Background(), Options{Roots: []string{root}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Findings) != 2 {
		t.Fatalf("expected 2 findings, got %+v", res.Findings)
	}
	if res.Findings[0].Scope != "main" {
		t.Fatalf("first scope = %q, want main", res.Findings[0].Scope)
	}
	if res.Findings[1].Scope != "def open(self):" {
		t.Fatalf("second scope = %q", res.Findings[1].Scope)
	}
}

func TestRunSkipsBinaryAndOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"bin.dat":  "TODO: hidden\x00\x01\x02",
		"big.txt":  "# TODO: too big " + strings.Repeat("x", 200) + "\n",
		"good.txt": "# TODO: visible\n",
	})

	res, err := Run(context.Background(), Options{Roots: []string{root}, MaxFileBytes: 100})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Findings) != 1 || res.Findings[0].Message != "visible" {
		t.Fatalf("expected only the text file finding, got %+v", res.Findings)
	}
	want := []ItemError{
		{File: filepath.Join(root, "big.txt"), Stage: StageSize},
		{File: filepath.Join(root, "bin.dat"), Stage: StageDecode},
	}
	if diff := cmp.Diff(want, res.Errors, cmpopts.IgnoreFields(ItemError{}, "Message")); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if res.ErrorCount != 2 {
		t.Fatalf("ErrorCount = %d, want 2", res.ErrorCount)
	}
}

func TestRunCommentsOnly(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"main.go": "package main\n\nvar s = \"TODO: in a string\"\n\n// TODO: in a comment\n",
	})
	all, err := Run(context.Background(), Options{Roots: []string{root}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(all.Findings) != 2 {
		t.Fatalf("expected both lines without comments-only, got %+v", all.Findings)
	}

	res, err := Run(context.Background(), Options{Roots: []string{root}, CommentsOnly: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Findings) != 1 || res.Findings[0].Line != 5 {
		t.Fatalf("expected only the comment line, got %+v", res.Findings)
	}
}

func TestRunFiltersAndTags(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.py":         "# NOTE: custom\n# TODO: default\n",
		"b.rb":         "# NOTE: ruby\n",
		"gen/c.py":     "# NOTE: generated\n",
		"vendor/d.py":  "# NOTE: vendored\n",
		".hidden/e.py": "# NOTE: hidden\n",
	})
	res, err := Run(context.Background(), Options{
		Roots:          []string{root},
		Extensions:     []string{"py"},
		Excludes:       []string{"gen/"},
		Tags:           []string{"note"},
		ExcludeTypical: true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := []model.Finding{{File: filepath.Join(root, "a.py"), Line: 1, Tag: "NOTE", Message: "custom"}}
	if diff := cmp.Diff(want, res.Findings, coreFields); diff != "" {
		t.Fatalf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestRunLanguageFilter(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.py":     "# TODO: python\n",
		"b.go":     "// TODO: go\n",
		"tool":     "#!/usr/bin/env python3\n# FIXME: shebang\n",
		"big.js":   "// TODO: " + strings.Repeat("x", 200) + "\n",
		"notes.md": "TODO: markdown\n",
	})
	res, err := Run(context.Background(), Options{Roots: []string{root}, Langs: []string{"py"}, MaxFileBytes: 100})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := []model.Finding{
		{File: filepath.Join(root, "a.py"), Line: 1, Tag: "TODO", Message: "python"},
		{File: filepath.Join(root, "tool"), Line: 2, Tag: "FIXME", Message: "shebang"},
	}
	if diff := cmp.Diff(want, res.Findings, coreFields); diff != "" {
		t.Fatalf("findings mismatch (-want +got):\n%s", diff)
	}
	if res.Files != 2 || res.ErrorCount != 0 {
		t.Fatalf("除外された言語のファイルは数えない: files=%d errors=%+v", res.Files, res.Errors)
	}
}

func TestRunEmptyTree(t *testing.T) {
	res, err := Run(context.Background(), Options{Roots: []string{t.TempDir()}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Findings) != 0 || res.Total != 0 || res.Files != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestRunMissingRootFailsBeforeScanning(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.py": "# TODO: never read\n"})
	chdir(t, root)

	res, err := Run(context.Background(), Options{Roots: []string{"a.py", "./nonexistent"}})
	if res != nil {
		t.Fatalf("no result expected on fatal error, got %+v", res)
	}
	var rnf *RootNotFoundError
	if !errors.As(err, &rnf) {
		t.Fatalf("expected RootNotFoundError, got %v", err)
	}
	if rnf.Path != "./nonexistent" {
		t.Fatalf("unexpected path %q", rnf.Path)
	}
}

func TestRunRejectsInvalidTags(t *testing.T) {
	if _, err := Run(context.Background(), Options{Roots: []string{t.TempDir()}, Tags: []string{"TO DO"}}); err == nil {
		t.Fatal("expected error for invalid tag")
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.py": "# TODO: x\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, Options{Roots: []string{root}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunPublishesProgress(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.py": "# TODO: one\n",
		"b.py": "# FIXME: two\n# HACK: three\n",
	})
	var done []progress.Snapshot
	obs := &recordingObserver{onDone: func(s progress.Snapshot) { done = append(done, s) }}
	if _, err := Run(context.Background(), Options{Roots: []string{root}, Progress: obs}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(done) != 1 {
		t.Fatalf("Done は 1 回だけ呼ばれるべきです: %d", len(done))
	}
	if done[0].Files != 2 || done[0].Findings != 3 {
		t.Fatalf("最終スナップショットが一致しません: %+v", done[0])
	}
}

type recordingObserver struct {
	onDone func(progress.Snapshot)
}

func (r *recordingObserver) Publish(progress.Snapshot) {}

func (r *recordingObserver) Done(s progress.Snapshot) { r.onDone(s) }
