// Package matcher recognizes marker tags such as TODO or FIXME on a single
// line of text and extracts the message that follows them.
package matcher

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultTags is used when no tags are configured.
var DefaultTags = []string{"TODO", "FIXME", "XXX", "HACK"}

var errNoTags = errors.New("no marker tags configured")

// trailing tokens that close a block comment on the same line
var blockClosers = []string{"--}}", "-->", "*/", "#}", "-}", "#>", "*)"}

// Hit is the part of a finding the matcher can derive from one line.
type Hit struct {
	Tag     string
	Owner   string
	Message string
	// Column is the 1-based byte offset of the tag within the line.
	Column int
}

// Matcher is immutable after New and safe for concurrent use.
type Matcher struct {
	tags      []string
	canonical map[string]string
	re        *regexp.Regexp
	prefixes  []string
}

// New compiles a matcher for tags. Tags are compared case-insensitively and
// reported in upper case.
func New(tags []string) (*Matcher, error) {
	canon, err := NormalizeTags(tags)
	if err != nil {
		return nil, err
	}
	m := &Matcher{
		tags:      canon,
		canonical: make(map[string]string, len(canon)),
	}
	for _, tag := range canon {
		m.canonical[tag] = tag
	}

	alts := append([]string(nil), canon...)
	sort.SliceStable(alts, func(i, j int) bool { return len(alts[i]) > len(alts[j]) })
	for i := range alts {
		alts[i] = regexp.QuoteMeta(alts[i])
	}
	pattern := `(?i)(?:^|[^\p{L}\p{N}_])(` + strings.Join(alts, "|") + `)(?:\(([^)\n]*)\))?`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile tag pattern: %w", err)
	}
	m.re = re
	return m, nil
}

// NormalizeTags trims, upper-cases and de-duplicates tags, keeping order.
func NormalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, raw := range tags {
		tag := strings.ToUpper(strings.TrimSpace(raw))
		if tag == "" {
			continue
		}
		if strings.ContainsFunc(tag, unicode.IsSpace) {
			return nil, fmt.Errorf("invalid tag %q: must not contain whitespace", raw)
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil, errNoTags
	}
	return out, nil
}

// Tags returns the canonical tag list.
func (m *Matcher) Tags() []string {
	return append([]string(nil), m.tags...)
}

// Restrict returns a copy of m that only matches after the given comment
// tokens. An empty prefix list returns m unchanged.
func (m *Matcher) Restrict(prefixes []string) *Matcher {
	cleaned := cleanPrefixes(prefixes)
	if len(cleaned) == 0 {
		return m
	}
	cp := *m
	cp.prefixes = cleaned
	return &cp
}

// Match reports the first recognized tag on line.
func (m *Matcher) Match(line string) (Hit, bool) {
	from := 0
	if len(m.prefixes) > 0 {
		from = commentStart(line, m.prefixes)
		if from < 0 {
			return Hit{}, false
		}
	}
	for _, loc := range m.re.FindAllStringSubmatchIndex(line[from:], -1) {
		tagStart, tagEnd := from+loc[2], from+loc[3]
		end := tagEnd
		owner := ""
		if loc[4] >= 0 {
			owner = strings.TrimSpace(line[from+loc[4] : from+loc[5]])
			end = from + loc[1]
		} else if !boundaryAfter(line, tagEnd) {
			continue
		}
		matched := strings.ToUpper(line[tagStart:tagEnd])
		tag, ok := m.canonical[matched]
		if !ok {
			tag = matched
		}
		return Hit{
			Tag:     tag,
			Owner:   owner,
			Message: extractMessage(line[end:]),
			Column:  tagStart + 1,
		}, true
	}
	return Hit{}, false
}

func boundaryAfter(line string, pos int) bool {
	if pos >= len(line) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(line[pos:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func extractMessage(rest string) string {
	msg := strings.TrimSpace(rest)
	// one optional separator; a dash only counts when it stands alone so
	// "--force" or "-1" keep their leading dashes
	switch {
	case strings.HasPrefix(msg, ":"):
		msg = msg[1:]
	case msg == "-" || strings.HasPrefix(msg, "- ") || strings.HasPrefix(msg, "-\t"):
		msg = msg[1:]
	}
	msg = strings.TrimSpace(msg)
	for changed := true; changed; {
		changed = false
		for _, closer := range blockClosers {
			if strings.HasSuffix(msg, closer) {
				msg = strings.TrimSpace(strings.TrimSuffix(msg, closer))
				changed = true
			}
		}
	}
	return msg
}

// commentStart returns the byte offset just past the earliest comment token,
// or -1 when the line has none. A line starting with "*" continues a
// C-style block comment when "/*" is among the prefixes.
func commentStart(line string, prefixes []string) int {
	bestIdx, bestEnd := -1, -1
	continuation := false
	for _, p := range prefixes {
		if p == "/*" {
			continuation = true
		}
		idx := strings.Index(line, p)
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx || (idx == bestIdx && idx+len(p) > bestEnd) {
			bestIdx, bestEnd = idx, idx+len(p)
		}
	}
	if bestEnd >= 0 {
		return bestEnd
	}
	if continuation {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "*") {
			return len(line) - len(trimmed) + 1
		}
	}
	return -1
}

func cleanPrefixes(prefixes []string) []string {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
