// Package history follows marker comments of one file through its git log.
package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phyten/what2do/internal/ctxlog"
	"github.com/phyten/what2do/internal/execx"
	"github.com/phyten/what2do/internal/gitremote"
	"github.com/phyten/what2do/internal/link"
	"github.com/phyten/what2do/internal/matcher"
)

// Commit describes one commit that touched the tracked file.
type Commit struct {
	Hash    string    `json:"hash"`
	Author  string    `json:"author"`
	Email   string    `json:"email"`
	Date    time.Time `json:"date"`
	Subject string    `json:"subject"`
	Path    string    `json:"path"`             // path of the file in this commit, relative to the repo root
	Status  string    `json:"status,omitempty"` // name-status letter (A, M, R, D, ...)
	URL     string    `json:"url,omitempty"`
}

// Status of a marker between two consecutive versions.
type Status string

const (
	Added   Status = "added"
	Removed Status = "removed"
)

// Change is one marker that appeared or disappeared in a commit.
type Change struct {
	Status  Status `json:"status"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
	// Line is the marker's line in the version where it was last present:
	// the commit itself for additions, the previous version for removals.
	Line    int    `json:"line"`
	URL     string `json:"url,omitempty"`
}

// Entry groups the changes introduced by a single commit.
type Entry struct {
	Commit  Commit   `json:"commit"`
	Changes []Change `json:"changes"`
}

// Track returns, oldest commit first, the markers each commit added to or
// removed from file. Commits that leave the set of markers untouched are
// omitted. A file outside any git repository yields no entries and no error.
//
// When remote (default "origin") resolves to a browsable host, commits and
// changes carry links to it.
func Track(ctx context.Context, runner execx.Runner, m *matcher.Matcher, file, remote string) ([]Entry, error) {
	if m == nil {
		return nil, errors.New("history: nil matcher")
	}
	if runner == nil {
		runner = execx.DefaultRunner()
	}
	log := ctxlog.FromContext(ctx)

	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("history: %s is a directory", file)
	}

	out, err := execx.Output(ctx, runner, filepath.Dir(abs), "git", rootArgs()...)
	if err != nil {
		if execx.IsNotFound(err) || ctx.Err() != nil {
			return nil, err
		}
		log.Debug("not inside a git repository", "file", file, "err", err)
		return nil, nil
	}
	root := strings.TrimSpace(string(out))
	rel, err := repoRelative(root, abs)
	if err != nil {
		return nil, err
	}

	out, err = execx.Output(ctx, runner, root, "git", logArgs(rel)...)
	if err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}
	commits, err := parseLog(string(out), rel)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded file history", "file", rel, "commits", len(commits))

	remoteInfo, err := gitremote.Detect(ctx, runner, root, remote)
	linked := err == nil
	if !linked {
		log.Debug("commit links disabled", "err", err)
	}

	var (
		entries []Entry
		prev    []marker
		prevC   Commit
	)
	for i := len(commits) - 1; i >= 0; i-- {
		c := commits[i]
		var current []marker
		if c.Status != "D" {
			content, err := execx.Output(ctx, runner, root, "git", showArgs(c.Hash, c.Path)...)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				log.Debug("skipping commit", "commit", c.Hash, "path", c.Path, "err", err)
				continue
			}
			current = extract(m, string(content))
		}
		changes := diff(prev, current)
		if linked {
			c.URL = link.Commit(remoteInfo, c.Hash)
			for j := range changes {
				at := c
				if changes[j].Status == Removed {
					at = prevC
				}
				changes[j].URL = link.Blob(remoteInfo, at.Hash, at.Path, changes[j].Line)
			}
		}
		prev, prevC = current, c
		if len(changes) == 0 {
			continue
		}
		entries = append(entries, Entry{Commit: c, Changes: changes})
	}
	return entries, nil
}

func repoRelative(root, abs string) (string, error) {
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		realRoot = root
	}
	realFile, err := filepath.EvalSymlinks(abs)
	if err != nil {
		realFile = abs
	}
	rel, err := filepath.Rel(realRoot, realFile)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("history: %s is outside repository %s", abs, root)
	}
	return filepath.ToSlash(rel), nil
}

type markerKey struct {
	tag     string
	message string
}

type marker struct {
	markerKey
	line int
}

// extract returns the distinct markers of content in order of first appearance.
func extract(m *matcher.Matcher, content string) []marker {
	var out []marker
	seen := make(map[markerKey]struct{})
	for i, line := range strings.Split(content, "\n") {
		hit, ok := m.Match(strings.TrimRight(line, "\r"))
		if !ok {
			continue
		}
		k := markerKey{tag: hit.Tag, message: hit.Message}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, marker{markerKey: k, line: i + 1})
	}
	return out
}

// diff lists markers new in cur (in cur order) followed by markers gone
// from prev (in prev order).
func diff(prev, cur []marker) []Change {
	in := func(list []marker, k marker) bool {
		for _, v := range list {
			if v.markerKey == k.markerKey {
				return true
			}
		}
		return false
	}
	var out []Change
	for _, k := range cur {
		if !in(prev, k) {
			out = append(out, Change{Status: Added, Tag: k.tag, Message: k.message, Line: k.line})
		}
	}
	for _, k := range prev {
		if !in(cur, k) {
			out = append(out, Change{Status: Removed, Tag: k.tag, Message: k.message, Line: k.line})
		}
	}
	return out
}
