// Package walker enumerates candidate files under one or more roots in a
// stable order, applying extension filters and gitignore-style excludes.
package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
)

const gitDir = ".git"

var typicalExcludePatterns = []string{
	"vendor/",
	"node_modules/",
	"dist/",
	"build/",
	"target/",
	"*.min.*",
}

// Options configures a Walker. Exclude patterns use gitignore syntax and are
// matched against paths relative to the root being walked.
type Options struct {
	Roots          []string
	Extensions     []string
	Excludes       []string
	ExcludeTypical bool
	Hidden         bool
	FollowSymlinks bool
	UseGitignore   bool
	// OnError receives entries that could not be read. They are skipped and
	// the traversal continues.
	OnError func(path string, err error)
}

// Walker is reusable: every Walk call performs a fresh traversal.
type Walker struct {
	roots        []string
	exts         []string
	excludes     gitignore.GitIgnore
	hidden       bool
	follow       bool
	useGitignore bool
	onError      func(string, error)
}

// New normalizes opts and compiles the exclude patterns.
func New(opts Options) (*Walker, error) {
	w := &Walker{
		roots:        cleanRoots(opts.Roots),
		exts:         NormalizeExtensions(opts.Extensions),
		hidden:       opts.Hidden,
		follow:       opts.FollowSymlinks,
		useGitignore: opts.UseGitignore,
		onError:      opts.OnError,
	}

	var patterns []string
	if opts.ExcludeTypical {
		patterns = append(patterns, typicalExcludePatterns...)
	}
	for _, raw := range opts.Excludes {
		p := strings.TrimSpace(filepath.ToSlash(raw))
		if p == "" {
			continue
		}
		patterns = append(patterns, p)
	}
	if len(patterns) > 0 {
		ig, err := compilePatterns(patterns)
		if err != nil {
			return nil, err
		}
		w.excludes = ig
	}
	return w, nil
}

// Roots returns the cleaned root list.
func (w *Walker) Roots() []string {
	return append([]string(nil), w.roots...)
}

// Walk calls visit for every accepted file. Roots are walked in order and
// directory entries in lexicographic order. Overlapping roots are walked
// once: every real directory and file is visited at most once per call.
// A non-nil error from visit or a cancelled ctx stops the walk and is returned.
func (w *Walker) Walk(ctx context.Context, visit func(path string) error) error {
	t := &traversal{
		w:       w,
		visit:   visit,
		visited: make(map[string]struct{}),
		yielded: make(map[string]struct{}),
	}
	for _, root := range w.roots {
		if err := t.root(ctx, root); err != nil {
			return err
		}
	}
	return nil
}

func (t *traversal) root(ctx context.Context, root string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(root)
	if err != nil {
		t.w.report(root, err)
		return nil
	}
	if !info.IsDir() {
		name := filepath.Base(root)
		if ignored(t.w.excludes, name, false) || !t.w.acceptExt(name) {
			return nil
		}
		return t.file(root, realPath(root))
	}

	t.ignore = nil
	if t.w.useGitignore {
		t.ignore = t.w.loadGitignore(root)
	}
	return t.dir(ctx, root, "")
}

func (w *Walker) loadGitignore(root string) gitignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.report(path, err)
		}
		return nil
	}
	ig, err := gitignore.NewFromFile(path)
	if err != nil {
		w.report(path, err)
		return nil
	}
	return ig
}

func (w *Walker) report(path string, err error) {
	if w.onError != nil {
		w.onError(path, err)
	}
}

func (w *Walker) acceptExt(name string) bool {
	if len(w.exts) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range w.exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// traversal is the state of one Walk call, shared by all roots.
type traversal struct {
	w       *Walker
	ignore  gitignore.GitIgnore
	visit   func(string) error
	visited map[string]struct{} // real directories
	yielded map[string]struct{} // real files
}

// realPath resolves symlinks and makes path absolute. Unresolvable paths are
// returned cleaned.
func realPath(path string) string {
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		real = path
	}
	if abs, err := filepath.Abs(real); err == nil {
		return abs
	}
	return filepath.Clean(real)
}

func (t *traversal) file(path, real string) error {
	if _, seen := t.yielded[real]; seen {
		return nil
	}
	t.yielded[real] = struct{}{}
	return t.visit(path)
}

func (t *traversal) dir(ctx context.Context, dir, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := filepath.EvalSymlinks(dir); err != nil {
		t.w.report(dir, err)
		return nil
	}
	real := realPath(dir)
	if _, seen := t.visited[real]; seen {
		return nil
	}
	t.visited[real] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.w.report(dir, err)
		return nil
	}
	for _, e := range entries {
		name := e.Name()
		path := filepath.Join(dir, name)
		childRel := name
		if rel != "" {
			childRel = rel + "/" + name
		}

		isDir := e.IsDir()
		fileReal := filepath.Join(real, name)
		switch {
		case e.Type()&fs.ModeSymlink != 0:
			fileReal = realPath(path)
			fi, err := os.Stat(path)
			if err != nil {
				t.w.report(path, err)
				continue
			}
			if fi.IsDir() {
				if !t.w.follow {
					continue
				}
				isDir = true
			} else if !fi.Mode().IsRegular() {
				continue
			}
		case !isDir && !e.Type().IsRegular():
			// sockets, devices, pipes
			continue
		}

		if t.skip(name, childRel, isDir) {
			continue
		}
		if isDir {
			if err := t.dir(ctx, path, childRel); err != nil {
				return err
			}
			continue
		}
		if !t.w.acceptExt(name) {
			continue
		}
		if err := t.file(path, fileReal); err != nil {
			return err
		}
	}
	return nil
}

func (t *traversal) skip(name, rel string, isDir bool) bool {
	if isDir && name == gitDir {
		return true
	}
	if !t.w.hidden && strings.HasPrefix(name, ".") {
		return true
	}
	return ignored(t.w.excludes, rel, isDir) || ignored(t.ignore, rel, isDir)
}

func ignored(ig gitignore.GitIgnore, rel string, isDir bool) bool {
	if ig == nil {
		return false
	}
	m := ig.Relative(rel, isDir)
	return m != nil && m.Ignore()
}

func compilePatterns(patterns []string) (gitignore.GitIgnore, error) {
	var errs []error
	ig := gitignore.New(strings.NewReader(strings.Join(patterns, "\n")), "", func(e gitignore.Error) bool {
		errs = append(errs, e)
		return true
	})
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid exclude pattern: %w", errors.Join(errs...))
	}
	return ig, nil
}

// NormalizeExtensions lower-cases extensions and gives each a leading dot.
// "go", ".go" and "*.go" are equivalent.
func NormalizeExtensions(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, r := range raw {
		ext := strings.ToLower(strings.TrimSpace(r))
		ext = strings.TrimPrefix(ext, "*")
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	return out
}

func cleanRoots(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, filepath.Clean(r))
	}
	if len(out) == 0 {
		out = append(out, ".")
	}
	return out
}
