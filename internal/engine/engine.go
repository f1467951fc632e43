package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/phyten/what2do/internal/ctxlog"
	"github.com/phyten/what2do/internal/detect"
	"github.com/phyten/what2do/internal/matcher"
	"github.com/phyten/what2do/internal/model"
	"github.com/phyten/what2do/internal/progress"
	"github.com/phyten/what2do/internal/walker"
)

const mainScope = "main"

// func/def/class/namespace 風の宣言行
var reScope = regexp.MustCompile(`^\s*(?:(?:export|public|private|protected|internal|static|abstract|final|async|pub)\s+)*(?:func|def|class|namespace|function|fn|module|struct|interface|impl)\s+[\p{L}_(]`)

// Run は指定されたオプションに従ってルートを走査し、マーカーコメントの一覧を返します。
//
// 存在しないルートは走査前に *RootNotFoundError として返されます。
// ファイル単位の失敗 (読み込み・デコード・サイズ超過) は Result.Errors に集約され、
// 走査自体は中断されません。
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	log := ctxlog.FromContext(ctx)

	roots := opts.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}
	if err := validateRoots(roots); err != nil {
		return nil, err
	}

	tags := opts.Tags
	if len(tags) == 0 {
		tags = matcher.DefaultTags
	}
	m, err := matcher.New(tags)
	if err != nil {
		return nil, fmt.Errorf("invalid --tags: %w", err)
	}

	langs := newLangFilter(opts.Langs)

	var errs []ItemError
	w, err := walker.New(walker.Options{
		Roots:          roots,
		Extensions:     opts.Extensions,
		Excludes:       opts.Excludes,
		ExcludeTypical: opts.ExcludeTypical,
		Hidden:         opts.Hidden,
		FollowSymlinks: opts.FollowSymlinks,
		UseGitignore:   opts.UseGitignore,
		OnError: func(path string, err error) {
			log.Warn("skipping unreadable entry", "path", path, "err", err)
			errs = append(errs, newItemError(path, 0, StageWalk, err))
		},
	})
	if err != nil {
		return nil, err
	}
	log.Debug("scan started", "roots", w.Roots(), "tags", m.Tags(), "langs", opts.Langs)

	var meter *progress.Meter
	if opts.Progress != nil {
		meter = progress.NewMeter(0)
		defer func() { opts.Progress.Done(meter.Snapshot()) }()
	}
	tick := func(findings int, skipped bool) {
		if meter == nil {
			return
		}
		if snap, notify := meter.Advance(findings, skipped); notify {
			opts.Progress.Publish(snap)
		}
	}

	res := &Result{}
	err = w.Walk(ctx, func(path string) error {
		findings, itemErr, kept := scanFile(path, m, langs, opts)
		if !kept {
			log.Debug("language filtered out", "path", path)
			return nil
		}
		res.Files++
		if itemErr != nil {
			log.Debug("skipping file", "path", path, "stage", itemErr.Stage, "err", itemErr.Message)
			errs = append(errs, *itemErr)
			tick(0, true)
			return nil
		}
		log.Debug("scanned file", "path", path, "findings", len(findings))
		res.Findings = append(res.Findings, findings...)
		tick(len(findings), false)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk: %w", err)
	}

	sortItemErrors(errs)
	res.Total = len(res.Findings)
	res.Errors = errs
	res.ErrorCount = len(errs)
	res.ElapsedMS = msSince(start)
	log.Debug("scan complete", "files", res.Files, "findings", res.Total, "errors", res.ErrorCount, "elapsed_ms", res.ElapsedMS)
	return res, nil
}

func validateRoots(roots []string) error {
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return &RootNotFoundError{Path: root, Err: err}
			}
			return fmt.Errorf("stat %s: %w", root, err)
		}
	}
	return nil
}

// langFilter is the set of languages to keep; nil keeps every file.
type langFilter map[string]struct{}

func newLangFilter(names []string) langFilter {
	names = detect.CanonicalLangs(names)
	if len(names) == 0 {
		return nil
	}
	f := make(langFilter, len(names))
	for _, n := range names {
		f[n] = struct{}{}
	}
	return f
}

func (f langFilter) keeps(lang string) bool {
	if f == nil {
		return true
	}
	_, ok := f[lang]
	return ok
}

// rejectsByPath decides from the name alone, so filtered files are never read.
// Unknown names and ".m" files (Objective-C or MATLAB) need their content.
func (f langFilter) rejectsByPath(path string) bool {
	if f == nil {
		return false
	}
	lang := detect.FromPathAndContent(path, nil).Name
	if lang == "" || (lang == "objective-c" && f.keeps("matlab")) {
		return false
	}
	return !f.keeps(lang)
}

// scanFile reads and matches one file. kept is false when the language filter
// excludes the file; such files are neither scanned nor reported.
func scanFile(path string, m *matcher.Matcher, langs langFilter, opts Options) (findings []model.Finding, itemErr *ItemError, kept bool) {
	if langs.rejectsByPath(path) {
		return nil, nil, false
	}
	info, err := os.Stat(path)
	if err != nil {
		ie := newItemError(path, 0, StageRead, err)
		return nil, &ie, true
	}
	if opts.MaxFileBytes > 0 && info.Size() > int64(opts.MaxFileBytes) {
		ie := newItemError(path, 0, StageSize, fmt.Errorf("file is %d bytes, limit is %d", info.Size(), opts.MaxFileBytes))
		return nil, &ie, true
	}
	data, err := os.ReadFile(path)
	if err != nil {
		ie := newItemError(path, 0, StageRead, err)
		return nil, &ie, true
	}
	lang := detect.FromPathAndContent(path, data).Name
	if !langs.keeps(lang) {
		return nil, nil, false
	}
	text, err := decodeText(data)
	if err != nil {
		ie := newItemError(path, 0, StageDecode, err)
		return nil, &ie, true
	}

	if opts.CommentsOnly {
		style, _ := detect.StyleFor(lang)
		m = m.Restrict(style.Prefixes())
	}
	return scanLines(path, splitLines(text), m, lang, info.ModTime()), nil, true
}

func scanLines(path string, lines []string, m *matcher.Matcher, lang string, modified time.Time) []model.Finding {
	var out []model.Finding
	scope := mainScope
	for i, line := range lines {
		if reScope.MatchString(line) {
			scope = strings.TrimSpace(line)
		}
		hit, ok := m.Match(line)
		if !ok {
			continue
		}
		f := model.Finding{
			File:     path,
			Line:     i + 1,
			Column:   hit.Column,
			Tag:      hit.Tag,
			Owner:    hit.Owner,
			Message:  hit.Message,
			Text:     strings.TrimSpace(line),
			Scope:    scope,
			Lang:     lang,
			Modified: modified,
		}
		if i > 0 {
			f.Context = strings.TrimSpace(lines[i-1])
		}
		out = append(out, f)
	}
	return out
}

func newItemError(file string, line int, stage string, err error) ItemError {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown error"
	}
	return ItemError{File: file, Line: line, Stage: stage, Message: msg}
}

func sortItemErrors(errs []ItemError) {
	sort.Slice(errs, func(i, j int) bool {
		if errs[i].File == errs[j].File {
			if errs[i].Line == errs[j].Line {
				return errs[i].Stage < errs[j].Stage
			}
			return errs[i].Line < errs[j].Line
		}
		return errs[i].File < errs[j].File
	})
}

func msSince(t time.Time) int64 {
	return time.Since(t).Milliseconds()
}
