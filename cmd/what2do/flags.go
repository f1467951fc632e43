package main

import (
	"errors"
	"flag"
	"io"
	"strings"

	"github.com/phyten/what2do/internal/config"
	engineopts "github.com/phyten/what2do/internal/engine/opts"
)

// multiFlag collects every occurrence of a repeatable flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

type scanArgs struct {
	scan       config.ScanConfig
	report     config.ReportConfig
	fields     string
	configPath string
	verbose    bool
	quiet      bool
	progress   bool
	noProgress bool
	showHelp   bool
}

type historyArgs struct {
	file         string
	format       string
	remote       string
	tags         []string
	commentsOnly bool
	open         bool
	verbose      bool
	quiet        bool
	showHelp     bool
}

// parseInterspersed parses fs while allowing flags and positional arguments
// to be mixed. Everything after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var rest []string
	for i, a := range args {
		if a == "--" {
			rest = args[i+1:]
			args = args[:i]
			break
		}
	}
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		remaining := fs.Args()
		if len(remaining) == 0 {
			break
		}
		positional = append(positional, remaining[0])
		args = remaining[1:]
	}
	return append(positional, rest...), nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseScanArgs turns command line arguments into a config layer holding
// only the values the user actually passed.
func parseScanArgs(args []string) (scanArgs, error) {
	fs := newFlagSet("what2do")
	var (
		exts, langs, excludes, tags multiFlag
		cfg                         scanArgs

		commentsOnly   = fs.Bool("comments-only", false, "")
		excludeTypical = fs.Bool("exclude-typical", false, "")
		hidden         = fs.Bool("hidden", false, "")
		follow         = fs.Bool("follow-symlinks", false, "")
		noGitignore    = fs.Bool("no-gitignore", false, "")
		maxBytes       = fs.Int("max-file-bytes", 0, "")
		format         = fs.String("format", "", "")
		out            = fs.String("out", "", "")
		color          = fs.String("color", "auto", "")
		truncate       = fs.Int("truncate", 0, "")
	)
	fs.Var(&exts, "ext", "")
	fs.Var(&langs, "lang", "")
	fs.Var(&excludes, "exclude", "")
	fs.Var(&tags, "tags", "")
	fs.Var(&tags, "tag", "")
	fs.StringVar(&cfg.fields, "fields", "", "")
	fs.StringVar(&cfg.configPath, "config", "", "")
	fs.BoolVar(&cfg.verbose, "verbose", false, "")
	fs.BoolVar(&cfg.verbose, "v", false, "")
	fs.BoolVar(&cfg.quiet, "quiet", false, "")
	fs.BoolVar(&cfg.quiet, "q", false, "")
	fs.BoolVar(&cfg.progress, "progress", false, "")
	fs.BoolVar(&cfg.noProgress, "no-progress", false, "")
	fs.BoolVar(&cfg.showHelp, "help", false, "")
	fs.BoolVar(&cfg.showHelp, "h", false, "")

	paths, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cfg.showHelp = true
			return cfg, nil
		}
		return cfg, err
	}

	if len(paths) > 0 {
		cfg.scan.Paths = &paths
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "ext":
			v := engineopts.SplitMulti(exts)
			cfg.scan.Extensions = &v
		case "lang":
			v := engineopts.SplitMulti(langs)
			cfg.scan.Langs = &v
		case "exclude":
			v := engineopts.SplitMulti(excludes)
			cfg.scan.Excludes = &v
		case "tags", "tag":
			v := engineopts.SplitMulti(tags)
			cfg.scan.Tags = &v
		case "comments-only":
			cfg.scan.CommentsOnly = commentsOnly
		case "exclude-typical":
			cfg.scan.ExcludeTypical = excludeTypical
		case "hidden":
			cfg.scan.Hidden = hidden
		case "follow-symlinks":
			cfg.scan.FollowSymlinks = follow
		case "no-gitignore":
			use := !*noGitignore
			cfg.scan.Gitignore = &use
		case "max-file-bytes":
			cfg.scan.MaxFileBytes = maxBytes
		case "format":
			cfg.report.Format = format
		case "out":
			cfg.report.Out = out
		case "color":
			cfg.report.Color = color
		case "truncate":
			cfg.report.Truncate = truncate
		}
	})
	return cfg, nil
}

func parseHistoryArgs(args []string) (historyArgs, error) {
	fs := newFlagSet("what2do history")
	var (
		tags multiFlag
		cfg  historyArgs
	)
	fs.StringVar(&cfg.format, "format", "text", "")
	fs.StringVar(&cfg.remote, "remote", "", "")
	fs.Var(&tags, "tags", "")
	fs.Var(&tags, "tag", "")
	fs.BoolVar(&cfg.commentsOnly, "comments-only", false, "")
	fs.BoolVar(&cfg.open, "open", false, "")
	fs.BoolVar(&cfg.verbose, "verbose", false, "")
	fs.BoolVar(&cfg.verbose, "v", false, "")
	fs.BoolVar(&cfg.quiet, "quiet", false, "")
	fs.BoolVar(&cfg.quiet, "q", false, "")
	fs.BoolVar(&cfg.showHelp, "help", false, "")
	fs.BoolVar(&cfg.showHelp, "h", false, "")

	rest, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cfg.showHelp = true
			return cfg, nil
		}
		return cfg, err
	}
	if cfg.showHelp {
		return cfg, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.format)) {
	case "text":
		cfg.format = "text"
	case "markdown", "md":
		cfg.format = "markdown"
	default:
		return cfg, errors.New("invalid --format: " + cfg.format + " (want text or markdown)")
	}
	if len(rest) != 1 {
		return cfg, errors.New("history needs exactly one FILE")
	}
	cfg.file = rest[0]
	cfg.tags = engineopts.SplitMulti(tags)
	return cfg, nil
}
