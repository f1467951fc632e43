package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/browser"

	"github.com/phyten/what2do/internal/config"
	"github.com/phyten/what2do/internal/ctxlog"
	"github.com/phyten/what2do/internal/detect"
	"github.com/phyten/what2do/internal/engine"
	engineopts "github.com/phyten/what2do/internal/engine/opts"
	"github.com/phyten/what2do/internal/execx"
	"github.com/phyten/what2do/internal/history"
	"github.com/phyten/what2do/internal/matcher"
	"github.com/phyten/what2do/internal/output"
	"github.com/phyten/what2do/internal/progress"
	"github.com/phyten/what2do/internal/termcolor"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("what2do: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
	stop()
	os.Exit(code)
}

// run dispatches to a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	if len(args) > 0 {
		switch args[0] {
		case "scan":
			return scanCmd(ctx, args[1:], stdout, stderr, getenv)
		case "history":
			return historyCmd(ctx, args[1:], stdout, stderr)
		case "help":
			_, _ = io.WriteString(stdout, usage)
			return output.ExitClean
		}
	}
	return scanCmd(ctx, args, stdout, stderr, getenv)
}

func fatal(stderr io.Writer, err error) int {
	log.New(stderr, "what2do: ", 0).Print(err)
	return output.ExitFatal
}

func scanCmd(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	cli, err := parseScanArgs(args)
	if err != nil {
		return fatal(stderr, fmt.Errorf("%w (see what2do -h)", err))
	}
	if cli.showHelp {
		_, _ = io.WriteString(stdout, usage)
		return output.ExitClean
	}

	ctx = ctxlog.WithLogger(ctx, ctxlog.New(stderr, cli.verbose, cli.quiet))
	logger := ctxlog.FromContext(ctx)

	opts, report, err := resolveSettings(cli, getenv)
	if err != nil {
		return fatal(stderr, err)
	}
	fields, err := resolveFields(cli.fields, report.Format)
	if err != nil {
		return fatal(stderr, err)
	}

	if !cli.quiet && progress.ShouldShowProgress(cli.progress, cli.noProgress) {
		opts.Progress = progress.NewAutoObserver(stderr)
	}

	res, err := engine.Run(ctx, opts)
	if err != nil {
		var rnf *engine.RootNotFoundError
		if errors.As(err, &rnf) {
			logger.Debug("root does not exist", "path", rnf.Path, "err", rnf.Err)
		}
		return fatal(stderr, err)
	}

	var dst io.Writer = stdout
	var outFile *os.File
	if report.Out != "" {
		outFile, err = os.Create(report.Out)
		if err != nil {
			return fatal(stderr, fmt.Errorf("open --out: %w", err))
		}
		dst = outFile
	}
	colorTarget, _ := dst.(*os.File)
	pal, err := termcolor.Resolve(report.Color, colorTarget, termcolor.EnvMap(environ(getenv)))
	if err != nil {
		return fatal(stderr, err)
	}

	werr := output.Write(dst, res, output.Options{
		Format:   report.Format,
		Fields:   fields,
		Color:    pal,
		Truncate: report.Truncate,
	})
	if outFile != nil {
		if cerr := outFile.Close(); werr == nil {
			werr = cerr
		}
	}
	if werr != nil {
		return fatal(stderr, fmt.Errorf("write report: %w", werr))
	}
	if report.Out != "" {
		logger.Info("report written", "path", report.Out, "format", report.Format)
	}

	if !cli.quiet {
		_ = output.WriteWarnings(stderr, res)
		fmt.Fprintln(stderr, output.Summary(res))
	}
	return output.ExitCode(res)
}

// resolveSettings layers defaults, the config file, WHAT2DO_* variables and
// flags, in that order.
func resolveSettings(cli scanArgs, getenv func(string) string) (engine.Options, config.ReportSettings, error) {
	envCfg, err := config.FromEnv(getenv)
	if err != nil {
		return engine.Options{}, config.ReportSettings{}, fmt.Errorf("environment: %w", err)
	}

	start := "."
	if cli.scan.Paths != nil && len(*cli.scan.Paths) > 0 {
		start = (*cli.scan.Paths)[0]
	} else if envCfg.Scan.Paths != nil && len(*envCfg.Scan.Paths) > 0 {
		start = (*envCfg.Scan.Paths)[0]
	}
	if info, err := os.Stat(start); err == nil && !info.IsDir() {
		start = filepath.Dir(start)
	}
	explicit := cli.configPath
	if explicit == "" {
		explicit = getenv(config.EnvConfigPath)
	}
	path, _, err := config.Find(start, explicit, getenv("XDG_CONFIG_HOME"), getenv("HOME"))
	if err != nil {
		return engine.Options{}, config.ReportSettings{}, fmt.Errorf("config: %w", err)
	}
	var fileCfg config.Config
	if path != "" {
		fileCfg, err = config.Load(path)
		if err != nil {
			return engine.Options{}, config.ReportSettings{}, err
		}
	}

	opts := engineopts.Defaults()
	scan := config.MergeScan(config.ScanSettingsFromOptions(opts), fileCfg.Scan, envCfg.Scan, cli.scan)
	scan.ApplyToOptions(&opts)
	if err := engineopts.NormalizeAndValidate(&opts); err != nil {
		return engine.Options{}, config.ReportSettings{}, err
	}

	report := config.MergeReport(config.DefaultReportSettings(), fileCfg.Report, envCfg.Report, cli.report)
	report, err = config.NormalizeReport(report)
	if err != nil {
		return engine.Options{}, config.ReportSettings{}, err
	}
	return opts, report, nil
}

func resolveFields(raw, format string) ([]output.Field, error) {
	switch format {
	case "table":
		return output.ResolveFields(raw, output.DefaultTableFields)
	case "tsv", "csv":
		return output.ResolveFields(raw, output.DefaultRecordFields)
	}
	if raw != "" {
		return nil, fmt.Errorf("--fields only applies to table, tsv and csv (got --format %s)", format)
	}
	return nil, nil
}

func environ(getenv func(string) string) []string {
	var out []string
	for _, k := range []string{"TERM", "NO_COLOR", "CLICOLOR", "CLICOLOR_FORCE", "FORCE_COLOR", "COLORTERM", "COLORFGBG"} {
		if v := getenv(k); v != "" {
			out = append(out, k+"="+v)
		}
	}
	return out
}

func historyCmd(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cli, err := parseHistoryArgs(args)
	if err != nil {
		return fatal(stderr, fmt.Errorf("%w (see what2do history -h)", err))
	}
	if cli.showHelp {
		_, _ = io.WriteString(stdout, historyUsage)
		return output.ExitClean
	}
	ctx = ctxlog.WithLogger(ctx, ctxlog.New(stderr, cli.verbose, cli.quiet))

	tags := cli.tags
	if len(tags) == 0 {
		tags = matcher.DefaultTags
	}
	m, err := matcher.New(tags)
	if err != nil {
		return fatal(stderr, fmt.Errorf("invalid --tags: %w", err))
	}
	if cli.commentsOnly {
		// content only refines detection (shebangs); Track reports unreadable files
		head, err := os.ReadFile(cli.file)
		if err != nil {
			ctxlog.FromContext(ctx).Debug("detecting language from path only", "file", cli.file, "err", err)
			head = nil
		}
		style, _ := detect.StyleFor(detect.FromPathAndContent(cli.file, head).Name)
		m = m.Restrict(style.Prefixes())
	}

	entries, err := history.Track(ctx, execx.DefaultRunner(), m, cli.file, cli.remote)
	if err != nil {
		return fatal(stderr, err)
	}
	if len(entries) == 0 {
		if !cli.quiet {
			fmt.Fprintln(stderr, "no marker history found")
		}
		return output.ExitClean
	}
	_, _ = io.WriteString(stdout, history.Format(entries, cli.format))
	if cli.open {
		url, err := openNewest(entries, openURL)
		if err != nil {
			return fatal(stderr, err)
		}
		if !cli.quiet {
			fmt.Fprintf(stderr, "opened %s\n", url)
		}
	}
	return output.ExitClean
}

// openURL is swapped out in tests.
var openURL = browser.OpenURL

// openNewest opens the commit page of the most recent entry.
func openNewest(entries []history.Entry, open func(string) error) (string, error) {
	if len(entries) == 0 {
		return "", errors.New("--open: no commits to open")
	}
	newest := entries[len(entries)-1].Commit
	if newest.URL == "" {
		return "", fmt.Errorf("--open: no browsable remote for commit %s", newest.Hash)
	}
	if err := open(newest.URL); err != nil {
		return "", fmt.Errorf("--open: %w", err)
	}
	return newest.URL, nil
}
