// Package output renders scan results and maps them to process exit codes.
package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/phyten/what2do/internal/engine"
	"github.com/phyten/what2do/internal/termcolor"
)

// Process exit codes.
const (
	ExitClean    = 0 // no findings
	ExitFindings = 1 // at least one finding
	ExitFatal    = 2 // the scan could not run
)

// Options controls how Write renders a result.
type Options struct {
	Format   string // one of opts.Formats; empty means text
	Fields   []Field
	Color    termcolor.Palette
	Truncate int // max message width in the table format, 0 = unlimited
}

// ExitCode maps a result to ExitClean or ExitFindings. A nil result is clean.
func ExitCode(res *engine.Result) int {
	if res == nil || len(res.Findings) == 0 {
		return ExitClean
	}
	return ExitFindings
}

// Report renders res in the plain text format and returns it with the exit
// code for the result.
func Report(res *engine.Result) (string, int) {
	var buf bytes.Buffer
	// bytes.Buffer never fails
	_ = WriteText(&buf, res)
	return buf.String(), ExitCode(res)
}

// Write renders res to w in the requested format.
func Write(w io.Writer, res *engine.Result, o Options) error {
	if res == nil {
		res = &engine.Result{}
	}
	switch strings.ToLower(strings.TrimSpace(o.Format)) {
	case "", "text":
		return WriteText(w, res)
	case "grouped":
		return WriteGrouped(w, res, o.Color)
	case "table":
		fields, err := fieldsOrDefault(o.Fields, DefaultTableFields)
		if err != nil {
			return err
		}
		return WriteTable(w, res.Findings, fields, o.Color, o.Truncate)
	case "tsv":
		fields, err := fieldsOrDefault(o.Fields, DefaultRecordFields)
		if err != nil {
			return err
		}
		return WriteTSV(w, res.Findings, fields)
	case "csv":
		fields, err := fieldsOrDefault(o.Fields, DefaultRecordFields)
		if err != nil {
			return err
		}
		return WriteCSV(w, res.Findings, fields)
	case "json":
		return WriteJSON(w, res)
	case "ndjson":
		return WriteNDJSON(w, res.Findings)
	case "markdown", "md":
		return WriteMarkdown(w, res.Findings)
	default:
		return fmt.Errorf("unsupported format: %s", o.Format)
	}
}

func fieldsOrDefault(fields []Field, defaults []string) ([]Field, error) {
	if len(fields) > 0 {
		return fields, nil
	}
	return ResolveFields("", defaults)
}

// Summary returns "N finding(s) in M file(s)", followed by the number of
// skipped files when any were skipped.
func Summary(res *engine.Result) string {
	if res == nil {
		res = &engine.Result{}
	}
	s := fmt.Sprintf("%d %s in %d %s",
		len(res.Findings), plural(len(res.Findings), "finding", "findings"),
		res.FilesWithFindings(), plural(res.FilesWithFindings(), "file", "files"))
	if res.ErrorCount > 0 {
		s += fmt.Sprintf(" (%d skipped)", res.ErrorCount)
	}
	return s
}

// WriteWarnings lists skipped files. Nothing is written for a clean result.
func WriteWarnings(w io.Writer, res *engine.Result) error {
	if res == nil || len(res.Errors) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "warning: %d %s skipped:\n", len(res.Errors), plural(len(res.Errors), "file", "files")); err != nil {
		return err
	}
	for _, e := range res.Errors {
		loc := e.File
		if e.Line > 0 {
			loc = fmt.Sprintf("%s:%d", e.File, e.Line)
		}
		if _, err := fmt.Fprintf(w, "  %s: %s: %s\n", loc, e.Stage, e.Message); err != nil {
			return err
		}
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
