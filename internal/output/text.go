package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/phyten/what2do/internal/engine"
	"github.com/phyten/what2do/internal/model"
	"github.com/phyten/what2do/internal/termcolor"
	"github.com/phyten/what2do/internal/textutil"
)

// FormatLine renders one finding as "<path>:<line>: [<tag>] <message>".
func FormatLine(f model.Finding) string {
	line := fmt.Sprintf("%s:%d: [%s] %s", f.File, f.Line, f.Tag, f.Message)
	return strings.TrimRight(line, " ")
}

// WriteText writes one line per finding in discovery order.
func WriteText(w io.Writer, res *engine.Result) error {
	if res == nil {
		return nil
	}
	for _, f := range res.Findings {
		if _, err := fmt.Fprintln(w, FormatLine(f)); err != nil {
			return err
		}
	}
	return nil
}

// WriteGrouped prints a header per file followed by its findings.
func WriteGrouped(w io.Writer, res *engine.Result, pal termcolor.Palette) error {
	last := ""
	for i, f := range res.Findings {
		if i == 0 || f.File != last {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, pal.Paint(termcolor.PathStyle(), f.File)); err != nil {
				return err
			}
			last = f.File
		}
		owner := ""
		if f.Owner != "" {
			owner = "(" + f.Owner + ")"
		}
		line := fmt.Sprintf("  %5d  %s%s %s", f.Line, pal.Tag(f.Tag), owner, f.Message)
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable prints an aligned table. Column widths are measured on visible
// text so colour escapes and wide runes do not break alignment.
func WriteTable(w io.Writer, items []model.Finding, fields []Field, pal termcolor.Palette, truncate int) error {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		row := RowValues(it, fields)
		for i, f := range fields {
			switch f.Key {
			case "message", "text", "context":
				row[i] = textutil.Clip(row[i], truncate)
			}
		}
		rows = append(rows, row)
	}

	headers := Headers(fields)
	widths := make([]int, len(fields))
	for i, h := range headers {
		widths[i] = textutil.VisibleWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := textutil.VisibleWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = pal.Paint(termcolor.HeaderStyle(), h)
	}
	if err := writeTableRow(w, styled, widths); err != nil {
		return err
	}
	for _, row := range rows {
		for i, f := range fields {
			switch f.Key {
			case "tag":
				row[i] = pal.Tag(row[i])
			case "file", "location":
				row[i] = pal.Paint(termcolor.PathStyle(), row[i])
			case "scope", "context":
				row[i] = pal.Paint(termcolor.DimStyle(), row[i])
			}
		}
		if err := writeTableRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func writeTableRow(w io.Writer, cells []string, widths []int) error {
	var b strings.Builder
	for i, cell := range cells {
		if i == len(cells)-1 {
			b.WriteString(cell)
			break
		}
		b.WriteString(textutil.PadRight(cell, widths[i]))
		b.WriteString("  ")
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	return err
}
