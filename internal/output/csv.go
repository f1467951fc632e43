package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/phyten/what2do/internal/model"
)

// WriteCSV renders items as RFC 4180 compliant CSV (including CRLF endings).
func WriteCSV(w io.Writer, items []model.Finding, fields []Field) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(lowerHeaders(fields)); err != nil {
		return err
	}
	for _, it := range items {
		if err := writer.Write(RowValues(it, fields)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteTSV renders items as tab separated values with a header row. Tabs and
// line breaks inside cells are replaced by spaces.
func WriteTSV(w io.Writer, items []model.Finding, fields []Field) error {
	if _, err := fmt.Fprintln(w, strings.Join(lowerHeaders(fields), "\t")); err != nil {
		return err
	}
	for _, it := range items {
		row := RowValues(it, fields)
		for i := range row {
			row[i] = tsvEscaper.Replace(row[i])
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

var tsvEscaper = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

func lowerHeaders(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Key
	}
	return out
}
