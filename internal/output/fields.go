package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/what2do/internal/model"
)

// TimeLayout formats Finding.Modified in text-oriented reports.
const TimeLayout = "2006-01-02 15:04:05"

// Field is one selectable column of the table, tsv and csv formats.
type Field struct {
	Key    string
	Header string
}

var fieldRegistry = map[string]string{
	"file":     "FILE",
	"line":     "LINE",
	"column":   "COLUMN",
	"location": "LOCATION",
	"tag":      "TAG",
	"owner":    "OWNER",
	"message":  "MESSAGE",
	"text":     "TEXT",
	"context":  "CONTEXT",
	"scope":    "SCOPE",
	"lang":     "LANG",
	"modified": "MODIFIED",
}

var fieldAliases = map[string]string{
	"path":  "file",
	"col":   "column",
	"loc":   "location",
	"type":  "tag",
	"kind":  "tag",
	"todo":  "message",
	"mtime": "modified",
}

// DefaultTableFields is used by the table format when --fields is empty.
var DefaultTableFields = []string{"location", "tag", "message", "scope"}

// DefaultRecordFields is used by the tsv and csv formats when --fields is empty.
var DefaultRecordFields = []string{"file", "line", "column", "tag", "owner", "message", "context", "scope", "modified"}

// ResolveFields parses a comma separated column list. An empty value yields
// defaults. Unknown or duplicated keys are errors.
func ResolveFields(raw string, defaults []string) ([]Field, error) {
	keys := defaults
	if strings.TrimSpace(raw) != "" {
		keys = strings.Split(raw, ",")
	}
	seen := make(map[string]struct{}, len(keys))
	out := make([]Field, 0, len(keys))
	for _, k := range keys {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" {
			continue
		}
		if canonical, ok := fieldAliases[key]; ok {
			key = canonical
		}
		header, ok := fieldRegistry[key]
		if !ok {
			return nil, fmt.Errorf("unknown field: %s", strings.TrimSpace(k))
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate field: %s", key)
		}
		seen[key] = struct{}{}
		out = append(out, Field{Key: key, Header: header})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("--fields selects no columns")
	}
	return out, nil
}

// Headers returns the column titles of fields.
func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Header
	}
	return out
}

// RowValues renders f into one cell per field.
func RowValues(f model.Finding, fields []Field) []string {
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = fieldValue(f, field.Key)
	}
	return out
}

func fieldValue(f model.Finding, key string) string {
	switch key {
	case "file":
		return f.File
	case "line":
		return strconv.Itoa(f.Line)
	case "column":
		if f.Column == 0 {
			return ""
		}
		return strconv.Itoa(f.Column)
	case "location":
		return f.Location()
	case "tag":
		return f.Tag
	case "owner":
		return f.Owner
	case "message":
		return f.Message
	case "text":
		return f.Text
	case "context":
		return f.Context
	case "scope":
		return f.Scope
	case "lang":
		return f.Lang
	case "modified":
		if f.Modified.IsZero() {
			return ""
		}
		return f.Modified.Format(TimeLayout)
	default:
		return ""
	}
}
