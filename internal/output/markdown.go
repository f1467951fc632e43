package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/phyten/what2do/internal/model"
)

// WriteMarkdown renders items as a nested Markdown list, one entry per
// finding:
//
//	- **File:** a.py
//	  - Path: src/a.py:3
//	  - TODO: [TODO] fix this
//	  - Context: import os
//	  - Scope: main
//	  - Modified: 2024-05-01 10:00:00
func WriteMarkdown(w io.Writer, items []model.Finding) error {
	for _, it := range items {
		msg := "[" + it.Tag + "] " + it.Message
		if it.Owner != "" {
			msg = "[" + it.Tag + "(" + it.Owner + ")] " + it.Message
		}
		modified := ""
		if !it.Modified.IsZero() {
			modified = it.Modified.Format(TimeLayout)
		}
		_, err := fmt.Fprintf(w,
			"- **File:** %s\n  - Path: %s\n  - TODO: %s\n  - Context: %s\n  - Scope: %s\n  - Modified: %s\n\n",
			escapeMarkdown(filepath.Base(it.File)),
			escapeMarkdown(it.Location()),
			escapeMarkdown(strings.TrimSpace(msg)),
			escapeMarkdown(it.Context),
			escapeMarkdown(it.Scope),
			modified,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdown(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = strings.ReplaceAll(s, "`", "\\`")
	return s
}
