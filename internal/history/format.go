package history

import (
	"strings"
)

const dateLayout = "2006-01-02 15:04:05"

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}

func (c Change) label() string {
	if c.Message == "" {
		return c.Tag
	}
	return c.Tag + ": " + c.Message
}

// Format renders entries as "text" (default) or "markdown". No entries
// yields an empty string.
func Format(entries []Entry, format string) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	markdown := strings.EqualFold(strings.TrimSpace(format), "markdown") || strings.EqualFold(strings.TrimSpace(format), "md")
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		c := e.Commit
		if markdown {
			if c.URL != "" {
				b.WriteString("## Commit [" + shortHash(c.Hash) + "](" + c.URL + ")\n")
			} else {
				b.WriteString("## Commit " + shortHash(c.Hash) + "\n")
			}
			b.WriteString("**Author:** " + c.Author + " (" + c.Email + ")\n")
			b.WriteString("**Date:** " + c.Date.Format(dateLayout) + "\n")
			b.WriteString("**Subject:** " + c.Subject + "\n")
			b.WriteString("\n**Changes:**\n")
			for _, ch := range e.Changes {
				status := "✅ Added"
				if ch.Status == Removed {
					status = "❌ Removed"
				}
				if ch.URL != "" {
					b.WriteString("- " + status + ": [" + ch.label() + "](" + ch.URL + ")\n")
					continue
				}
				b.WriteString("- " + status + ": " + ch.label() + "\n")
			}
			continue
		}
		b.WriteString("[" + shortHash(c.Hash) + "] " + c.Date.Format(dateLayout) + "\n")
		b.WriteString("Author: " + c.Author + " (" + c.Email + ")\n")
		b.WriteString("Subject: " + c.Subject + "\n")
		if c.URL != "" {
			b.WriteString("URL: " + c.URL + "\n")
		}
		b.WriteString("Changes:\n")
		for _, ch := range e.Changes {
			sign := "+"
			if ch.Status == Removed {
				sign = "-"
			}
			b.WriteString("  " + sign + " " + ch.label() + "\n")
		}
	}
	return b.String()
}
