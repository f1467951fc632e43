package config

import (
	"fmt"
	"strings"

	engineopts "github.com/phyten/what2do/internal/engine/opts"
)

func CanonicalizeColor(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "", "auto":
		return "auto", nil
	case "always", "never":
		return mode, nil
	default:
		return "", fmt.Errorf("invalid color: %s (want auto, always or never)", raw)
	}
}

// NormalizeReport validates the merged report settings. An unset format is
// inferred from Out, and falls back to text when writing to stdout.
func NormalizeReport(values ReportSettings) (ReportSettings, error) {
	var err error
	values.Out = strings.TrimSpace(values.Out)
	if strings.TrimSpace(values.Format) == "" {
		if values.Out != "" {
			values.Format = engineopts.OutputForPath(values.Out)
		} else {
			values.Format = "text"
		}
	}
	values.Format, err = engineopts.NormalizeOutput(values.Format)
	if err != nil {
		return values, err
	}
	values.Color, err = CanonicalizeColor(values.Color)
	if err != nil {
		return values, err
	}
	if values.Truncate < 0 || values.Truncate > engineopts.MaxTruncate {
		return values, fmt.Errorf("truncate must be between 0 and %d", engineopts.MaxTruncate)
	}
	return values, nil
}
