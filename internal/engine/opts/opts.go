package opts

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phyten/what2do/internal/detect"
	"github.com/phyten/what2do/internal/engine"
	"github.com/phyten/what2do/internal/matcher"
	"github.com/phyten/what2do/internal/walker"
)

const (
	// MaxTruncate caps --truncate so a typo cannot allocate huge padding.
	MaxTruncate = 10000
)

// Formats lists every report format accepted by --format.
var Formats = []string{"text", "grouped", "table", "tsv", "csv", "json", "ndjson", "markdown"}

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}
)

// Defaults returns the baseline scan options shared by every input layer.
func Defaults() engine.Options {
	return engine.Options{
		Roots:          []string{"."},
		Extensions:     nil,
		Excludes:       nil,
		Tags:           append([]string(nil), matcher.DefaultTags...),
		CommentsOnly:   false,
		ExcludeTypical: false,
		Hidden:         false,
		FollowSymlinks: false,
		UseGitignore:   true,
		MaxFileBytes:   0,
	}
}

// NormalizeAndValidate ensures the options are canonical and within the allowed ranges.
func NormalizeAndValidate(o *engine.Options) error {
	o.Roots = trimSlice(o.Roots)
	if len(o.Roots) == 0 {
		o.Roots = []string{"."}
	}
	o.Extensions = walker.NormalizeExtensions(o.Extensions)
	o.Langs = detect.CanonicalLangs(trimSlice(o.Langs))
	for _, lang := range o.Langs {
		if !detect.KnownLanguage(lang) {
			return fmt.Errorf("invalid --lang: unknown language %q", lang)
		}
	}
	o.Excludes = trimSlice(o.Excludes)

	o.Tags = trimSlice(o.Tags)
	if len(o.Tags) == 0 {
		o.Tags = append([]string(nil), matcher.DefaultTags...)
	}
	tags, err := matcher.NormalizeTags(o.Tags)
	if err != nil {
		return fmt.Errorf("invalid --tags: %w", err)
	}
	o.Tags = tags

	if o.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must be >= 0")
	}
	return nil
}

// ParseBool converts a string literal into a boolean, accepting multiple synonyms.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses a string into an int and ensures it falls within [min, max].
// If max < min, the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	if n < min {
		if max >= min {
			return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	}
	if max >= min && n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}

// NormalizeOutput validates and lower-cases the --format value.
func NormalizeOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "md" {
		return "markdown", nil
	}
	for _, f := range Formats {
		if v == f {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid --format: %s (want one of %s)", value, strings.Join(Formats, ", "))
}

// OutputForPath picks the report format for --out when --format is absent:
// markdown for ".md" files and tsv for everything else.
func OutputForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return "markdown"
	}
	return "tsv"
}

// SplitMulti turns repeated flag values (and comma-separated values) into a flat slice.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			part := strings.TrimSpace(piece)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func parseInt(raw, key string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}

func trimSlice(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := values[:0]
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
