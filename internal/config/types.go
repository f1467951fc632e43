package config

import (
	"github.com/phyten/what2do/internal/engine"
)

// ScanConfig is one layer of scan settings. A nil field leaves the value of
// the previous layer untouched.
type ScanConfig struct {
	Paths          *[]string `yaml:"path" toml:"path" json:"path"`
	Extensions     *[]string `yaml:"ext" toml:"ext" json:"ext"`
	Langs          *[]string `yaml:"lang" toml:"lang" json:"lang"`
	Excludes       *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	Tags           *[]string `yaml:"tags" toml:"tags" json:"tags"`
	CommentsOnly   *bool     `yaml:"comments_only" toml:"comments_only" json:"comments_only"`
	ExcludeTypical *bool     `yaml:"exclude_typical" toml:"exclude_typical" json:"exclude_typical"`
	Hidden         *bool     `yaml:"hidden" toml:"hidden" json:"hidden"`
	FollowSymlinks *bool     `yaml:"follow_symlinks" toml:"follow_symlinks" json:"follow_symlinks"`
	Gitignore      *bool     `yaml:"gitignore" toml:"gitignore" json:"gitignore"`
	MaxFileBytes   *int      `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
}

// ReportConfig is one layer of report settings.
type ReportConfig struct {
	Format   *string `yaml:"format" toml:"format" json:"format"`
	Out      *string `yaml:"out" toml:"out" json:"out"`
	Color    *string `yaml:"color" toml:"color" json:"color"`
	Truncate *int    `yaml:"truncate" toml:"truncate" json:"truncate"`
}

type Config struct {
	Scan   ScanConfig   `yaml:"scan" toml:"scan" json:"scan"`
	Report ReportConfig `yaml:"report" toml:"report" json:"report"`
}

type ScanSettings struct {
	Paths          []string
	Extensions     []string
	Langs          []string
	Excludes       []string
	Tags           []string
	CommentsOnly   bool
	ExcludeTypical bool
	Hidden         bool
	FollowSymlinks bool
	Gitignore      bool
	MaxFileBytes   int
}

type ReportSettings struct {
	// Format is empty until resolved; NormalizeReport infers it from Out.
	Format   string
	Out      string
	Color    string
	Truncate int
}

func ScanSettingsFromOptions(opts engine.Options) ScanSettings {
	return ScanSettings{
		Paths:          cloneStrings(opts.Roots),
		Extensions:     cloneStrings(opts.Extensions),
		Langs:          cloneStrings(opts.Langs),
		Excludes:       cloneStrings(opts.Excludes),
		Tags:           cloneStrings(opts.Tags),
		CommentsOnly:   opts.CommentsOnly,
		ExcludeTypical: opts.ExcludeTypical,
		Hidden:         opts.Hidden,
		FollowSymlinks: opts.FollowSymlinks,
		Gitignore:      opts.UseGitignore,
		MaxFileBytes:   opts.MaxFileBytes,
	}
}

func (s ScanSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Roots = cloneStrings(s.Paths)
	opts.Extensions = cloneStrings(s.Extensions)
	opts.Langs = cloneStrings(s.Langs)
	opts.Excludes = cloneStrings(s.Excludes)
	opts.Tags = cloneStrings(s.Tags)
	opts.CommentsOnly = s.CommentsOnly
	opts.ExcludeTypical = s.ExcludeTypical
	opts.Hidden = s.Hidden
	opts.FollowSymlinks = s.FollowSymlinks
	opts.UseGitignore = s.Gitignore
	opts.MaxFileBytes = s.MaxFileBytes
}

func DefaultReportSettings() ReportSettings {
	return ReportSettings{
		Format:   "",
		Out:      "",
		Color:    "auto",
		Truncate: 0,
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
