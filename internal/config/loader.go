package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	engineopts "github.com/phyten/what2do/internal/engine/opts"
)

var scanKeyMap = map[string]string{
	"path":            "path",
	"paths":           "path",
	"root":            "path",
	"roots":           "path",
	"ext":             "ext",
	"exts":            "ext",
	"extension":       "ext",
	"extensions":      "ext",
	"lang":            "lang",
	"langs":           "lang",
	"language":        "lang",
	"languages":       "lang",
	"exclude":         "exclude",
	"excludes":        "exclude",
	"tag":             "tags",
	"tags":            "tags",
	"comments_only":   "comments_only",
	"exclude_typical": "exclude_typical",
	"hidden":          "hidden",
	"follow":          "follow_symlinks",
	"follow_symlinks": "follow_symlinks",
	"gitignore":       "gitignore",
	"use_gitignore":   "gitignore",
	"no_gitignore":    "no_gitignore",
	"max_file_bytes":  "max_file_bytes",
	"max_bytes":       "max_file_bytes",
}

var reportKeyMap = map[string]string{
	"format":   "format",
	"output":   "format",
	"out":      "out",
	"out_file": "out",
	"color":    "color",
	"colour":   "color",
	"truncate": "truncate",
}

// Load decodes the config file at path. The format follows the extension:
// .yaml/.yml, .toml, .json or .hcl. An empty path yields an empty Config.
func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var raw map[string]any
	switch ext {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".hcl":
		decoded, decodeErr := decodeHCL(data, path)
		if decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
		raw = decoded
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return decoded, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	scanSection := make(map[string]any)
	reportSection := make(map[string]any)

	if block, ok := raw["scan"]; ok {
		sub, err := toStringKeyMap(block)
		if err != nil {
			return cfg, fmt.Errorf("scan: %w", err)
		}
		if err := fillSection(scanSection, sub, scanKeyMap, "scan"); err != nil {
			return cfg, err
		}
	}
	if block, ok := raw["report"]; ok {
		sub, err := toStringKeyMap(block)
		if err != nil {
			return cfg, fmt.Errorf("report: %w", err)
		}
		if err := fillSection(reportSection, sub, reportKeyMap, "report"); err != nil {
			return cfg, err
		}
	}

	for key, value := range raw {
		norm := normalizeKey(key)
		switch norm {
		case "scan", "report":
			continue
		default:
			if canonical, ok := scanKeyMap[norm]; ok {
				scanSection[canonical] = value
				continue
			}
			if canonical, ok := reportKeyMap[norm]; ok {
				reportSection[canonical] = value
				continue
			}
			return cfg, fmt.Errorf("unknown config key: %s", key)
		}
	}

	if err := assignScan(scanSection, &cfg.Scan); err != nil {
		return cfg, fmt.Errorf("scan: %w", err)
	}
	if err := assignReport(reportSection, &cfg.Report); err != nil {
		return cfg, fmt.Errorf("report: %w", err)
	}
	return cfg, nil
}

func fillSection(dst, src map[string]any, allowed map[string]string, section string) error {
	for key, value := range src {
		canonical, ok := allowed[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("unknown %s key: %s", section, key)
		}
		dst[canonical] = value
	}
	return nil
}

func assignScan(section map[string]any, dst *ScanConfig) error {
	if raw, ok := section["gitignore"]; ok {
		b, err := expectBool(raw, "gitignore")
		if err != nil {
			return err
		}
		val := b
		dst.Gitignore = &val
	}
	if raw, ok := section["no_gitignore"]; ok {
		b, err := expectBool(raw, "no_gitignore")
		if err != nil {
			return err
		}
		flipped := !b
		dst.Gitignore = &flipped
	}

	for key, value := range section {
		switch key {
		case "gitignore", "no_gitignore":
			continue
		case "path":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Paths = &list
		case "ext":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Extensions = &list
		case "lang":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Langs = &list
		case "exclude":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Excludes = &list
		case "tags":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Tags = &list
		case "comments_only":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.CommentsOnly = &b
		case "exclude_typical":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.ExcludeTypical = &b
		case "hidden":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Hidden = &b
		case "follow_symlinks":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.FollowSymlinks = &b
		case "max_file_bytes":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.MaxFileBytes = &n
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func assignReport(section map[string]any, dst *ReportConfig) error {
	for key, value := range section {
		switch key {
		case "format":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.Format = &trimmed
		case "out":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.Out = &trimmed
		case "color":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.Color = &trimmed
		case "truncate":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.Truncate = &n
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return engineopts.ParseBool(v, field)
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %v", field, value)
		}
		return n, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer for %s, got %T", field, value)
	}
}

func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		parts := engineopts.SplitMulti([]string{v})
		return normalizeList(parts), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			out = append(out, str)
		}
		return normalizeList(out), nil
	case []string:
		return normalizeList(v), nil
	default:
		return nil, fmt.Errorf("expected string or list for %s, got %T", field, value)
	}
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	norm = strings.ReplaceAll(norm, "-", "_")
	return norm
}
