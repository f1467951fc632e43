package config

import "strings"

// MergeScan applies config layers (file, env, flags) over base in order.
func MergeScan(base ScanSettings, layers ...ScanConfig) ScanSettings {
	out := base
	for _, layer := range layers {
		out.Paths = pickList(out.Paths, layer.Paths)
		out.Extensions = pickList(out.Extensions, layer.Extensions)
		out.Langs = pickList(out.Langs, layer.Langs)
		out.Excludes = pickList(out.Excludes, layer.Excludes)
		out.Tags = pickList(out.Tags, layer.Tags)
		out.CommentsOnly = pick(out.CommentsOnly, layer.CommentsOnly)
		out.ExcludeTypical = pick(out.ExcludeTypical, layer.ExcludeTypical)
		out.Hidden = pick(out.Hidden, layer.Hidden)
		out.FollowSymlinks = pick(out.FollowSymlinks, layer.FollowSymlinks)
		out.Gitignore = pick(out.Gitignore, layer.Gitignore)
		out.MaxFileBytes = pick(out.MaxFileBytes, layer.MaxFileBytes)
	}
	return out
}

// MergeReport is MergeScan for report settings. An unset colour means auto.
func MergeReport(base ReportSettings, layers ...ReportConfig) ReportSettings {
	out := base
	for _, layer := range layers {
		out.Format = pickTrimmed(out.Format, layer.Format)
		out.Out = pickTrimmed(out.Out, layer.Out)
		out.Color = pickTrimmed(out.Color, layer.Color)
		out.Truncate = pick(out.Truncate, layer.Truncate)
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}
