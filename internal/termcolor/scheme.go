package termcolor

import (
	"strconv"
	"strings"
)

// Scheme is the terminal background the palette should stay readable on.
type Scheme int

const (
	SchemeDark Scheme = iota
	SchemeLight
)

// DetectScheme guesses the background from the environment.
// WHAT2DO_THEME (dark|light) wins, then COLORFGBG, then a TERM name
// containing "light". Anything else is dark.
func DetectScheme(env map[string]string) Scheme {
	switch strings.ToLower(strings.TrimSpace(env["WHAT2DO_THEME"])) {
	case "light":
		return SchemeLight
	case "dark":
		return SchemeDark
	}
	if bg, ok := colorfgbgBackground(env["COLORFGBG"]); ok {
		// 7 (white) と 9 以上 (明るい色) はライト背景
		if bg == 7 || bg >= 9 {
			return SchemeLight
		}
		return SchemeDark
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "light") {
		return SchemeLight
	}
	return SchemeDark
}

// colorfgbgBackground reads the last numeric field of COLORFGBG ("fg;bg" or
// "fg;default;bg").
func colorfgbgBackground(raw string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ";")
	for i := len(parts) - 1; i >= 0; i-- {
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[i])); err == nil && bg >= 0 {
			return bg, i > 0
		}
	}
	return 0, false
}
