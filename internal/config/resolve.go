package config

import "strings"

// Layers are applied in order; the last non-nil value wins and nil leaves the
// value of the layer below in place.

func pick[T any](below T, layer *T) T {
	if layer == nil {
		return below
	}
	return *layer
}

// pickTrimmed is pick for free-form strings such as paths and format names.
func pickTrimmed(below string, layer *string) string {
	return strings.TrimSpace(pick(below, layer))
}

// pickList replaces below with a copy of the layer's list. An empty list set
// by a layer (for example WHAT2DO_EXT="") clears the value instead of keeping
// the lower layer.
func pickList(below []string, layer *[]string) []string {
	if layer == nil {
		return cloneStrings(below)
	}
	if len(*layer) == 0 {
		return []string{}
	}
	return cloneStrings(*layer)
}
