package termcolor

import (
	"strconv"
	"strings"
)

const reset = "\x1b[0m"

// Style is one SGR attribute set. Only the richest foreground colour that is
// set is emitted: FGTrue, then FG256, then FGBasic.
type Style struct {
	Bold      bool
	Underline bool
	Dim       bool
	FGBasic   *int
	FG256     *int
	FGTrue    *[3]uint8
}

// Apply wraps text in the escape sequence for s when enabled is true.
// Empty text and attribute-less styles are returned unchanged.
func Apply(s Style, text string, enabled bool) string {
	if !enabled || text == "" {
		return text
	}
	seq := s.sgr()
	if seq == "" {
		return text
	}
	return seq + text + reset
}

func (s Style) sgr() string {
	var params []string
	add := func(on bool, code string) {
		if on {
			params = append(params, code)
		}
	}
	add(s.Bold, "1")
	add(s.Dim, "2")
	add(s.Underline, "4")
	switch {
	case s.FGTrue != nil:
		params = append(params, "38;2;"+strconv.Itoa(int(s.FGTrue[0]))+";"+strconv.Itoa(int(s.FGTrue[1]))+";"+strconv.Itoa(int(s.FGTrue[2])))
	case s.FG256 != nil:
		params = append(params, "38;5;"+strconv.Itoa(*s.FG256))
	case s.FGBasic != nil:
		params = append(params, "3"+strconv.Itoa(*s.FGBasic))
	}
	if len(params) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(params, ";") + "m"
}
