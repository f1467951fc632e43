package termcolor

import (
	"strings"

	"github.com/phyten/what2do/internal/colorutil"
)

// background approximations used to keep truecolor tags readable
var (
	darkBackground  = colorutil.RGB{R: 17, G: 24, B: 39}
	lightBackground = colorutil.RGB{R: 249, G: 250, B: 251}
)

type tagColor struct {
	basic int
	rgb   colorutil.RGB
}

var tagColors = map[string]tagColor{
	"TODO":  {basic: 3, rgb: colorutil.RGB{R: 250, G: 204, B: 21}},
	"FIXME": {basic: 1, rgb: colorutil.RGB{R: 239, G: 68, B: 68}},
	"XXX":   {basic: 5, rgb: colorutil.RGB{R: 217, G: 70, B: 239}},
	"HACK":  {basic: 6, rgb: colorutil.RGB{R: 34, G: 211, B: 238}},
}

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// PathStyle highlights file locations in table and grouped output.
func PathStyle() Style {
	color := 4
	return Style{FGBasic: &color}
}

// DimStyle is used for secondary columns such as scope and context.
func DimStyle() Style {
	return Style{Dim: true}
}

// TagStyle picks the colour of a marker tag for the given scheme and profile.
// Tags outside the built-in set are rendered bold without colour.
func TagStyle(tag string, scheme Scheme, profile Profile) Style {
	c, ok := tagColors[strings.ToUpper(strings.TrimSpace(tag))]
	if !ok {
		return Style{Bold: true}
	}
	bg := darkBackground
	if scheme == SchemeLight {
		bg = lightBackground
	}
	rgb := colorutil.Readable(c.rgb, bg, 4.5)
	switch profile {
	case ProfileTrueColor:
		v := [3]uint8{rgb.R, rgb.G, rgb.B}
		return Style{Bold: true, FGTrue: &v}
	case ProfileANSI256:
		idx := rgbToANSI256(rgb.R, rgb.G, rgb.B)
		return Style{Bold: true, FG256: &idx}
	default:
		basic := c.basic
		if scheme == SchemeLight && basic == 3 {
			// yellow is unreadable on light terminals
			basic = 1
		}
		return Style{Bold: true, FGBasic: &basic}
	}
}

func rgbToANSI256(r, g, b uint8) int {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}
