// Package termcolor decides whether and how to colour terminal reports.
package termcolor

import "os"

// Palette bundles the colour decision for one output stream.
type Palette struct {
	Enabled bool
	Scheme  Scheme
	Profile Profile
}

// Resolve turns a --color value into a palette for stdout. "auto" honours
// NO_COLOR, CLICOLOR, CLICOLOR_FORCE, FORCE_COLOR and TERM before falling
// back to the TTY check.
func Resolve(value string, stdout *os.File, env map[string]string) (Palette, error) {
	mode, err := ParseMode(value)
	if err != nil {
		return Palette{}, err
	}
	if mode == ModeAuto {
		mode = DetectMode(stdout, env)
	}
	return Palette{
		Enabled: Enabled(mode, stdout),
		Scheme:  DetectScheme(env),
		Profile: DetectProfile(env),
	}, nil
}

// Paint applies s when the palette is enabled.
func (p Palette) Paint(s Style, text string) string {
	return Apply(s, text, p.Enabled)
}

// Tag colours a marker tag.
func (p Palette) Tag(tag string) string {
	if !p.Enabled {
		return tag
	}
	return Apply(TagStyle(tag, p.Scheme, p.Profile), tag, true)
}
