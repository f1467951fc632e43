package colorutil

import "math"

// RGB is an sRGB colour with 8-bit channels.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// Luminance returns the WCAG relative luminance of c.
func Luminance(c RGB) float64 {
	r := srgbToLinear(float64(c.R) / 255.0)
	g := srgbToLinear(float64(c.G) / 255.0)
	b := srgbToLinear(float64(c.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG contrast ratio between two colours (1..21).
func ContrastRatio(fg, bg RGB) float64 {
	l1 := Luminance(fg)
	l2 := Luminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// Mix blends a toward b; t=0 yields a and t=1 yields b.
func Mix(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ch := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return RGB{ch(a.R, b.R), ch(a.G, b.G), ch(a.B, b.B)}
}

// Readable keeps the hue of fg but moves it toward black or white (whichever
// contrasts more with bg) until the ratio reaches minRatio.
func Readable(fg, bg RGB, minRatio float64) RGB {
	if minRatio <= 0 {
		minRatio = 4.5
	}
	if ContrastRatio(fg, bg) >= minRatio {
		return fg
	}
	target := Black
	if ContrastRatio(White, bg) > ContrastRatio(Black, bg) {
		target = White
	}
	for step := 1; step <= 10; step++ {
		c := Mix(fg, target, float64(step)/10)
		if ContrastRatio(c, bg) >= minRatio {
			return c
		}
	}
	return target
}
