// Package colorutil provides the colours used to draw layout previews.
package colorutil

import (
	"image/color"
	"math"
)

// Fixed preview colours.
var (
	Background = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Spectrum returns the i-th of n evenly spaced hues, for telling n layers
// apart.
func Spectrum(i, n int) color.RGBA {
	if n <= 0 {
		n = 1
	}
	h := 360 * float64(i%n) / float64(n)
	return HSVToRGB(h, 0.65, 0.9)
}

// HSVToRGB converts hue in degrees (0-360) and saturation, value in 0-1 to
// an opaque RGBA colour.
func HSVToRGB(h, s, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

// RGBToHSV converts c to hue in degrees (0-360) and saturation, value in 0-1.
func RGBToHSV(c color.RGBA) (h, s, v float64) {
	r := float64(c.R) / 255.0
	g := float64(c.G) / 255.0
	b := float64(c.B) / 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC
	if maxC > 0 {
		s = diff / maxC
	}

	switch {
	case diff == 0:
		h = 0
	case maxC == r:
		h = 60 * math.Mod((g-b)/diff, 6)
	case maxC == g:
		h = 60 * ((b-r)/diff + 2)
	default:
		h = 60 * ((r-g)/diff + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}
