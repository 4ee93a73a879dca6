// Package colorutil provides the product color palette and shared color
// conversions for the print studio application.
package colorutil

import (
	"image/color"
	"math"
	"sort"
)

// palette maps the offered product color names to their render colors.
// Whites are kept slightly off-white so the shaded model keeps visible form.
var palette = map[string]color.NRGBA{
	"white": {R: 242, G: 242, B: 240, A: 255},
	"black": {R: 38, G: 38, B: 40, A: 255},
	"navy":  {R: 42, G: 54, B: 94, A: 255},
	"red":   {R: 182, G: 46, B: 46, A: 255},
}

// Lookup returns the render color for a product color name.
func Lookup(name string) (color.NRGBA, bool) {
	c, ok := palette[name]
	return c, ok
}

// Names returns the available product color names in sorted order.
func Names() []string {
	names := make([]string, 0, len(palette))
	for name := range palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Darken scales the value channel of a color down by frac (0-1),
// preserving hue and saturation. Used to shade attached parts such as
// the mug handle relative to the body.
func Darken(c color.NRGBA, frac float64) color.NRGBA {
	h, s, v := RGBToHSV(float64(c.R), float64(c.G), float64(c.B))
	v *= 1 - frac
	r, g, b := HSVToRGB(h, s, v)
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: c.A}
}

// RGBToHSV converts RGB (0-255) to HSV (H 0-360, S 0-1, V 0-255).
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC * 255.0

	if maxC == 0 {
		s = 0
	} else {
		s = diff / maxC
	}

	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = math.Mod(60*(g-b)/diff+360, 360)
	} else if maxC == g {
		h = 60*(b-r)/diff + 120
	} else {
		h = 60*(r-g)/diff + 240
	}
	return h, s, v
}

// HSVToRGB converts HSV (H 0-360, S 0-1, V 0-255) back to RGB (0-255).
func HSVToRGB(h, s, v float64) (r, g, b float64) {
	v /= 255.0
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

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
	return (r + m) * 255, (g + m) * 255, (b + m) * 255
}
