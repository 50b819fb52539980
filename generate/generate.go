// Package generate synthesizes LUTs from color transforms defined in
// perceptual color models.
package generate

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/kovidgoyal/lut"
)

var _ = fmt.Print

// FromFunc returns a LUT of the specified size over [0, 1] whose value at
// every lattice point is f applied to the identity color at that point.
func FromFunc(size int, f func(colorful.Color) colorful.Color) *lut.LUT {
	ans := lut.Identity(size, 0, 1)
	err := ans.ParallelLoop(func(r, g, b int) {
		c := ans.ColorAt(r, g, b)
		o := f(colorful.Color{R: c.R, G: c.G, B: c.B})
		ans.SetColor(lut.RGB(o.R, o.G, o.B), r, g, b)
	})
	if err != nil {
		panic(err)
	}
	return ans
}

// HueShift rotates hues by degrees in the HSV model.
func HueShift(size int, degrees float64) *lut.LUT {
	ans := FromFunc(size, func(c colorful.Color) colorful.Color {
		h, s, v := c.Hsv()
		h = math.Mod(h+degrees, 360)
		if h < 0 {
			h += 360
		}
		return colorful.Hsv(h, s, v)
	})
	ans.Title = fmt.Sprintf("Hue shift %g°", degrees)
	return ans
}

// Saturation scales saturation by factor in the HSL model. Factor 0 gives
// grayscale, 1 identity.
func Saturation(size int, factor float64) *lut.LUT {
	ans := FromFunc(size, func(c colorful.Color) colorful.Color {
		h, s, l := c.Hsl()
		return colorful.Hsl(h, max(0, min(s*factor, 1)), l)
	})
	ans.Title = fmt.Sprintf("Saturation x%g", factor)
	return ans
}

const (
	skin_hue_start = 14.0
	skin_hue_end   = 32.0
	skin_hue_band  = 5.0
)

// FalseSkin replaces skin tone hues with flat false colors to make them easy
// to spot: blue at the center of the skin range, green above it and magenta
// below it. All other colors are unchanged.
func FalseSkin(size int) *lut.LUT {
	mid := skin_hue_start + (skin_hue_end-skin_hue_start)/2
	ans := FromFunc(size, func(c colorful.Color) colorful.Color {
		h, s, _ := c.Hsl()
		if s == 0 || h < skin_hue_start || h > skin_hue_end {
			return c
		}
		switch {
		case h >= mid-skin_hue_band && h <= mid+skin_hue_band:
			return colorful.Color{R: 0, G: 0, B: 1}
		case h > mid:
			return colorful.Color{R: 0, G: 1, B: 0}
		}
		return colorful.Color{R: 1, G: 0, B: 1}
	})
	ans.Title = "Skin tone false color"
	return ans
}
