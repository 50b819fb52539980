package lut

import (
	"fmt"
	"math"
)

var _ = fmt.Print

// Color is a real valued RGB triple. Input colors live in the input domain of
// a LUT, output colors are unbounded since grading can overshoot 0..1.
type Color struct {
	R, G, B float64
}

// RGB creates a color from its three components.
func RGB(r, g, b float64) Color { return Color{R: r, G: g, B: b} }

// Gray creates a color with all three components set to v.
func Gray(v float64) Color { return Color{R: v, G: v, B: v} }

func (c Color) String() string {
	return fmt.Sprintf("Color{%.6g %.6g %.6g}", c.R, c.G, c.B)
}

func (c Color) Add(o Color) Color { return Color{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c Color) Sub(o Color) Color { return Color{c.R - o.R, c.G - o.G, c.B - o.B} }
func (c Color) Mul(o Color) Color { return Color{c.R * o.R, c.G * o.G, c.B * o.B} }
func (c Color) Scale(k float64) Color {
	return Color{c.R * k, c.G * k, c.B * k}
}

// Lerp blends linearly from c towards to, t=0 gives c and t=1 gives to.
func (c Color) Lerp(to Color, t float64) Color {
	return Color{lerp(c.R, to.R, t), lerp(c.G, to.G, t), lerp(c.B, to.B, t)}
}

func (c Color) Abs() Color { return Color{math.Abs(c.R), math.Abs(c.G), math.Abs(c.B)} }

// Min returns the per-channel minimum of c and o.
func (c Color) Min(o Color) Color { return Color{min(c.R, o.R), min(c.G, o.G), min(c.B, o.B)} }

// Max returns the per-channel maximum of c and o.
func (c Color) Max(o Color) Color { return Color{max(c.R, o.R), max(c.G, o.G), max(c.B, o.B)} }

func (c Color) MinComponent() float64 { return min(c.R, c.G, c.B) }
func (c Color) MaxComponent() float64 { return max(c.R, c.G, c.B) }

func (c Color) Clamp(lo, hi float64) Color {
	return Color{clamp(c.R, lo, hi), clamp(c.G, lo, hi), clamp(c.B, lo, hi)}
}

func (c Color) ClampLower(lo float64) Color { return Color{max(c.R, lo), max(c.G, lo), max(c.B, lo)} }
func (c Color) ClampUpper(hi float64) Color { return Color{min(c.R, hi), min(c.G, hi), min(c.B, hi)} }

// Remap maps every channel affinely from [in_low, in_high] onto
// [out_low, out_high], each channel using its own bounds. When bounded the
// result is clamped to the output range. A channel whose input range is
// empty maps to its output low.
func (c Color) Remap(in_low, in_high, out_low, out_high Color, bounded bool) Color {
	return Color{
		remap(c.R, in_low.R, in_high.R, out_low.R, out_high.R, bounded),
		remap(c.G, in_low.G, in_high.G, out_low.G, out_high.G, bounded),
		remap(c.B, in_low.B, in_high.B, out_low.B, out_high.B, bounded),
	}
}

// Invert reflects every channel about the midpoint of [lo, hi].
func (c Color) Invert(lo, hi float64) Color {
	return Color{lo + hi - c.R, lo + hi - c.G, lo + hi - c.B}
}

func (c Color) Equal(o Color) bool { return c == o }

// EqualWithin reports whether every channel of c is within eps of o.
func (c Color) EqualWithin(o Color, eps float64) bool {
	return math.Abs(c.R-o.R) <= eps && math.Abs(c.G-o.G) <= eps && math.Abs(c.B-o.B) <= eps
}

func lerp(a, b, t float64) float64 { return a*(1-t) + b*t }

func clamp(v, lo, hi float64) float64 { return max(lo, min(v, hi)) }

func remap(v, in_low, in_high, out_low, out_high float64, bounded bool) float64 {
	if in_high == in_low {
		return out_low
	}
	ans := out_low + (v-in_low)*(out_high-out_low)/(in_high-in_low)
	if bounded {
		ans = clamp(ans, min(out_low, out_high), max(out_low, out_high))
	}
	return ans
}
