package render

import (
	"math"
)

func clamp01(x float64) float64 {
	return max(0, min(x, 1))
}

// linear_to_srgb applies the sRGB companding function, clipping to [0, 1].
func linear_to_srgb(c float64) float64 {
	if c <= 0 {
		return 0
	}
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return clamp01(1.055*math.Pow(c, 1.0/2.4) - 0.055)
}

func srgb_to_linear(c float64) float64 {
	if c <= 0.04045 {
		return max(0, c/12.92)
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}
