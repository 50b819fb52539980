package lut

import (
	"fmt"

	"github.com/kovidgoyal/lut/types"
)

var _ = fmt.Print

// Resized returns a new LUT with a lattice of edge newSize, sampled from the
// receiver with tetrahedral interpolation. Bounds are unchanged, meta data
// is not carried over.
func (l *LUT) Resized(newSize int) *LUT {
	return l.ResizedWith(newSize, types.Tetrahedral)
}

// ResizedWith is Resized using the specified interpolation method.
func (l *LUT) ResizedWith(newSize int, method types.Interpolation) *LUT {
	if newSize < 1 {
		panic(fmt.Sprintf("cannot resize LUT to size: %d", newSize))
	}
	ans := New(newSize, l.lower, l.upper)
	if newSize < l.Size() {
		Logger().Debug("lossy LUT resize", "from", l.Size(), "to", newSize)
	}
	scale := 0.
	if newSize > 1 {
		scale = float64(l.Size()-1) / float64(newSize-1)
	}
	sample := l.sampler(method)
	ans.fill(func(r, g, b int) Color {
		return sample(float64(r)*scale, float64(g)*scale, float64(b)*scale)
	})
	return ans
}

// ResizedUnder returns the receiver itself if its size does not exceed
// ceiling, otherwise a copy resized to ceiling. Used by consumers that
// cannot handle lattices above some size.
func (l *LUT) ResizedUnder(ceiling int) *LUT {
	if l.Size() <= ceiling {
		return l
	}
	return l.Resized(ceiling)
}

// CombinedWith returns the composition other ∘ l evaluated at the lattice
// resolution and bounds of l: every output of l is fed through other. The
// size and bounds of other only matter through its functional behavior.
func (l *LUT) CombinedWith(other *LUT) *LUT {
	ans := New(l.Size(), l.lower, l.upper)
	ans.fill(func(r, g, b int) Color {
		return other.ColorAtColor(l.lattice.At(r, g, b))
	})
	return ans
}

func (l *LUT) Clamped(lower, upper float64) *LUT {
	return l.map_cells(func(c Color) Color { return c.Clamp(lower, upper) })
}

func (l *LUT) ClampedLower(lower float64) *LUT {
	return l.map_cells(func(c Color) Color { return c.ClampLower(lower) })
}

func (l *LUT) ClampedUpper(upper float64) *LUT {
	return l.map_cells(func(c Color) Color { return c.ClampUpper(upper) })
}

// OffsetBy adds offset to every output color.
func (l *LUT) OffsetBy(offset Color) *LUT {
	return l.map_cells(func(c Color) Color { return c.Add(offset) })
}

// MultipliedBy multiplies every output color by k, channel by channel.
func (l *LUT) MultipliedBy(k Color) *LUT {
	return l.map_cells(func(c Color) Color { return c.Mul(k) })
}

// Remapped maps every output channel affinely from [inputLow, inputHigh]
// onto [outputLow, outputHigh], clamping to the output range when bounded.
func (l *LUT) Remapped(inputLow, inputHigh, outputLow, outputHigh float64, bounded bool) *LUT {
	return l.RemappedFromColor(Gray(inputLow), Gray(inputHigh), Gray(outputLow), Gray(outputHigh), bounded)
}

// RemappedFromColor is Remapped with independent bounds for each channel.
func (l *LUT) RemappedFromColor(inputLow, inputHigh, outputLow, outputHigh Color, bounded bool) *LUT {
	return l.map_cells(func(c Color) Color {
		return c.Remap(inputLow, inputHigh, outputLow, outputHigh, bounded)
	})
}

// StrengthChanged blends every cell between the identity transform and the
// receiver: 0 gives identity, 1 gives the receiver.
func (l *LUT) StrengthChanged(strength float64) *LUT {
	ans := New(l.Size(), l.lower, l.upper)
	ans.CopyMetaPropertiesFrom(l)
	ans.fill(func(r, g, b int) Color {
		c := l.lattice.At(r, g, b)
		switch strength {
		case 1:
			return c
		case 0:
			return l.identity_color_at(r, g, b)
		}
		return l.identity_color_at(r, g, b).Lerp(c, strength)
	})
	return ans
}

// BoundsChanged reinterprets the same lattice under new input bounds. No
// resampling happens, only the mapping from input colors to lattice
// coordinates changes.
func (l *LUT) BoundsChanged(lower, upper float64) *LUT {
	check_bounds(lower, upper)
	ans := l.Clone()
	ans.lower, ans.upper = lower, upper
	return ans
}

// Inverted reflects every output color about the midpoint of the input
// bounds, v -> lower + upper - v. For the usual [0, 1] bounds this is 1 - v.
func (l *LUT) Inverted() *LUT {
	return l.map_cells(func(c Color) Color { return c.Invert(l.lower, l.upper) })
}
