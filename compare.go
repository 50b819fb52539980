package lut

import (
	"fmt"
	"math"
)

var _ = fmt.Print

const (
	// Maximum per channel difference for a lattice to count as identity.
	IdentityTolerance = 1e-9
	// Maximum per channel difference used by EqualsEssence.
	EssenceTolerance = 1e-6
)

// EqualsIdentityLUT reports whether every cell equals the identity value at
// its coordinates, to within IdentityTolerance.
func (l *LUT) EqualsIdentityLUT() bool {
	s := l.Size()
	for i, c := range l.lattice.cells {
		r, g, b := i%s, (i/s)%s, i/(s*s)
		if !c.EqualWithin(l.identity_color_at(r, g, b), IdentityTolerance) {
			return false
		}
	}
	return true
}

// EqualsLUT is strict equality: same size, same bounds and identical
// lattice contents. Meta data is ignored.
func (l *LUT) EqualsLUT(other *LUT) bool {
	if l == other {
		return true
	}
	return other != nil && l.lower == other.lower && l.upper == other.upper && l.lattice.Equal(other.lattice)
}

// EqualsEssence compares the transforms of two LUTs ignoring title,
// description and other meta data. There is a single concrete LUT type so
// compareType never causes a mismatch. When sizes are not compared and
// differ, the larger LUT is resampled to the size of the smaller one before
// comparing lattices to within EssenceTolerance.
func (l *LUT) EqualsEssence(other *LUT, compareType, compareSize, compareInputBounds bool) bool {
	_ = compareType
	if other == nil {
		return false
	}
	if compareSize && l.Size() != other.Size() {
		return false
	}
	if compareInputBounds && (l.lower != other.lower || l.upper != other.upper) {
		return false
	}
	a, b := l, other
	switch {
	case a.Size() > b.Size():
		a = a.Resized(b.Size())
	case b.Size() > a.Size():
		b = b.Resized(a.Size())
	}
	return a.lattice.EqualWithin(b.lattice, EssenceTolerance)
}

// conformed returns other at the size of l, resampling if needed.
func (l *LUT) conformed(other *LUT) *LUT {
	if other.Size() == l.Size() {
		return other
	}
	Logger().Debug("resampling LUT for comparison", "from", other.Size(), "to", l.Size())
	return other.Resized(l.Size())
}

// SymmetricMAPE returns, per channel, the symmetric mean absolute percentage
// error between l and other over every lattice cell: the mean of
// |a-b| / ((|a|+|b|)/2). Cells where both values are zero count as zero
// error. other is resampled to the size of l if the sizes differ.
func (l *LUT) SymmetricMAPE(other *LUT) Color {
	o := l.conformed(other).lattice.cells
	var sum [3]float64
	for i, a := range l.lattice.cells {
		b := o[i]
		sum[0] += smape(a.R, b.R)
		sum[1] += smape(a.G, b.G)
		sum[2] += smape(a.B, b.B)
	}
	n := float64(len(o))
	return Color{sum[0] / n, sum[1] / n, sum[2] / n}
}

func smape(a, b float64) float64 {
	d := (math.Abs(a) + math.Abs(b)) / 2
	if d == 0 {
		return 0
	}
	return math.Abs(a-b) / d
}

// MaxAbsoluteError returns the per channel maximum of |a-b| over every cell.
// other is resampled to the size of l if the sizes differ.
func (l *LUT) MaxAbsoluteError(other *LUT) (ans Color) {
	o := l.conformed(other).lattice.cells
	for i, a := range l.lattice.cells {
		ans = ans.Max(a.Sub(o[i]).Abs())
	}
	return
}

// AverageAbsoluteError returns the per channel mean of |a-b| over every cell.
// other is resampled to the size of l if the sizes differ.
func (l *LUT) AverageAbsoluteError(other *LUT) Color {
	o := l.conformed(other).lattice.cells
	var sum Color
	for i, a := range l.lattice.cells {
		sum = sum.Add(a.Sub(o[i]).Abs())
	}
	return sum.Scale(1 / float64(len(o)))
}
