package lut

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/lut/types"
)

var _ = fmt.Print

// axis returns the indices of the two lattice planes surrounding the real
// valued coordinate x and the weight of the upper one. x is clamped to
// [0, size-1] and NaN is treated as 0. On the upper boundary both indices
// are the boundary so that interpolation is exact there.
func axis(x float64, size int) (lo, hi int, frac float64) {
	top := size - 1
	if math.IsNaN(x) {
		x = 0
	}
	x = max(0, min(x, float64(top)))
	lof := math.Trunc(x)
	lo = int(lof)
	if lo >= top {
		return top, top, 0
	}
	return lo, lo + 1, x - lof
}

// InterpolatedColorAt samples the lattice at real valued lattice coordinates
// using tetrahedral interpolation. Coordinates outside [0, size-1] are
// clamped, there is no extrapolation.
func (l *LUT) InterpolatedColorAt(r, g, b float64) Color {
	s := l.Size()
	r0, r1, rx := axis(r, s)
	g0, g1, ry := axis(g, s)
	b0, b1, rz := axis(b, s)
	at := l.lattice.At
	c000 := at(r0, g0, b0)
	c111 := at(r1, g1, b1)
	var c1, c2, c3 Color
	switch {
	case rx >= ry && ry >= rz:
		c100, c110 := at(r1, g0, b0), at(r1, g1, b0)
		c1, c2, c3 = c100.Sub(c000), c110.Sub(c100), c111.Sub(c110)
	case rx >= rz && rz >= ry:
		c100, c101 := at(r1, g0, b0), at(r1, g0, b1)
		c1, c2, c3 = c100.Sub(c000), c111.Sub(c101), c101.Sub(c100)
	case rz >= rx && rx >= ry:
		c001, c101 := at(r0, g0, b1), at(r1, g0, b1)
		c1, c2, c3 = c101.Sub(c001), c111.Sub(c101), c001.Sub(c000)
	case ry >= rx && rx >= rz:
		c010, c110 := at(r0, g1, b0), at(r1, g1, b0)
		c1, c2, c3 = c110.Sub(c010), c010.Sub(c000), c111.Sub(c110)
	case ry >= rz && rz >= rx:
		c010, c011 := at(r0, g1, b0), at(r0, g1, b1)
		c1, c2, c3 = c111.Sub(c011), c010.Sub(c000), c011.Sub(c010)
	default:
		c001, c011 := at(r0, g0, b1), at(r0, g1, b1)
		c1, c2, c3 = c111.Sub(c011), c011.Sub(c001), c001.Sub(c000)
	}
	return c000.Add(c1.Scale(rx)).Add(c2.Scale(ry)).Add(c3.Scale(rz))
}

// TrilinearColorAt samples the lattice at real valued lattice coordinates
// by blending all eight corners of the surrounding cube. Boundary handling
// is the same as for InterpolatedColorAt.
func (l *LUT) TrilinearColorAt(r, g, b float64) Color {
	s := l.Size()
	r0, r1, rx := axis(r, s)
	g0, g1, ry := axis(g, s)
	b0, b1, rz := axis(b, s)
	at := l.lattice.At
	c00 := at(r0, g0, b0).Lerp(at(r1, g0, b0), rx)
	c10 := at(r0, g1, b0).Lerp(at(r1, g1, b0), rx)
	c01 := at(r0, g0, b1).Lerp(at(r1, g0, b1), rx)
	c11 := at(r0, g1, b1).Lerp(at(r1, g1, b1), rx)
	c0 := c00.Lerp(c10, ry)
	c1 := c01.Lerp(c11, ry)
	return c0.Lerp(c1, rz)
}

func (l *LUT) sampler(method types.Interpolation) func(r, g, b float64) Color {
	switch method {
	case types.Trilinear:
		return l.TrilinearColorAt
	case types.Tetrahedral:
		return l.InterpolatedColorAt
	}
	panic(fmt.Sprintf("unknown interpolation method: %s", method))
}
