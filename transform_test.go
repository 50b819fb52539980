package lut

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovidgoyal/lut/types"
)

var _ = fmt.Print

func TestResized(t *testing.T) {
	t.Run("same size is exact", func(t *testing.T) {
		for _, size := range []int{2, 3, 8, 17} {
			l := graded(size, -0.5, 2)
			for _, method := range []types.Interpolation{types.Tetrahedral, types.Trilinear} {
				r := l.ResizedWith(size, method)
				assert.True(t, r.EqualsLUT(l), "size: %d method: %s", size, method)
			}
		}
	})
	t.Run("identity stays identity", func(t *testing.T) {
		for _, sizes := range [][2]int{{2, 5}, {9, 3}, {17, 33}, {33, 17}, {4, 4}} {
			r := Identity(sizes[0], 0, 1).Resized(sizes[1])
			assert.Equal(t, sizes[1], r.Size())
			assert.True(t, r.EqualsIdentityLUT(), "%d -> %d", sizes[0], sizes[1])
		}
	})
	t.Run("upsampling interpolates", func(t *testing.T) {
		l := New(2, 0, 1)
		l.SetColor(Gray(1), 1, 1, 1)
		r := l.Resized(3)
		assert.Equal(t, Gray(0.5), r.ColorAt(1, 1, 1))
		assert.Equal(t, Gray(1), r.ColorAt(2, 2, 2))
		assert.Equal(t, Gray(0), r.ColorAt(2, 0, 0))
		assert.Equal(t, Gray(0.125), l.ResizedWith(3, types.Trilinear).ColorAt(1, 1, 1))
	})
	t.Run("bounds kept meta dropped", func(t *testing.T) {
		l := graded(5, -1, 4).WithPassthroughFileOptions(Options{"a": "b"})
		r := l.Resized(9)
		lo, hi := r.Bounds()
		assert.Equal(t, [2]float64{-1, 4}, [2]float64{lo, hi})
		assert.Empty(t, r.Title)
		assert.Nil(t, r.PassthroughFileOptions())
		assert.Equal(t, "graded", l.Title)
	})
	t.Run("size one", func(t *testing.T) {
		l := graded(5, 0, 1)
		r := l.Resized(1)
		assert.Equal(t, l.ColorAt(0, 0, 0), r.ColorAt(0, 0, 0))
		up := r.Resized(4)
		up.Loop(func(x, y, z int) { assert.Equal(t, l.ColorAt(0, 0, 0), up.ColorAt(x, y, z)) })
	})
	t.Run("invalid size", func(t *testing.T) {
		assert.Panics(t, func() { Identity(3, 0, 1).Resized(0) })
	})
	t.Run("lossy resize is logged", func(t *testing.T) {
		var buf bytes.Buffer
		SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
		t.Cleanup(func() { SetLogger(nil) })
		Identity(5, 0, 1).Resized(3)
		assert.Contains(t, buf.String(), "lossy LUT resize")
		buf.Reset()
		Identity(3, 0, 1).Resized(5)
		assert.Empty(t, buf.String())
	})
}

func TestResizedUnder(t *testing.T) {
	l := graded(9, 0, 1)
	assert.Same(t, l, l.ResizedUnder(9))
	assert.Same(t, l, l.ResizedUnder(64))
	r := l.ResizedUnder(5)
	assert.Equal(t, 5, r.Size())
	// 9 -> 5 keeps every other grid point
	assert.Equal(t, l.ColorAt(2, 4, 6), r.ColorAt(1, 2, 3))
}

func TestCombinedWith(t *testing.T) {
	t.Run("identity is neutral", func(t *testing.T) {
		for _, size := range []int{2, 5, 17} {
			l := graded(size, 0, 1)
			assert_cells_close(t, l, l.CombinedWith(Identity(size, 0, 1)), 1e-12)
			assert_cells_close(t, l, l.CombinedWith(Identity(3, 0, 1)), 1e-12)
		}
		l := graded(7, -2, 2)
		assert_cells_close(t, l, l.CombinedWith(Identity(4, -2, 2)), 1e-12)
	})
	t.Run("identity first", func(t *testing.T) {
		l := graded(5, 0, 1)
		assert_cells_close(t, l, Identity(5, 0, 1).CombinedWith(l), 1e-12)
	})
	t.Run("composition order", func(t *testing.T) {
		offset := Identity(2, 0, 1).OffsetBy(Gray(0.25))
		scale := Identity(2, 0, 1).MultipliedBy(Gray(0.5))
		// offset then scale: (v + 0.25) * 0.5
		a := offset.CombinedWith(scale)
		assert.True(t, a.ColorAt(0, 0, 0).EqualWithin(Gray(0.125), 1e-12))
		// scale then offset: v*0.5 + 0.25
		b := scale.CombinedWith(offset)
		assert.True(t, b.ColorAt(1, 1, 1).EqualWithin(Gray(0.75), 1e-12))
	})
	t.Run("shape of receiver", func(t *testing.T) {
		l := graded(4, -1, 1)
		l.Title = "t"
		c := l.CombinedWith(Identity(9, 0, 5))
		assert.Equal(t, 4, c.Size())
		lo, hi := c.Bounds()
		assert.Equal(t, [2]float64{-1, 1}, [2]float64{lo, hi})
		assert.Empty(t, c.Title)
		// outputs below the domain of other clamp to its lower bound
		assert.Equal(t, Gray(0), c.ColorAt(0, 0, 0))
	})
}

func TestClamped(t *testing.T) {
	l := graded(5, 0, 1).OffsetBy(RGB(-0.3, 0.2, 0.5))
	c := l.Clamped(0, 1)
	c.Loop(func(r, g, b int) {
		v := c.ColorAt(r, g, b)
		assert.True(t, v.MinComponent() >= 0 && v.MaxComponent() <= 1, "%s at (%d, %d, %d)", v, r, g, b)
	})
	in_range := graded(5, 0, 1)
	assert.True(t, in_range.Clamped(0, 1).EqualsLUT(in_range))
	assert.True(t, in_range.Clamped(-1, 2).EqualsLUT(in_range))

	assert.Equal(t, 0., l.ClampedLower(0).MinimumOutputValue())
	assert.Equal(t, l.MaximumOutputValue(), l.ClampedLower(0).MaximumOutputValue())
	assert.Equal(t, 1., l.ClampedUpper(1).MaximumOutputValue())
	assert.Equal(t, l.MinimumOutputValue(), l.ClampedUpper(1).MinimumOutputValue())
}

func TestValueTransforms(t *testing.T) {
	id := Identity(2, 0, 1)
	t.Run("offset", func(t *testing.T) {
		o := id.OffsetBy(RGB(0.1, 0, 0))
		assert.Equal(t, RGB(1.1, 1, 1), o.ColorAt(1, 1, 1))
		assert.Equal(t, RGB(0.1, 0, 0), o.ColorAt(0, 0, 0))
		assert.True(t, id.EqualsIdentityLUT())
	})
	t.Run("multiply", func(t *testing.T) {
		m := id.MultipliedBy(RGB(2, 0.5, 0))
		assert.Equal(t, RGB(2, 0.5, 0), m.ColorAt(1, 1, 1))
		assert.Equal(t, RGB(0, 0.5, 0), m.ColorAt(0, 1, 1))
	})
	t.Run("remap bounded", func(t *testing.T) {
		r := id.Remapped(0, 1, 0, 2, true)
		assert.Equal(t, Gray(2), r.ColorAt(1, 1, 1))
		assert.LessOrEqual(t, r.MaximumOutputValue(), 2.)
		over := Identity(5, 0, 1).OffsetBy(Gray(0.5)).Remapped(0, 1, 0, 2, true)
		assert.Equal(t, 2., over.MaximumOutputValue())
		assert.Equal(t, 1., over.MinimumOutputValue())
	})
	t.Run("remap unbounded", func(t *testing.T) {
		r := Identity(5, 0, 1).OffsetBy(Gray(0.5)).Remapped(0, 1, 0, 2, false)
		assert.Equal(t, 3., r.MaximumOutputValue())
	})
	t.Run("remap per channel", func(t *testing.T) {
		r := id.RemappedFromColor(Gray(0), Gray(1), RGB(0, 1, 0), RGB(1, 0, 4), false)
		assert.Equal(t, RGB(1, 0, 4), r.ColorAt(1, 1, 1))
		assert.Equal(t, RGB(0, 1, 0), r.ColorAt(0, 0, 0))
	})
	t.Run("remap degenerate", func(t *testing.T) {
		r := graded(3, 0, 1).Remapped(0.5, 0.5, 0.2, 0.8, false)
		r.Loop(func(x, y, z int) { assert.Equal(t, Gray(0.2), r.ColorAt(x, y, z)) })
	})
	t.Run("meta carried", func(t *testing.T) {
		l := graded(3, 0, 1).WithPassthroughFileOptions(Options{"x": "y"})
		for _, o := range []*LUT{
			l.OffsetBy(Gray(1)), l.MultipliedBy(Gray(1)), l.Remapped(0, 1, 0, 1, false),
			l.Clamped(0, 1), l.Inverted(), l.StrengthChanged(0.5), l.BoundsChanged(0, 2),
		} {
			assert.Equal(t, "graded", o.Title)
			assert.Equal(t, Options{"x": "y"}, o.PassthroughFileOptions())
		}
	})
}

func TestStrengthChanged(t *testing.T) {
	for _, size := range []int{2, 5, 12} {
		l := graded(size, -1, 2)
		assert.True(t, l.StrengthChanged(0).EqualsLUT(Identity(size, -1, 2)))
		assert.True(t, l.StrengthChanged(0).EqualsIdentityLUT())
		assert.True(t, l.StrengthChanged(1).EqualsLUT(l))
	}
	l := Identity(5, 0, 1).OffsetBy(Gray(0.2))
	half := l.StrengthChanged(0.5)
	assert_cells_close(t, Identity(5, 0, 1).OffsetBy(Gray(0.1)), half, 1e-12)
	// strengths outside [0, 1] extrapolate
	assert_cells_close(t, Identity(5, 0, 1).OffsetBy(Gray(0.4)), l.StrengthChanged(2), 1e-12)
}

func TestBoundsChanged(t *testing.T) {
	l := Identity(2, 0, 1)
	b := l.BoundsChanged(0, 2)
	assert.True(t, b.Lattice().Equal(l.Lattice()))
	lo, hi := b.Bounds()
	assert.Equal(t, [2]float64{0, 2}, [2]float64{lo, hi})
	assert.Equal(t, Gray(0.5), b.ColorAtColor(Gray(1)))
	assert.Equal(t, Gray(1), l.ColorAtColor(Gray(1)))
	assert.False(t, b.EqualsIdentityLUT())
	assert.Panics(t, func() { l.BoundsChanged(1, 1) })
	assert.Panics(t, func() { l.BoundsChanged(2, 1) })
}

func TestInverted(t *testing.T) {
	t.Run("unit bounds", func(t *testing.T) {
		inv := Identity(2, 0, 1).Inverted()
		assert.Equal(t, Gray(1), inv.ColorAt(0, 0, 0))
		assert.Equal(t, RGB(0, 1, 1), inv.ColorAt(1, 0, 0))
	})
	t.Run("pivot is the bound midpoint", func(t *testing.T) {
		inv := Identity(3, -1, 3).Inverted()
		assert.Equal(t, Gray(3), inv.ColorAt(0, 0, 0))
		assert.Equal(t, RGB(1, 1, -1), inv.ColorAt(1, 1, 2))
	})
	t.Run("round trip", func(t *testing.T) {
		for _, l := range []*LUT{graded(6, 0, 1), graded(4, -0.5, 1.5), Identity(3, 0, 10).OffsetBy(RGB(0.3, -7, 12))} {
			assert_cells_close(t, l, l.Inverted().Inverted(), 1e-12)
		}
	})
}

func TestTransformsDoNotMutateReceiver(t *testing.T) {
	l := graded(4, 0, 1)
	orig := l.Clone()
	l.Resized(7)
	l.CombinedWith(graded(3, 0, 1))
	l.Clamped(0.2, 0.4)
	l.OffsetBy(Gray(1))
	l.MultipliedBy(Gray(2))
	l.Remapped(0, 1, 1, 0, true)
	l.StrengthChanged(0.3)
	l.BoundsChanged(-1, 1)
	l.Inverted()
	assert.True(t, l.EqualsLUT(orig))
	require.Equal(t, orig.Title, l.Title)
}
