package lut

import (
	"fmt"
	"slices"
)

var _ = fmt.Print

// Lattice is a dense cubic grid of colors addressed by integer (r, g, b)
// coordinates in [0, size). Cells are stored with red varying fastest, the
// same order used for bitmap interchange.
type Lattice struct {
	size  int
	cells []Color
}

func NewLattice(size int) *Lattice {
	if size < 1 {
		panic(fmt.Sprintf("lattice size must be at least 1, not: %d", size))
	}
	return &Lattice{size: size, cells: make([]Color, size*size*size)}
}

func (l *Lattice) Size() int { return l.size }

// Len is the number of cells, size^3.
func (l *Lattice) Len() int { return len(l.cells) }

func (l *Lattice) offset(r, g, b int) int {
	s := l.size
	if r < 0 || g < 0 || b < 0 || r >= s || g >= s || b >= s {
		panic(fmt.Sprintf("lattice coordinate (%d, %d, %d) out of range for size: %d", r, g, b, s))
	}
	return (b*s+g)*s + r
}

func (l *Lattice) At(r, g, b int) Color { return l.cells[l.offset(r, g, b)] }

func (l *Lattice) Set(r, g, b int, c Color) { l.cells[l.offset(r, g, b)] = c }

// Cells returns the backing storage. Callers must not retain it past
// mutations of the lattice.
func (l *Lattice) Cells() []Color { return l.cells }

func (l *Lattice) Clone() *Lattice {
	return &Lattice{size: l.size, cells: slices.Clone(l.cells)}
}

func (l *Lattice) Equal(o *Lattice) bool {
	return l.size == o.size && slices.Equal(l.cells, o.cells)
}

func (l *Lattice) EqualWithin(o *Lattice, eps float64) bool {
	if l.size != o.size {
		return false
	}
	for i, c := range l.cells {
		if !c.EqualWithin(o.cells[i], eps) {
			return false
		}
	}
	return true
}
