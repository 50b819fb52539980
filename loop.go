package lut

import (
	"fmt"

	"github.com/kovidgoyal/go-parallel"
)

var _ = fmt.Print

// Loop calls f for every lattice coordinate, red varying fastest.
func (l *LUT) Loop(f func(r, g, b int)) {
	s := l.Size()
	for b := range s {
		for g := range s {
			for r := range s {
				f(r, g, b)
			}
		}
	}
}

// ParallelLoop calls f for every lattice coordinate, splitting the lattice
// into blue slabs processed concurrently. f must not write to anything but
// state owned by its own coordinate. A panic in f is returned as an error.
func (l *LUT) ParallelLoop(f func(r, g, b int)) error {
	s := l.Size()
	return parallel.Run_in_parallel_over_range(0, func(start, limit int) {
		for b := start; b < limit; b++ {
			for g := range s {
				for r := range s {
					f(r, g, b)
				}
			}
		}
	}, 0, s)
}

// fill sets every cell of l to the value computed by f. The computations
// are total, so a worker failure is a bug and is re-raised.
func (l *LUT) fill(f func(r, g, b int) Color) {
	cells, s := l.lattice.cells, l.Size()
	err := l.ParallelLoop(func(r, g, b int) {
		cells[(b*s+g)*s+r] = f(r, g, b)
	})
	if err != nil {
		panic(err)
	}
}

// map_cells returns a new LUT of the same shape and meta data as l with
// every cell replaced by f applied to it.
func (l *LUT) map_cells(f func(Color) Color) *LUT {
	ans := New(l.Size(), l.lower, l.upper)
	ans.CopyMetaPropertiesFrom(l)
	src := l.lattice.cells
	s := l.Size()
	ans.fill(func(r, g, b int) Color { return f(src[(b*s+g)*s+r]) })
	return ans
}
