/*
Package lut represents and manipulates three-dimensional color lookup tables.

A LUT maps an input RGB triple to an output RGB triple by sampling a transform
on a cubic lattice of evenly spaced input points. All operations that produce a
LUT (resizing, combining, clamping, remapping, inverting, ...) return a new
value and leave the receiver untouched. SetColor is the only mutator.

File formats live in the formats sub-packages and register themselves on
import. Applying a LUT to images is done by the render sub-package.
*/
package lut

import "fmt"

type LUTVersion struct {
	Major, Minor, Patch uint
}

func (v LUTVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v LUTVersion) Equal(o LUTVersion) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch
}

func (v LUTVersion) After(o LUTVersion) bool {
	switch {
	case v.Major != o.Major:
		return v.Major > o.Major
	case v.Minor != o.Minor:
		return v.Minor > o.Minor
	}
	return v.Patch > o.Patch
}

func (v LUTVersion) Before(o LUTVersion) bool {
	return !v.Equal(o) && !v.After(o)
}

var Version = LUTVersion{1, 0, 0}
