package types

import (
	"fmt"
)

var _ = fmt.Print

// DataType is the per-sample encoding of flat LUT bitmap data.
type DataType int

const (
	// Four float32 components per sample: red, green, blue, alpha.
	RGBAf DataType = iota
	// Three float64 components per sample: red, green, blue.
	RGBd
)

var dataTypeNames = map[DataType]string{
	RGBAf: "RGBAf",
	RGBd:  "RGBd",
}

func (d DataType) String() string {
	if n, ok := dataTypeNames[d]; ok {
		return n
	}
	return fmt.Sprintf("DataType(%d)", int(d))
}

func (d DataType) Num_of_channels() int {
	switch d {
	case RGBAf:
		return 4
	case RGBd:
		return 3
	}
	return 0
}

func (d DataType) Bytes_per_channel() int {
	switch d {
	case RGBAf:
		return 4
	case RGBd:
		return 8
	}
	return 0
}

// Bytes_per_sample is the width of one lattice sample in a bitmap.
func (d DataType) Bytes_per_sample() int { return d.Num_of_channels() * d.Bytes_per_channel() }

// Interpolation selects how a lattice is sampled between grid points.
type Interpolation int

const (
	Tetrahedral Interpolation = iota
	Trilinear
)

var InterpolationNames = map[string]Interpolation{
	"tetrahedral": Tetrahedral,
	"trilinear":   Trilinear,
}

func (i Interpolation) String() string {
	switch i {
	case Tetrahedral:
		return "tetrahedral"
	case Trilinear:
		return "trilinear"
	}
	return fmt.Sprintf("Interpolation(%d)", int(i))
}

// SwizzleChannelsMethod is how a one-dimensional LUT reduces three channels
// to a single curve.
type SwizzleChannelsMethod int

const (
	SwizzleAverageRGB SwizzleChannelsMethod = iota
	SwizzleRec709WeightedRGB
	SwizzleEdgesRGB
	SwizzleRedCopiedToRGB
	SwizzleGreenCopiedToRGB
	SwizzleBlueCopiedToRGB
)

var swizzleNames = map[SwizzleChannelsMethod]string{
	SwizzleAverageRGB:        "AverageRGB",
	SwizzleRec709WeightedRGB: "Rec709WeightedRGB",
	SwizzleEdgesRGB:          "EdgesRGB",
	SwizzleRedCopiedToRGB:    "RedCopiedToRGB",
	SwizzleGreenCopiedToRGB:  "GreenCopiedToRGB",
	SwizzleBlueCopiedToRGB:   "BlueCopiedToRGB",
}

func (s SwizzleChannelsMethod) String() string {
	if n, ok := swizzleNames[s]; ok {
		return n
	}
	return fmt.Sprintf("SwizzleChannelsMethod(%d)", int(s))
}

// ReverseStrictness controls which curves a one-dimensional LUT reversal
// accepts.
type ReverseStrictness int

const (
	ReverseStrict ReverseStrictness = iota
	ReverseAllowFlatSections
	ReverseAllowChangeInDirection
)

var reverseStrictnessNames = map[ReverseStrictness]string{
	ReverseStrict:                 "Strict",
	ReverseAllowFlatSections:      "AllowFlatSections",
	ReverseAllowChangeInDirection: "AllowChangeInDirection",
}

func (r ReverseStrictness) String() string {
	if n, ok := reverseStrictnessNames[r]; ok {
		return n
	}
	return fmt.Sprintf("ReverseStrictness(%d)", int(r))
}

// RenderPath selects the pipeline a renderer uses to apply a LUT to an image.
type RenderPath int

const (
	RenderPathAccelerated RenderPath = iota
	RenderPathSoftware
	RenderPathDirect
)

var renderPathNames = map[RenderPath]string{
	RenderPathAccelerated: "Accelerated",
	RenderPathSoftware:    "Software",
	RenderPathDirect:      "Direct",
}

func (r RenderPath) String() string {
	if n, ok := renderPathNames[r]; ok {
		return n
	}
	return fmt.Sprintf("RenderPath(%d)", int(r))
}
