// Package hald stores 3D LUTs as Hald CLUT images. A Hald image of level L
// is a square image of side L³ holding a lattice of size L², read in raster
// order with red varying fastest, then green, then blue.
//
// Importing this package registers the "hald-png" and "hald-tiff"
// formatters. They claim the png, tif and tiff extensions, so lut.FromFile
// reads every such file as a Hald image. Images without a Hald shape fail
// with an error wrapping both lut.ErrDecode and ErrNotHald.
package hald

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/tiff"

	"github.com/kovidgoyal/lut"
)

var _ = fmt.Print

const (
	PNG_ID  = "hald-png"
	TIFF_ID = "hald-tiff"

	MinLevel = 2
	MaxLevel = 16
)

var ErrNotHald = errors.New("not a Hald CLUT image")

type Formatter struct {
	id         string
	extensions []string
	decode     func(io.Reader) (image.Image, error)
	encode     func(io.Writer, image.Image) error
}

func (f *Formatter) ID() string           { return f.id }
func (f *Formatter) Extensions() []string { return f.extensions }

var PNG = &Formatter{
	id: PNG_ID, extensions: []string{"png"},
	decode: png.Decode,
	encode: func(w io.Writer, img image.Image) error {
		e := png.Encoder{CompressionLevel: png.BestCompression}
		return e.Encode(w, img)
	},
}

var TIFF = &Formatter{
	id: TIFF_ID, extensions: []string{"tif", "tiff"},
	decode: tiff.Decode,
	encode: func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	},
}

func init() {
	lut.RegisterFormatter(PNG)
	lut.RegisterFormatter(TIFF)
}

// level returns L such that L*L == size, or 0.
func level(size int) int {
	l := int(math.Round(math.Sqrt(float64(size))))
	if l*l == size {
		return l
	}
	return 0
}

func (f *Formatter) Decode(data []byte) (*lut.LUT, error) {
	img, err := f.decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", lut.ErrDecode, err)
	}
	b := img.Bounds()
	side := b.Dx()
	if side != b.Dy() {
		return nil, fmt.Errorf("%w: %w: %dx%d is not square", lut.ErrDecode, ErrNotHald, b.Dx(), b.Dy())
	}
	lvl := int(math.Round(math.Cbrt(float64(side))))
	if lvl*lvl*lvl != side || lvl < MinLevel || lvl > MaxLevel {
		return nil, fmt.Errorf("%w: %w: side %d is not the cube of a level in [%d, %d]", lut.ErrDecode, ErrNotHald, side, MinLevel, MaxLevel)
	}
	size := lvl * lvl
	ans := lut.New(size, 0, 1)
	cells := ans.Lattice().Cells()
	const m = math.MaxUint16
	for y := range side {
		for x := range side {
			c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			cells[y*side+x] = lut.RGB(float64(c.R)/m, float64(c.G)/m, float64(c.B)/m)
		}
	}
	return ans, nil
}

// Conform resizes to the nearest size that is a square of a supported level
// and resamples to [0, 1] bounds.
func (f *Formatter) Conform(l *lut.LUT) *lut.LUT {
	if l.InputLowerBound() != 0 || l.InputUpperBound() != 1 {
		l = lut.Identity(l.Size(), 0, 1).CombinedWith(l)
	}
	lvl := max(MinLevel, min(MaxLevel, int(math.Round(math.Sqrt(float64(l.Size()))))))
	if lvl*lvl != l.Size() {
		lut.Logger().Warn("resizing LUT to fit a Hald image", "from", l.Size(), "to", lvl*lvl)
		l = l.Resized(lvl * lvl)
	}
	return l
}

func (f *Formatter) Encode(l *lut.LUT, options lut.Options) ([]byte, error) {
	lvl := level(l.Size())
	if lvl < MinLevel || lvl > MaxLevel {
		return nil, fmt.Errorf("LUT size %d is not the square of a Hald level in [%d, %d]", l.Size(), MinLevel, MaxLevel)
	}
	if l.InputLowerBound() != 0 || l.InputUpperBound() != 1 {
		return nil, fmt.Errorf("hald images only support input bounds of [0, 1], not [%v, %v]", l.InputLowerBound(), l.InputUpperBound())
	}
	side := lvl * lvl * lvl
	img := image.NewNRGBA64(image.Rect(0, 0, side, side))
	q := func(v float64) uint16 { return uint16(math.Round(max(0, min(v, 1)) * math.MaxUint16)) }
	for i, c := range l.Lattice().Cells() {
		img.SetNRGBA64(i%side, i/side, color.NRGBA64{R: q(c.R), G: q(c.G), B: q(c.B), A: math.MaxUint16})
	}
	var b bytes.Buffer
	if err := f.encode(&b, img); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
