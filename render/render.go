// Package render applies the transform of a LUT to decoded images.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/kovidgoyal/go-parallel"
	"github.com/kovidgoyal/lut"
	"github.com/kovidgoyal/lut/types"
)

var _ = fmt.Print

type WorkingSpaceType int

const (
	// Pixel values are fed to the LUT as stored, the usual convention for
	// grading LUTs.
	Encoded WorkingSpaceType = iota
	// Pixel values are decoded from sRGB to linear light before applying
	// the LUT and encoded again afterwards.
	Linear
)

// Lattices above this size are resized before rendering by default.
const DefaultMaxLatticeSize = 64

var ErrUnsupportedPath = errors.New("unsupported render path")

type config struct {
	path             types.RenderPath
	max_lattice_size int
	working_space    WorkingSpaceType
	num_procs        int
}

// Option sets an optional parameter for Apply.
type Option func(*config)

// MaxLatticeSize sets the largest lattice Apply renders with, larger LUTs
// are first resized down to it.
func MaxLatticeSize(n int) Option {
	return func(c *config) { c.max_lattice_size = n }
}

func WorkingSpace(ws WorkingSpaceType) Option {
	return func(c *config) { c.working_space = ws }
}

// Path selects the render path. RenderPathSoftware, the default, honors
// MaxLatticeSize. RenderPathDirect samples the full lattice whatever its
// size. There is no accelerated path, asking for it makes Apply fail with
// ErrUnsupportedPath.
func Path(p types.RenderPath) Option {
	return func(c *config) { c.path = p }
}

// Concurrency sets the number of goroutines used, zero means GOMAXPROCS.
func Concurrency(n int) Option {
	return func(c *config) { c.num_procs = n }
}

type transform func(r, g, b float64) (float64, float64, float64)

func make_transform(l *lut.LUT, ws WorkingSpaceType) transform {
	lo, hi := l.Bounds()
	to_domain := func(v float64) float64 { return lo + v*(hi-lo) }
	from_range := func(v float64) float64 { return clamp01((v - lo) / (hi - lo)) }
	if ws == Linear {
		return func(r, g, b float64) (float64, float64, float64) {
			c := l.ColorAtColor(lut.RGB(to_domain(srgb_to_linear(r)), to_domain(srgb_to_linear(g)), to_domain(srgb_to_linear(b))))
			return linear_to_srgb(from_range(c.R)), linear_to_srgb(from_range(c.G)), linear_to_srgb(from_range(c.B))
		}
	}
	return func(r, g, b float64) (float64, float64, float64) {
		c := l.ColorAtColor(lut.RGB(to_domain(r), to_domain(g), to_domain(b)))
		return from_range(c.R), from_range(c.G), from_range(c.B)
	}
}

// Apply returns a new image with the transform of l applied to every pixel
// of img. Pixel values in [0, 1] are mapped linearly onto the input bounds
// of the LUT and outputs mapped back and clipped. Identity LUTs return img
// itself. Alpha is preserved.
func Apply(l *lut.LUT, img image.Image, opts ...Option) (image.Image, error) {
	cfg := config{path: types.RenderPathSoftware, max_lattice_size: DefaultMaxLatticeSize}
	for _, o := range opts {
		o(&cfg)
	}
	switch cfg.path {
	case types.RenderPathSoftware:
	case types.RenderPathDirect:
		cfg.max_lattice_size = 0
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPath, cfg.path)
	}
	if l.EqualsIdentityLUT() {
		return img, nil
	}
	if cfg.max_lattice_size > 0 && l.Size() > cfg.max_lattice_size {
		lut.Logger().Debug("resizing LUT for rendering", "from", l.Size(), "to", cfg.max_lattice_size)
		l = l.ResizedUnder(cfg.max_lattice_size)
	}
	return convert(img, make_transform(l, cfg.working_space), cfg.num_procs)
}

func to8(v float64) uint8   { return uint8(math.Round(v * math.MaxUint8)) }
func to16(v float64) uint16 { return uint16(math.Round(v * math.MaxUint16)) }

func unpremultiply(r, a uint32) float64 {
	return float64(r) / float64(a)
}

func convert(image_any image.Image, tr transform, num_procs int) (ans image.Image, err error) {
	b := image_any.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return image_any, nil
	}
	const m8, m16 = float64(math.MaxUint8), float64(math.MaxUint16)
	var f func(start, limit int)
	switch img := image_any.(type) {
	case *image.NRGBA:
		d := image.NewNRGBA(image.Rect(0, 0, width, height))
		ans = d
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				drow := d.Pix[d.Stride*y:]
				_ = row[4*(width-1)+3]
				for range width {
					s, o := row[0:4:4], drow[0:4:4]
					if o[3] = s[3]; s[3] != 0 {
						r, g, b := tr(float64(s[0])/m8, float64(s[1])/m8, float64(s[2])/m8)
						o[0], o[1], o[2] = to8(r), to8(g), to8(b)
					}
					row, drow = row[4:], drow[4:]
				}
			}
		}
	case *image.RGBA:
		d := image.NewNRGBA(image.Rect(0, 0, width, height))
		ans = d
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				drow := d.Pix[d.Stride*y:]
				_ = row[4*(width-1)+3]
				for range width {
					s, o := row[0:4:4], drow[0:4:4]
					if a := uint32(s[3]); a != 0 {
						r, g, b := tr(unpremultiply(uint32(s[0]), a), unpremultiply(uint32(s[1]), a), unpremultiply(uint32(s[2]), a))
						o[0], o[1], o[2], o[3] = to8(r), to8(g), to8(b), s[3]
					}
					row, drow = row[4:], drow[4:]
				}
			}
		}
	case *image.Gray:
		d := image.NewNRGBA(image.Rect(0, 0, width, height))
		ans = d
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				drow := d.Pix[d.Stride*y:]
				_ = row[width-1]
				for _, gray := range row[:width] {
					v := float64(gray) / m8
					r, g, b := tr(v, v, v)
					o := drow[0:4:4]
					o[0], o[1], o[2], o[3] = to8(r), to8(g), to8(b), math.MaxUint8
					drow = drow[4:]
				}
			}
		}
	default:
		d := image.NewNRGBA64(image.Rect(0, 0, width, height))
		ans = d
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				for x := range width {
					c := color.NRGBA64Model.Convert(img.At(x+b.Min.X, y+b.Min.Y)).(color.NRGBA64)
					if c.A != 0 {
						r, g, b := tr(float64(c.R)/m16, float64(c.G)/m16, float64(c.B)/m16)
						c.R, c.G, c.B = to16(r), to16(g), to16(b)
					}
					d.SetNRGBA64(x, y, c)
				}
			}
		}
	}
	err = parallel.Run_in_parallel_over_range(num_procs, f, 0, height)
	return
}
