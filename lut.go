package lut

import (
	"fmt"
	"maps"
)

var _ = fmt.Print

// Options is a string keyed bag of values that is carried along with a LUT
// but never interpreted by its transforms.
type Options map[string]string

func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	return maps.Clone(o)
}

// LUT is a three-dimensional color lookup table. The lattice samples the
// transform at evenly spaced input points between the lower and upper input
// bounds: index i along an axis corresponds to the input value
// lower + i*(upper-lower)/(size-1).
type LUT struct {
	Title       string
	Description string
	// A catch-all swap space for arbitrary data carried along with the LUT.
	// Not persisted by EncodeState.
	UserInfo map[string]any
	// Metadata from the LUT file, empty for LUTs created programmatically.
	Metadata Options

	passthrough  Options
	lattice      *Lattice
	lower, upper float64
}

func check_bounds(lower, upper float64) {
	if !(upper > lower) {
		panic(fmt.Sprintf("LUT input upper bound %v must be greater than lower bound %v", upper, lower))
	}
}

// New returns a LUT with a zero filled lattice, for callers that populate it
// explicitly with SetColor.
func New(size int, lower, upper float64) *LUT {
	check_bounds(lower, upper)
	return &LUT{lattice: NewLattice(size), lower: lower, upper: upper}
}

// Identity returns a LUT that maps every input color to itself.
func Identity(size int, lower, upper float64) *LUT {
	ans := New(size, lower, upper)
	ans.fill(ans.identity_color_at)
	return ans
}

// WithPassthroughFileOptions returns a copy of the LUT carrying the specified
// format specific options. The options are fixed once set.
func (l *LUT) WithPassthroughFileOptions(o Options) *LUT {
	ans := l.Clone()
	ans.passthrough = o.Clone()
	return ans
}

// PassthroughFileOptions returns a copy of the format specific settings,
// such as the integer output depth, read from the file this LUT came from.
func (l *LUT) PassthroughFileOptions() Options { return l.passthrough.Clone() }

func (l *LUT) Size() int                { return l.lattice.size }
func (l *LUT) InputLowerBound() float64 { return l.lower }
func (l *LUT) InputUpperBound() float64 { return l.upper }

// Bounds returns the input lower and upper bounds.
func (l *LUT) Bounds() (lower, upper float64) { return l.lower, l.upper }

// Lattice returns the underlying lattice, mutations through it are visible
// in the LUT.
func (l *LUT) Lattice() *Lattice { return l.lattice }

func (l *LUT) String() string {
	return fmt.Sprintf("LUT{ title:%q size:%d bounds:[%v, %v] }", l.Title, l.Size(), l.lower, l.upper)
}

// Clone returns a deep copy of the LUT, lattice and meta data included.
// UserInfo values are shallow copied.
func (l *LUT) Clone() *LUT {
	ans := &LUT{lattice: l.lattice.Clone(), lower: l.lower, upper: l.upper}
	ans.CopyMetaPropertiesFrom(l)
	return ans
}

// CopyMetaPropertiesFrom copies title, description, user info, metadata and
// passthrough options from src.
func (l *LUT) CopyMetaPropertiesFrom(src *LUT) {
	l.Title, l.Description = src.Title, src.Description
	if src.UserInfo != nil {
		l.UserInfo = maps.Clone(src.UserInfo)
	} else {
		l.UserInfo = nil
	}
	l.Metadata = src.Metadata.Clone()
	l.passthrough = src.passthrough.Clone()
}

// ColorAt returns the lattice value at the specified integer coordinates.
// Out of range coordinates are a programming error and panic.
func (l *LUT) ColorAt(r, g, b int) Color { return l.lattice.At(r, g, b) }

// SetColor overwrites a single lattice cell. It is the only operation that
// mutates a LUT.
func (l *LUT) SetColor(c Color, r, g, b int) { l.lattice.Set(r, g, b, c) }

func (l *LUT) index_to_input(i float64) float64 {
	if l.lattice.size == 1 {
		return l.lower
	}
	return l.lower + (l.upper-l.lower)*i/float64(l.lattice.size-1)
}

func (l *LUT) input_to_index(v float64) float64 {
	return (v - l.lower) * float64(l.lattice.size-1) / (l.upper - l.lower)
}

// IdentityColorAt returns the output an identity transform of this LUT's
// size and bounds would have at the (possibly fractional) lattice
// coordinates.
func (l *LUT) IdentityColorAt(r, g, b float64) Color {
	return Color{l.index_to_input(r), l.index_to_input(g), l.index_to_input(b)}
}

func (l *LUT) identity_color_at(r, g, b int) Color {
	return l.IdentityColorAt(float64(r), float64(g), float64(b))
}

// IndexForColor converts a color in the input domain into real valued
// lattice coordinates. It is the inverse of IdentityColorAt.
func (l *LUT) IndexForColor(c Color) Color {
	return Color{l.input_to_index(c.R), l.input_to_index(c.G), l.input_to_index(c.B)}
}

// ColorAtColor returns the output of the transform for an input color in
// the input domain, using tetrahedral interpolation. Inputs outside the
// domain are clamped to it.
func (l *LUT) ColorAtColor(c Color) Color {
	i := l.IndexForColor(c)
	return l.InterpolatedColorAt(i.R, i.G, i.B)
}

func (l *LUT) MaximumOutputColor() Color {
	cells := l.lattice.cells
	ans := cells[0]
	for _, c := range cells[1:] {
		ans = ans.Max(c)
	}
	return ans
}

func (l *LUT) MinimumOutputColor() Color {
	cells := l.lattice.cells
	ans := cells[0]
	for _, c := range cells[1:] {
		ans = ans.Min(c)
	}
	return ans
}

func (l *LUT) MaximumOutputValue() float64 { return l.MaximumOutputColor().MaxComponent() }
func (l *LUT) MinimumOutputValue() float64 { return l.MinimumOutputColor().MinComponent() }
