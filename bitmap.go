package lut

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/kovidgoyal/lut/types"
)

var _ = fmt.Print

// ErrDecode is wrapped by every error caused by malformed LUT data.
var ErrDecode = errors.New("cannot decode LUT")

// cube_root returns the integer n with n*n*n == count, or -1.
func cube_root(count int) int {
	n := int(math.Round(math.Cbrt(float64(count))))
	for _, q := range []int{n - 1, n, n + 1} {
		if q > 0 && q*q*q == count {
			return q
		}
	}
	return -1
}

// FromBitmap decodes a LUT from flat sample data, red varying fastest, in
// one of the supported encodings. All values are little endian. The lattice
// size is inferred from the number of samples, which must be a perfect cube.
func FromBitmap(data []byte, dt types.DataType, lower, upper float64) (*LUT, error) {
	width := dt.Bytes_per_sample()
	if width == 0 {
		return nil, fmt.Errorf("%w: unknown bitmap data type: %s", ErrDecode, dt)
	}
	if len(data) == 0 || len(data)%width != 0 {
		return nil, fmt.Errorf("%w: bitmap length %d is not a multiple of the %s sample width %d", ErrDecode, len(data), dt, width)
	}
	count := len(data) / width
	size := cube_root(count)
	if size < 1 {
		return nil, fmt.Errorf("%w: bitmap sample count %d is not a perfect cube", ErrDecode, count)
	}
	ans := New(size, lower, upper)
	cells := ans.lattice.cells
	switch dt {
	case types.RGBAf:
		f := func(b []byte) float64 { return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))) }
		for i := range cells {
			s := data[i*width : (i+1)*width : (i+1)*width]
			cells[i] = Color{f(s[0:4]), f(s[4:8]), f(s[8:12])}
		}
	case types.RGBd:
		f := func(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) }
		for i := range cells {
			s := data[i*width : (i+1)*width : (i+1)*width]
			cells[i] = Color{f(s[0:8]), f(s[8:16]), f(s[16:24])}
		}
	}
	return ans, nil
}

// BitmapData encodes the lattice as flat sample data in the layout read by
// FromBitmap. For RGBAf the alpha channel is always 1.
func (l *LUT) BitmapData(dt types.DataType) []byte {
	width := dt.Bytes_per_sample()
	if width == 0 {
		panic(fmt.Sprintf("unknown bitmap data type: %s", dt))
	}
	cells := l.lattice.cells
	ans := make([]byte, 0, len(cells)*width)
	switch dt {
	case types.RGBAf:
		for _, c := range cells {
			for _, x := range [4]float64{c.R, c.G, c.B, 1} {
				ans = binary.LittleEndian.AppendUint32(ans, math.Float32bits(float32(x)))
			}
		}
	case types.RGBd:
		for _, c := range cells {
			for _, x := range [3]float64{c.R, c.G, c.B} {
				ans = binary.LittleEndian.AppendUint64(ans, math.Float64bits(x))
			}
		}
	}
	return ans
}
