// Package threedl implements the integer .3dl LUT format used by Autodesk
// Lustre and Nuke. Importing it registers the "3dl" formatter.
//
// A .3dl file starts with a shaper line listing the integer input value of
// every lattice plane, followed by one integer RGB triple per lattice cell
// with blue varying fastest. The output bit depth is not stored explicitly,
// it is inferred from the largest value and kept in the passthrough file
// options so that the LUT can be written back at the same depth.
package threedl

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/kovidgoyal/lut"
)

var _ = fmt.Print

const (
	ID = "3dl"

	OutputBitDepthOption = "integerOutputBitDepth"
	InputBitDepthOption  = "integerInputBitDepth"
	VariantOption        = "variant"

	VariantNuke   = "Nuke"
	VariantLustre = "Lustre"

	DefaultOutputBitDepth = 12
	DefaultInputBitDepth  = 10
	MaxSize               = 128
)

type Formatter struct{}

func (Formatter) ID() string           { return ID }
func (Formatter) Extensions() []string { return []string{"3dl"} }

func init() {
	lut.RegisterFormatter(Formatter{})
}

func parse_ints(fields []string, line int) ([]int, error) {
	ans := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: line %d: %q is not a non-negative integer", lut.ErrDecode, line, f)
		}
		ans[i] = v
	}
	return ans, nil
}

func bit_depth_for(maxval int) int {
	for _, d := range []int{8, 10, 12, 14, 16} {
		if maxval <= 1<<d-1 {
			return d
		}
	}
	return 0
}

func (Formatter) Decode(data []byte) (*lut.LUT, error) {
	var shaper []int
	var values [][3]int
	variant := VariantNuke
	mesh_output_depth := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		fields := strings.Fields(text)
		switch fields[0] {
		case "3DMESH":
			variant = VariantLustre
			continue
		case "Mesh":
			variant = VariantLustre
			if len(fields) == 3 {
				if d, err := strconv.Atoi(fields[2]); err == nil {
					mesh_output_depth = d
				}
			}
			continue
		case "LUT8", "gamma":
			continue
		}
		nums, err := parse_ints(fields, line)
		if err != nil {
			return nil, err
		}
		switch {
		case shaper == nil:
			shaper = nums
		case len(nums) == 3:
			values = append(values, [3]int{nums[0], nums[1], nums[2]})
		default:
			return nil, fmt.Errorf("%w: line %d: unexpected line: %q", lut.ErrDecode, line, text)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", lut.ErrDecode, err)
	}
	size := len(shaper)
	if size < 2 || size > MaxSize {
		return nil, fmt.Errorf("%w: invalid shaper line with %d entries", lut.ErrDecode, size)
	}
	if len(values) != size*size*size {
		return nil, fmt.Errorf("%w: expected %d lattice values, got %d", lut.ErrDecode, size*size*size, len(values))
	}
	maxval := 0
	for _, v := range values {
		maxval = max(maxval, v[0], v[1], v[2])
	}
	out_depth := mesh_output_depth
	if out_depth < 8 || out_depth > 16 {
		if out_depth = bit_depth_for(maxval); out_depth == 0 {
			return nil, fmt.Errorf("%w: lattice value %d too large", lut.ErrDecode, maxval)
		}
	}
	in_depth := bit_depth_for(shaper[size-1])
	if in_depth == 0 {
		in_depth = DefaultInputBitDepth
	}
	out_max := float64(int(1)<<out_depth - 1)
	ans := lut.New(size, 0, 1)
	for i, v := range values {
		r, g, b := i/(size*size), (i/size)%size, i%size
		ans.SetColor(lut.RGB(float64(v[0])/out_max, float64(v[1])/out_max, float64(v[2])/out_max), r, g, b)
	}
	return ans.WithPassthroughFileOptions(lut.Options{
		OutputBitDepthOption: strconv.Itoa(out_depth),
		InputBitDepthOption:  strconv.Itoa(in_depth),
		VariantOption:        variant,
	}), nil
}

// Conform makes the LUT representable: [0, 1] bounds and a supported size.
func (Formatter) Conform(l *lut.LUT) *lut.LUT {
	if l.InputLowerBound() != 0 || l.InputUpperBound() != 1 {
		l = lut.Identity(l.Size(), 0, 1).CombinedWith(l)
	}
	switch {
	case l.Size() < 2:
		return l.Resized(2)
	case l.Size() > MaxSize:
		return l.Resized(MaxSize)
	}
	return l
}

func depth_option(options lut.Options, key string, def int) (int, error) {
	q := options[key]
	if q == "" {
		return def, nil
	}
	d, err := strconv.Atoi(q)
	if err != nil || d < 8 || d > 16 {
		return 0, fmt.Errorf("invalid 3dl %s option: %q", key, q)
	}
	return d, nil
}

func (Formatter) Encode(l *lut.LUT, options lut.Options) ([]byte, error) {
	size := l.Size()
	if size < 2 || size > MaxSize {
		return nil, fmt.Errorf("the 3dl format does not support a lattice size of %d", size)
	}
	if l.InputLowerBound() != 0 || l.InputUpperBound() != 1 {
		return nil, fmt.Errorf("the 3dl format only supports input bounds of [0, 1], not [%v, %v]", l.InputLowerBound(), l.InputUpperBound())
	}
	out_depth, err := depth_option(options, OutputBitDepthOption, DefaultOutputBitDepth)
	if err != nil {
		return nil, err
	}
	in_depth, err := depth_option(options, InputBitDepthOption, DefaultInputBitDepth)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	w := bufio.NewWriter(&b)
	if options[VariantOption] == VariantLustre && bits.OnesCount(uint(size-1)) == 1 {
		fmt.Fprintf(w, "3DMESH\nMesh %d %d\n", bits.TrailingZeros(uint(size-1)), out_depth)
	}
	in_max, out_max := float64(int(1)<<in_depth-1), float64(int(1)<<out_depth-1)
	for i := range size {
		if i > 0 {
			w.WriteByte(' ')
		}
		w.WriteString(strconv.Itoa(int(math.Round(float64(i) * in_max / float64(size-1)))))
	}
	w.WriteByte('\n')
	q := func(v float64) int { return int(math.Round(max(0, min(v, 1)) * out_max)) }
	for r := range size {
		for g := range size {
			for bl := range size {
				c := l.ColorAt(r, g, bl)
				fmt.Fprintf(w, "%d %d %d\n", q(c.R), q(c.G), q(c.B))
			}
		}
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
