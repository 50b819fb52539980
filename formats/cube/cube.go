// Package cube implements the Resolve/Adobe .cube text format for 3D LUTs.
// Importing it registers the "cube" formatter.
package cube

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/kovidgoyal/lut"
)

var _ = fmt.Print

const (
	ID = "cube"
	// Option controlling the number of digits after the decimal point.
	PrecisionOption  = "precision"
	DefaultPrecision = 6
	MaxSize          = 256
)

type Formatter struct{}

func (Formatter) ID() string           { return ID }
func (Formatter) Extensions() []string { return []string{"cube"} }

func init() {
	lut.RegisterFormatter(Formatter{})
}

func parse_floats(fields []string, n int, line int) ([]float64, error) {
	if len(fields) != n {
		return nil, fmt.Errorf("%w: line %d: expected %d numbers, got %d", lut.ErrDecode, line, n, len(fields))
	}
	ans := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q is not a number", lut.ErrDecode, line, f)
		}
		ans[i] = v
	}
	return ans, nil
}

func uniform(v []float64, line int, keyword string) (float64, error) {
	if v[0] != v[1] || v[1] != v[2] {
		return 0, fmt.Errorf("%w: line %d: per channel %s values are not supported: %v", lut.ErrDecode, line, keyword, v)
	}
	return v[0], nil
}

func (Formatter) Decode(data []byte) (*lut.LUT, error) {
	var title string
	var comments []string
	metadata := lut.Options{}
	size, lower, upper := 0, 0., 1.
	var values []lut.Color
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if text[0] == '#' {
			comments = append(comments, strings.TrimSpace(text[1:]))
			continue
		}
		fields := strings.Fields(text)
		keyword := fields[0]
		if c := keyword[0]; !(c >= 'A' && c <= 'Z') {
			if size == 0 {
				return nil, fmt.Errorf("%w: line %d: lattice data before LUT_3D_SIZE", lut.ErrDecode, line)
			}
			v, err := parse_floats(fields, 3, line)
			if err != nil {
				return nil, err
			}
			values = append(values, lut.RGB(v[0], v[1], v[2]))
			continue
		}
		switch keyword {
		case "TITLE":
			title = strings.Trim(strings.TrimSpace(text[len(keyword):]), `"`)
		case "LUT_3D_SIZE":
			v, err := strconv.Atoi(strings.Join(fields[1:], " "))
			if err != nil || v < 2 || v > MaxSize {
				return nil, fmt.Errorf("%w: line %d: invalid LUT_3D_SIZE: %q", lut.ErrDecode, line, text)
			}
			size = v
		case "LUT_1D_SIZE":
			return nil, fmt.Errorf("%w: line %d: 1D .cube files are not supported", lut.ErrDecode, line)
		case "DOMAIN_MIN", "DOMAIN_MAX":
			v, err := parse_floats(fields[1:], 3, line)
			if err != nil {
				return nil, err
			}
			b, err := uniform(v, line, keyword)
			if err != nil {
				return nil, err
			}
			if keyword == "DOMAIN_MIN" {
				lower = b
			} else {
				upper = b
			}
		case "LUT_3D_INPUT_RANGE":
			v, err := parse_floats(fields[1:], 2, line)
			if err != nil {
				return nil, err
			}
			lower, upper = v[0], v[1]
		default:
			metadata[keyword] = strings.Join(fields[1:], " ")
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", lut.ErrDecode, err)
	}
	if size == 0 {
		return nil, fmt.Errorf("%w: missing LUT_3D_SIZE", lut.ErrDecode)
	}
	if !(upper > lower) {
		return nil, fmt.Errorf("%w: invalid domain: [%v, %v]", lut.ErrDecode, lower, upper)
	}
	if len(values) != size*size*size {
		return nil, fmt.Errorf("%w: expected %d lattice values, got %d", lut.ErrDecode, size*size*size, len(values))
	}
	ans := lut.New(size, lower, upper)
	ans.Title = title
	if len(comments) > 0 {
		metadata["comments"] = strings.Join(comments, "\n")
	}
	if len(metadata) > 0 {
		ans.Metadata = metadata
	}
	copy(ans.Lattice().Cells(), values)
	return ans, nil
}

// Conform clamps sizes to the range the format allows.
func (Formatter) Conform(l *lut.LUT) *lut.LUT {
	switch {
	case l.Size() < 2:
		return l.Resized(2)
	case l.Size() > MaxSize:
		return l.Resized(MaxSize)
	}
	return l
}

func (Formatter) Encode(l *lut.LUT, options lut.Options) ([]byte, error) {
	if l.Size() < 2 || l.Size() > MaxSize {
		return nil, fmt.Errorf("the cube format does not support a lattice size of %d", l.Size())
	}
	precision := DefaultPrecision
	if q := options[PrecisionOption]; q != "" {
		p, err := strconv.Atoi(q)
		if err != nil || p < 0 || p > 17 {
			return nil, fmt.Errorf("invalid cube precision option: %q", q)
		}
		precision = p
	}
	var b bytes.Buffer
	w := bufio.NewWriter(&b)
	if c := l.Metadata["comments"]; c != "" {
		for _, line := range strings.Split(c, "\n") {
			fmt.Fprintf(w, "# %s\n", line)
		}
	}
	if l.Title != "" {
		fmt.Fprintf(w, "TITLE \"%s\"\n", l.Title)
	}
	fmt.Fprintf(w, "LUT_3D_SIZE %d\n", l.Size())
	lo, hi := l.InputLowerBound(), l.InputUpperBound()
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', precision, 64) }
	fmt.Fprintf(w, "DOMAIN_MIN %s %s %s\n", f(lo), f(lo), f(lo))
	fmt.Fprintf(w, "DOMAIN_MAX %s %s %s\n", f(hi), f(hi), f(hi))
	for _, c := range l.Lattice().Cells() {
		fmt.Fprintf(w, "%s %s %s\n", f(c.R), f(c.G), f(c.B))
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
