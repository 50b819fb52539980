package lut

import (
	"encoding/json"
	"fmt"
)

var _ = fmt.Print

const (
	state_kind    = "lut3d"
	state_version = 1
)

type state struct {
	Kind        string    `json:"kind"`
	Version     int       `json:"version"`
	Size        int       `json:"size"`
	Lower       float64   `json:"input_lower_bound"`
	Upper       float64   `json:"input_upper_bound"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Metadata    Options   `json:"metadata,omitempty"`
	Passthrough Options   `json:"passthrough_file_options,omitempty"`
	Lattice     []float64 `json:"lattice"` // r,g,b triples, red varying fastest
}

// EncodeState serializes the LUT into a self describing JSON document that
// preserves size, bounds, lattice, title, description, metadata and
// passthrough options. UserInfo is not serialized. Lattices containing NaN
// or infinite values cannot be encoded.
func (l *LUT) EncodeState() ([]byte, error) {
	s := state{
		Kind: state_kind, Version: state_version, Size: l.Size(), Lower: l.lower, Upper: l.upper,
		Title: l.Title, Description: l.Description, Metadata: l.Metadata, Passthrough: l.passthrough,
		Lattice: make([]float64, 0, 3*l.lattice.Len()),
	}
	for _, c := range l.lattice.cells {
		s.Lattice = append(s.Lattice, c.R, c.G, c.B)
	}
	return json.Marshal(&s)
}

// DecodeState is the inverse of EncodeState.
func DecodeState(data []byte) (*LUT, error) {
	var s state
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: invalid state: %w", ErrDecode, err)
	}
	if s.Kind != state_kind {
		return nil, fmt.Errorf("%w: state is of kind %q not %q", ErrDecode, s.Kind, state_kind)
	}
	if s.Version > state_version {
		return nil, fmt.Errorf("%w: unsupported state version: %d", ErrDecode, s.Version)
	}
	if s.Size < 1 || s.Size > 1024 {
		return nil, fmt.Errorf("%w: invalid state size: %d", ErrDecode, s.Size)
	}
	if !(s.Upper > s.Lower) {
		return nil, fmt.Errorf("%w: invalid state bounds: [%v, %v]", ErrDecode, s.Lower, s.Upper)
	}
	if expected := 3 * s.Size * s.Size * s.Size; len(s.Lattice) != expected {
		return nil, fmt.Errorf("%w: state lattice has %d values, expected %d", ErrDecode, len(s.Lattice), expected)
	}
	ans := New(s.Size, s.Lower, s.Upper)
	ans.Title, ans.Description = s.Title, s.Description
	ans.Metadata, ans.passthrough = s.Metadata, s.Passthrough
	for i := range ans.lattice.cells {
		v := s.Lattice[3*i : 3*i+3 : 3*i+3]
		ans.lattice.cells[i] = Color{v[0], v[1], v[2]}
	}
	return ans, nil
}
