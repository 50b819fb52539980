package lut

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

// state_formatter stores LUTs in the state encoding and only supports
// lattices of size 2 or 3.
type state_formatter struct {
	id   string
	exts []string
}

func (f state_formatter) ID() string                       { return f.id }
func (f state_formatter) Extensions() []string             { return f.exts }
func (f state_formatter) Decode(data []byte) (*LUT, error) { return DecodeState(data) }
func (f state_formatter) Conform(l *LUT) *LUT              { return l.Resized(min(3, l.Size())) }

func (f state_formatter) Encode(l *LUT, options Options) ([]byte, error) {
	if l.Size() > 3 {
		return nil, fmt.Errorf("size %d not supported", l.Size())
	}
	if options["fail"] != "" {
		return nil, errors.New(options["fail"])
	}
	c := l.Clone()
	if options != nil {
		c.Metadata = options
	}
	return c.EncodeState()
}

func init() {
	RegisterFormatter(state_formatter{id: "test-state", exts: []string{"TState", ".tstate2"}})
}

func TestRegistry(t *testing.T) {
	f, err := FormatterByID("test-state")
	require.NoError(t, err)
	assert.Equal(t, "test-state", f.ID())
	for _, ext := range []string{"tstate", ".tstate", "TSTATE", "tstate2"} {
		f, err = FormatterForExtension(ext)
		require.NoError(t, err, ext)
		assert.Equal(t, "test-state", f.ID())
	}
	assert.Contains(t, Formatters(), "test-state")

	_, err = FormatterByID("no-such-format")
	assert.ErrorIs(t, err, ErrUnknownFormatter)
	_, err = FormatterForExtension("xyz")
	assert.ErrorIs(t, err, ErrUnknownFormatter)

	// re-registering replaces without duplicating the ID
	n := len(Formatters())
	RegisterFormatter(state_formatter{id: "test-state", exts: []string{"tstate", "tstate2"}})
	assert.Equal(t, n, len(Formatters()))
}

func TestDataWithFormatter(t *testing.T) {
	l := graded(3, 0, 1).WithPassthroughFileOptions(Options{"tag": "passthrough"})
	data, err := l.DataWithFormatter("test-state", Options{"tag": "explicit"})
	require.NoError(t, err)
	r, err := FromData(data, "test-state")
	require.NoError(t, err)
	assert.True(t, r.EqualsLUT(l))
	assert.Equal(t, "explicit", r.Metadata["tag"])

	data, err = l.DataWithFormatter("test-state", nil)
	require.NoError(t, err)
	r, err = FromData(data, "test-state")
	require.NoError(t, err)
	assert.Equal(t, "passthrough", r.Metadata["tag"])

	_, err = l.DataWithFormatter("nope", nil)
	assert.ErrorIs(t, err, ErrUnknownFormatter)
	_, err = FromData(data, "nope")
	assert.ErrorIs(t, err, ErrUnknownFormatter)
	_, err = FromData([]byte("garbage"), "test-state")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	l := graded(5, 0, 1)

	p := filepath.Join(dir, "a.tstate")
	require.Error(t, l.WriteFile(p, "", nil, false), "size 5 is not supported without conforming")
	require.NoError(t, l.WriteFile(p, "", nil, true))
	r, err := FromFile(p)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Size())
	assert.True(t, r.EqualsLUT(l.Resized(3)))

	p = filepath.Join(dir, "b.unknown-ext")
	require.NoError(t, l.WriteFile(p, "test-state", nil, true))
	_, err = FromFile(p)
	assert.ErrorIs(t, err, ErrUnknownFormatter)
	assert.ErrorIs(t, l.WriteFile(filepath.Join(dir, "c.unknown-ext"), "", nil, true), ErrUnknownFormatter)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.tstate"), []byte("{}"), 0o644))
	_, err = FromFile(filepath.Join(dir, "bad.tstate"))
	assert.ErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), "bad.tstate")

	_, err = FromFile(filepath.Join(dir, "missing.tstate"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.EqualError(t, Identity(2, 0, 1).WriteFile(filepath.Join(dir, "d.tstate"), "", Options{"fail": "refused"}, false), "refused")
}

type memory_file struct {
	bytes.Buffer
	closed bool
}

func (m *memory_file) Close() error {
	m.closed = true
	return nil
}

type memory_fs map[string]*memory_file

func (m memory_fs) Create(name string) (io.WriteCloser, error) {
	f := &memory_file{}
	m[name] = f
	return f, nil
}

func (m memory_fs) Open(name string) (io.ReadCloser, error) {
	if f, ok := m[name]; ok {
		return io.NopCloser(bytes.NewReader(f.Bytes())), nil
	}
	return nil, os.ErrNotExist
}

func TestFilesUseFileSystem(t *testing.T) {
	mfs := memory_fs{}
	orig := files
	files = mfs
	t.Cleanup(func() { files = orig })

	l := graded(2, 0, 1)
	require.NoError(t, l.WriteFile("x.tstate", "", nil, false))
	require.Contains(t, mfs, "x.tstate")
	assert.True(t, mfs["x.tstate"].closed)
	r, err := FromFile("x.tstate")
	require.NoError(t, err)
	assert.True(t, r.EqualsLUT(l))
}

func TestLoadLUT(t *testing.T) {
	data, err := graded(3, 0, 1).EncodeState()
	require.NoError(t, err)
	fsys := fstest.MapFS{
		"luts/warm.tstate": {Data: data},
		"luts/bad.tstate":  {Data: []byte("[]")},
	}
	l, err := LoadLUT(fsys, "luts/warm", "tstate")
	require.NoError(t, err)
	assert.True(t, l.EqualsLUT(graded(3, 0, 1)))
	l, err = LoadLUT(fsys, "luts/warm", ".tstate")
	require.NoError(t, err)
	assert.Equal(t, 3, l.Size())

	_, err = LoadLUT(fsys, "luts/cold", "tstate")
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = LoadLUT(fsys, "luts/bad", "tstate")
	assert.ErrorIs(t, err, ErrDecode)
	_, err = LoadLUT(fsys, "luts/warm", "nope")
	assert.ErrorIs(t, err, ErrUnknownFormatter)
}
