package lut

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var _ = fmt.Print

type fileSystem interface {
	Create(string) (io.WriteCloser, error)
	Open(string) (io.ReadCloser, error)
}

type localFS struct{}

func (localFS) Create(name string) (io.WriteCloser, error) { return os.Create(name) }
func (localFS) Open(name string) (io.ReadCloser, error)    { return os.Open(name) }

var files fileSystem = localFS{}

func read_all(name string) ([]byte, error) {
	f, err := files.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// FromFile reads a LUT from a file, choosing the formatter from the file
// extension.
func FromFile(filename string) (*LUT, error) {
	f, err := FormatterForExtension(extension(filename))
	if err != nil {
		return nil, err
	}
	data, err := read_all(filename)
	if err != nil {
		return nil, err
	}
	ans, err := f.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return ans, nil
}

// WriteFile encodes the LUT with the specified formatter and writes it to
// filename. An empty formatterID selects the formatter from the file
// extension. When conform is true and the formatter implements Conformer
// the LUT is first conformed to what the formatter supports.
func (l *LUT) WriteFile(filename, formatterID string, options Options, conform bool) (err error) {
	var f Formatter
	if formatterID == "" {
		f, err = FormatterForExtension(extension(filename))
	} else {
		f, err = FormatterByID(formatterID)
	}
	if err != nil {
		return err
	}
	src := l
	if c, ok := f.(Conformer); ok && conform {
		src = c.Conform(l)
	}
	if options == nil {
		options = l.passthrough
	}
	data, err := f.Encode(src, options)
	if err != nil {
		return err
	}
	out, err := files.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = out.Write(data)
	return
}

// LoadLUT loads the resource named name with extension ext from fsys, for
// example a directory of LUTs embedded with go:embed. The extension also
// selects the formatter.
func LoadLUT(fsys fs.FS, name, ext string) (*LUT, error) {
	ext = strings.TrimPrefix(ext, ".")
	f, err := FormatterForExtension(ext)
	if err != nil {
		return nil, err
	}
	fname := name
	if ext != "" {
		fname = name + "." + ext
	}
	data, err := fs.ReadFile(fsys, path.Clean(fname))
	if err != nil {
		return nil, err
	}
	ans, err := f.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return ans, nil
}
