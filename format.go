package lut

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var _ = fmt.Print

// ErrUnknownFormatter is returned when no formatter is registered for a
// formatter ID or file extension.
var ErrUnknownFormatter = errors.New("unknown LUT formatter")

// Formatter converts between a LUT and one specific file format. Formatters
// register themselves with RegisterFormatter, usually from the init
// function of their package, so that programs need only import them for
// their side effect:
//
//	import _ "github.com/kovidgoyal/lut/formats/cube"
type Formatter interface {
	// ID is the unique formatter ID, for example "cube".
	ID() string
	// Extensions are the lower case file extensions, without the leading
	// dot, handled by this formatter.
	Extensions() []string
	Decode(data []byte) (*LUT, error)
	Encode(l *LUT, options Options) ([]byte, error)
}

// Conformer is implemented by formatters that only support some lattice
// sizes or bounds. Conform returns a LUT, derived from l, that the
// formatter can encode.
type Conformer interface {
	Conform(l *LUT) *LUT
}

var formatters = struct {
	sync.RWMutex
	by_id  map[string]Formatter
	by_ext map[string]Formatter
	order  []string
}{by_id: map[string]Formatter{}, by_ext: map[string]Formatter{}}

// RegisterFormatter makes a formatter available to FromData, FromFile and
// friends. Registering a second formatter with the same ID replaces the
// first.
func RegisterFormatter(f Formatter) {
	formatters.Lock()
	defer formatters.Unlock()
	id := f.ID()
	if _, exists := formatters.by_id[id]; !exists {
		formatters.order = append(formatters.order, id)
	}
	formatters.by_id[id] = f
	for _, ext := range f.Extensions() {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if _, taken := formatters.by_ext[ext]; !taken || formatters.by_ext[ext].ID() == id {
			formatters.by_ext[ext] = f
		}
	}
	Logger().Debug("registered LUT formatter", "id", id, "extensions", f.Extensions())
}

func FormatterByID(id string) (Formatter, error) {
	formatters.RLock()
	defer formatters.RUnlock()
	if f, ok := formatters.by_id[id]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormatter, id)
}

// FormatterForExtension returns the formatter registered for a file
// extension, with or without the leading dot. When several formatters
// handle an extension the first registered one wins.
func FormatterForExtension(ext string) (Formatter, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	formatters.RLock()
	defer formatters.RUnlock()
	if f, ok := formatters.by_ext[ext]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: no formatter for extension %q", ErrUnknownFormatter, ext)
}

// Formatters returns the IDs of all registered formatters in registration
// order.
func Formatters() []string {
	formatters.RLock()
	defer formatters.RUnlock()
	return slices.Clone(formatters.order)
}

// FromData decodes data using the formatter with the specified ID.
func FromData(data []byte, formatterID string) (*LUT, error) {
	f, err := FormatterByID(formatterID)
	if err != nil {
		return nil, err
	}
	return f.Decode(data)
}

// DataWithFormatter encodes the LUT using the formatter with the specified
// ID. When options is nil the passthrough file options of the LUT are used.
func (l *LUT) DataWithFormatter(formatterID string, options Options) ([]byte, error) {
	f, err := FormatterByID(formatterID)
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = l.passthrough
	}
	return f.Encode(l, options)
}
