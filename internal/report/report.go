// Package report encodes per-patron fee totals. Encoders register
// themselves from init and are looked up by name or file extension.
package report

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Dan9191/library-fees/internal/models"
)

// DefaultFormat is used when neither a name nor an extension selects an encoder
const DefaultFormat = "csv"

// Encoder writes fee totals in one output format
type Encoder interface {
	// Name is the format name used in configuration and query strings.
	Name() string

	// Extension includes the leading dot, e.g. ".csv".
	Extension() string

	ContentType() string

	Encode(w io.Writer, totals []models.FeeTotal) error
}

// ErrUnknownFormat is returned for a format name with no registered encoder
var ErrUnknownFormat = errors.New("unknown report format")

// ErrFormatMismatch is returned when a format name contradicts the extension
// of the file it would be written to
var ErrFormatMismatch = errors.New("report format does not match file extension")

var registry = map[string]Encoder{}

// Register adds an encoder to the registry
func Register(e Encoder) {
	registry[e.Name()] = e
}

// Lookup returns the encoder registered under name
func Lookup(name string) (Encoder, error) {
	e, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownFormat, name, strings.Join(Names(), ", "))
	}
	return e, nil
}

// ForPath picks the encoder by name when given, otherwise by the extension
// of path, falling back to DefaultFormat. A name is rejected when path ends
// in the extension of a different registered format.
func ForPath(name, path string) (Encoder, error) {
	byExt := forExtension(filepath.Ext(path))
	if name == "" {
		if byExt != nil {
			return byExt, nil
		}
		return Lookup(DefaultFormat)
	}

	e, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if byExt != nil && byExt.Name() != e.Name() {
		return nil, fmt.Errorf("%w: %q is %s, not %s", ErrFormatMismatch, path, byExt.Name(), e.Name())
	}
	return e, nil
}

func forExtension(ext string) Encoder {
	ext = strings.ToLower(ext)
	for _, e := range registry {
		if e.Extension() == ext {
			return e
		}
	}
	return nil
}

// Names lists registered format names
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
