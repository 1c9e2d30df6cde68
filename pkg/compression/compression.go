// Package compression provides the codecs used by gostream pipelines and a registry
// resolving scheme names and file suffixes to codec instances
package compression

import (
	"fmt"
	"io"
	"slices"

	"github.com/els0r/gostream/pkg/compression/bzip2"
	"github.com/els0r/gostream/pkg/compression/gzip"
	"github.com/els0r/gostream/pkg/compression/lz4"
	"github.com/els0r/gostream/pkg/compression/null"
	"github.com/els0r/gostream/pkg/compression/s2"
	"github.com/els0r/gostream/pkg/compression/schemes"
	"github.com/els0r/gostream/pkg/compression/zstd"
)

// Codec turns plain byte streams into compressed ones and vice versa
type Codec interface {

	// Scheme will return the compression scheme implemented by the codec
	Scheme() schemes.Type

	// SetLevel sets the compression level (if supported)
	SetLevel(level int)

	// NewWriter wraps w. Data written to the returned writer is compressed into w. Closing it
	// flushes all pending data but must not close w
	NewWriter(w io.Writer) (io.WriteCloser, error)

	// NewReader wraps r. Reading from the returned reader yields the decompressed contents of r.
	// Closing it releases decoder resources but must not close r
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Factory creates a fresh codec instance
type Factory func() Codec

// New creates a new codec based on a scheme type
func New(t schemes.Type) (Codec, error) {
	switch t {
	case schemes.SchemeNone:
		return null.New(), nil
	case schemes.SchemeGzip:
		return gzip.New(), nil
	case schemes.SchemeBzip2:
		return bzip2.New(), nil
	case schemes.SchemeLZ4:
		return lz4.New(), nil
	case schemes.SchemeZSTD:
		return zstd.New(), nil
	case schemes.SchemeS2:
		return s2.New(), nil
	default:
		return nil, fmt.Errorf("unsupported compression scheme: %v", t)
	}
}

// NewByString creates a new codec based on a scheme name
func NewByString(s string) (Codec, error) {
	t, err := schemes.Parse(s)
	if err != nil {
		return nil, err
	}
	return New(t)
}

// Registry resolves schemes to codecs. It is immutable once created and therefore safe for
// concurrent use
type Registry struct {
	factories map[schemes.Type]Factory
}

// NewRegistry creates a registry from the given factories. Later factories for the same
// scheme replace earlier ones
func NewRegistry(factories ...Factory) *Registry {
	r := &Registry{factories: make(map[schemes.Type]Factory, len(factories))}
	for _, f := range factories {
		r.factories[f().Scheme()] = f
	}
	return r
}

var defaultRegistry = func() *Registry {
	factories := make([]Factory, 0, schemes.MaxScheme+1)
	for t := schemes.SchemeNone; t <= schemes.MaxScheme; t++ {
		factories = append(factories, func() Codec {
			c, err := New(t)
			if err != nil {
				panic(err)
			}
			return c
		})
	}
	return NewRegistry(factories...)
}()

// Default returns the registry holding all built-in codecs
func Default() *Registry {
	return defaultRegistry
}

// Schemes returns the registered schemes in ascending order
func (r *Registry) Schemes() []schemes.Type {
	list := make([]schemes.Type, 0, len(r.factories))
	for t := range r.factories {
		list = append(list, t)
	}
	slices.Sort(list)
	return list
}

// Get returns a new codec instance for the scheme
func (r *Registry) Get(t schemes.Type) (Codec, error) {
	f, ok := r.factories[t]
	if !ok {
		return nil, fmt.Errorf("compression scheme %s not registered", t)
	}
	return f(), nil
}

// Lookup returns a new codec instance for the scheme name
func (r *Registry) Lookup(name string) (Codec, error) {
	t, err := schemes.Parse(name)
	if err != nil {
		return nil, err
	}
	return r.Get(t)
}

// ByExtension returns the scheme registered for the suffix of path. Unknown or unregistered
// suffixes yield SchemeNone
func (r *Registry) ByExtension(path string) schemes.Type {
	t, ok := schemes.FromExtension(path)
	if !ok {
		return schemes.SchemeNone
	}
	if _, registered := r.factories[t]; !registered {
		return schemes.SchemeNone
	}
	return t
}

// NewCompressor creates a compressor for the named scheme writing to out. The compressor
// takes ownership of out and closes it on Close
func (r *Registry) NewCompressor(name string, out io.WriteCloser, opts ...Option) (*StreamCompressor, error) {
	codec, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return NewStreamCompressor(codec, out, opts...)
}

// NewDecompressor creates a decompressor for the named scheme reading from in. The
// decompressor takes ownership of in and closes it on Close
func (r *Registry) NewDecompressor(name string, in io.ReadCloser, opts ...Option) (*StreamDecompressor, error) {
	codec, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return NewStreamDecompressor(codec, in, opts...)
}
