// Package bzip2 implements bzip2 decompression. Compression is not supported
package bzip2

import (
	"compress/bzip2"
	"errors"
	"io"

	"github.com/els0r/gostream/pkg/compression/schemes"
)

// ErrCompressionUnsupported is returned when trying to create a bzip2 compressor
var ErrCompressionUnsupported = errors.New("bzip2: compression is not supported")

// Codec decompresses bzip2 streams
type Codec struct{}

// New creates a new bzip2 Codec
func New() *Codec {
	return &Codec{}
}

// Scheme will return the compression scheme of the codec
func (c *Codec) Scheme() schemes.Type {
	return schemes.SchemeBzip2
}

// SetLevel is a no-op since only decompression is available
func (c *Codec) SetLevel(int) {}

// NewWriter always fails with ErrCompressionUnsupported
func (c *Codec) NewWriter(io.Writer) (io.WriteCloser, error) {
	return nil, ErrCompressionUnsupported
}

// NewReader wraps r with a bzip2 decompressor
func (c *Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(bzip2.NewReader(r)), nil
}
