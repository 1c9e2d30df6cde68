// Package gzip implements the codec for gzip (de-)compression of byte streams
package gzip

import (
	"fmt"
	"io"

	"github.com/els0r/gostream/pkg/compression/schemes"
	"github.com/klauspost/compress/gzip"
)

const (
	MaxCompressionLevel     = gzip.BestCompression // MaxCompressionLevel denotes the maximum useful compression level
	defaultCompressionLevel = gzip.DefaultCompression
)

// Codec compresses data with gzip
type Codec struct {

	// compression level
	level int
}

// Option sets additional parameters on the Codec
type Option func(*Codec)

// New creates a new gzip Codec
func New(opts ...Option) *Codec {
	c := &Codec{level: defaultCompressionLevel}

	// apply options
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCompressionLevel allows the level to be set to something other than the default
func WithCompressionLevel(level int) Option {
	return func(c *Codec) {
		c.SetLevel(level)
	}
}

// SetLevel sets / changes the compression level
func (c *Codec) SetLevel(level int) {
	c.level = level
}

// Scheme will return the compression scheme of the codec
func (c *Codec) Scheme() schemes.Type {
	return schemes.SchemeGzip
}

// NewWriter wraps w with a gzip compressor
func (c *Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	gw, err := gzip.NewWriterLevel(w, c.level)
	if err != nil {
		return nil, fmt.Errorf("gzip: compressor init failed: %w", err)
	}
	return gw, nil
}

// NewReader wraps r with a gzip decompressor. The gzip header is consumed immediately
func (c *Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip: decompressor init failed: %w", err)
	}
	return gr, nil
}
