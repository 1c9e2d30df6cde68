// Package s2 implements the codec for S2 (de-)compression of byte streams
package s2

import (
	"io"

	"github.com/els0r/gostream/pkg/compression/schemes"
	"github.com/klauspost/compress/s2"
)

const (
	MaxCompressionLevel     = 3 // MaxCompressionLevel denotes the maximum useful compression level
	defaultCompressionLevel = 1
)

// Codec compresses data with the S2 stream format
type Codec struct {

	// compression level: 1 (default), 2 (better), 3 (best)
	level int
}

// Option sets additional parameters on the Codec
type Option func(*Codec)

// New creates a new S2 Codec
func New(opts ...Option) *Codec {
	c := &Codec{level: defaultCompressionLevel}

	// apply options
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCompressionLevel allows the level to be set to something other than the default (1)
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
	return schemes.SchemeS2
}

// NewWriter wraps w with an S2 compressor
func (c *Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	opts := []s2.WriterOption{s2.WriterConcurrency(1)}
	switch {
	case c.level >= 3:
		opts = append(opts, s2.WriterBestCompression())
	case c.level == 2:
		opts = append(opts, s2.WriterBetterCompression())
	}
	return s2.NewWriter(w, opts...), nil
}

// NewReader wraps r with an S2 decompressor
func (c *Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}
