// Package zstd implements the codec for ZStandard (de-)compression of byte streams
package zstd

import (
	"fmt"
	"io"

	"github.com/els0r/gostream/pkg/compression/schemes"
	"github.com/klauspost/compress/zstd"
)

const (
	MaxCompressionLevel     = 19 // MaxCompressionLevel denotes the maximum useful compression level
	defaultCompressionLevel = 6
)

// Codec compresses data with the ZStandard algorithm
type Codec struct {

	// compression level
	level int
}

// Option sets additional parameters on the Codec
type Option func(*Codec)

// New creates a new ZStandard Codec
func New(opts ...Option) *Codec {
	// compression level of 6 is used by default as it offers higher compression speeds than maximum compression,
	// while retaining an agreeable compression ratio
	c := &Codec{level: defaultCompressionLevel}

	// apply options
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCompressionLevel allows the level to be set to something other than the default (6)
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
	return schemes.SchemeZSTD
}

// NewWriter wraps w with a ZStandard compressor. The pipeline worker already runs in its own
// goroutine, hence the encoder itself is kept single-threaded
func (c *Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	enc, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(c.level)),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd: compression context init failed: %w", err)
	}
	return enc, nil
}

// NewReader wraps r with a ZStandard decompressor
func (c *Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r,
		zstd.WithDecoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd: decompression context init failed: %w", err)
	}
	return dec.IOReadCloser(), nil
}
