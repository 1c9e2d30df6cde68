// Package lz4 implements the codec for LZ4 frame (de-)compression of byte streams
package lz4

import (
	"fmt"
	"io"

	"github.com/els0r/gostream/pkg/compression/schemes"
	"github.com/pierrec/lz4/v4"
)

const (
	MaxCompressionLevel     = 9 // MaxCompressionLevel denotes the maximum useful compression level
	defaultCompressionLevel = 4
)

// levels maps the numeric level onto the frame compression levels (0 = fast mode)
var levels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3,
	lz4.Level4, lz4.Level5, lz4.Level6,
	lz4.Level7, lz4.Level8, lz4.Level9,
}

// Codec compresses data with the LZ4 frame format
type Codec struct {

	// compression level
	level int
}

// Option sets additional parameters on the Codec
type Option func(*Codec)

// New creates a new LZ4 Codec
func New(opts ...Option) *Codec {
	// compression level of 4 is used by default as it offers higher compression speeds than maximum compression,
	// while retaining an agreeable compression ratio
	c := &Codec{level: defaultCompressionLevel}

	// apply options
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithCompressionLevel allows the level to be set to something other than the default (4)
func WithCompressionLevel(level int) Option {
	return func(c *Codec) {
		c.SetLevel(level)
	}
}

// SetLevel sets / changes the compression level, clamped to [0, MaxCompressionLevel]
func (c *Codec) SetLevel(level int) {
	c.level = min(max(level, 0), MaxCompressionLevel)
}

// Scheme will return the compression scheme of the codec
func (c *Codec) Scheme() schemes.Type {
	return schemes.SchemeLZ4
}

// NewWriter wraps w with an LZ4 frame compressor
func (c *Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	lw := lz4.NewWriter(w)
	if err := lw.Apply(lz4.CompressionLevelOption(levels[c.level])); err != nil {
		return nil, fmt.Errorf("lz4: compressor init failed: %w", err)
	}
	return lw, nil
}

// NewReader wraps r with an LZ4 frame decompressor
func (c *Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
