// Package null implements a pass-through codec that leaves the data untouched
package null

import (
	"io"

	"github.com/els0r/gostream/pkg/compression/schemes"
)

// Codec passes data through without any algorithm
type Codec struct{}

// New creates a new Null codec which does not manipulate the original data
// in any way. It's meant to be used where no compression is desired
func New() *Codec {
	return &Codec{}
}

// Scheme will return the compression scheme of the codec
func (c *Codec) Scheme() schemes.Type {
	return schemes.SchemeNone
}

// SetLevel is a no-op, there is nothing to tune
func (c *Codec) SetLevel(int) {}

// NewWriter returns w unchanged. Closing the returned writer does not close w
func (c *Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

// NewReader returns r unchanged. Closing the returned reader does not close r
func (c *Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
