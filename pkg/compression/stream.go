package compression

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"
)

// StreamCompressor compresses chunks into an output it owns
type StreamCompressor struct {
	enc io.WriteCloser
	buf *bufio.Writer
	out io.WriteCloser

	closeOnce sync.Once
	closeErr  error
}

// NewStreamCompressor creates a compressor writing the output of codec to out. On error, out
// is left open
func NewStreamCompressor(codec Codec, out io.WriteCloser, opts ...Option) (*StreamCompressor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.level != nil {
		codec.SetLevel(*o.level)
	}

	buf := bufio.NewWriterSize(out, o.bufferSize)
	enc, err := codec.NewWriter(buf)
	if err != nil {
		return nil, err
	}
	return &StreamCompressor{
		enc: enc,
		buf: buf,
		out: out,
	}, nil
}

// Write compresses a chunk
func (s *StreamCompressor) Write(chunk []byte) error {
	n, err := s.enc.Write(chunk)
	if err != nil {
		return err
	}
	if n != len(chunk) {
		return io.ErrShortWrite
	}
	return nil
}

// Close flushes all pending data and closes the output. Subsequent calls return the result of
// the first one
func (s *StreamCompressor) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if err := s.enc.Close(); err != nil {
			errs = append(errs, fmt.Errorf("compressor release failed: %w", err))
		}
		if err := s.buf.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("flush failed: %w", err))
		}
		if err := s.out.Close(); err != nil {
			errs = append(errs, fmt.Errorf("output close failed: %w", err))
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}

// StreamDecompressor reads decompressed chunks from an input it owns
type StreamDecompressor struct {
	dec       io.ReadCloser
	in        io.ReadCloser
	chunkSize int

	closeOnce sync.Once
	closeErr  error
}

// NewStreamDecompressor creates a decompressor reading the input through codec. On error, in is
// left open
func NewStreamDecompressor(codec Codec, in io.ReadCloser, opts ...Option) (*StreamDecompressor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	dec, err := codec.NewReader(in)
	if err != nil {
		return nil, err
	}
	return &StreamDecompressor{
		dec:       dec,
		in:        in,
		chunkSize: o.chunkSize,
	}, nil
}

// Read returns the next chunk of decompressed data. Chunks are freshly allocated and may be
// retained by the caller. At the end of the stream io.EOF is returned. On a decoding error, the
// data decoded up to that point is returned along with the error
func (s *StreamDecompressor) Read() ([]byte, error) {
	chunk := make([]byte, s.chunkSize)
	n, err := io.ReadFull(s.dec, chunk)
	switch {
	case err == nil:
		return chunk, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return chunk[:n], nil
	case errors.Is(err, io.EOF):
		return nil, io.EOF
	default:
		return chunk[:n], err
	}
}

// Close releases the decoder and closes the input. Subsequent calls return the result of the
// first one
func (s *StreamDecompressor) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if err := s.dec.Close(); err != nil {
			errs = append(errs, fmt.Errorf("decompressor release failed: %w", err))
		}
		if err := s.in.Close(); err != nil {
			errs = append(errs, fmt.Errorf("input close failed: %w", err))
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}
