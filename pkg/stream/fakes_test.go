package stream

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"sync/atomic"
)

var errFake = errors.New("fake codec failure")

// fakeDecompressor hands out a fixed sequence of chunks, optionally followed by an error
// instead of io.EOF
type fakeDecompressor struct {
	mu     sync.Mutex
	chunks [][]byte
	err    error

	// infinite keeps yielding the last chunk forever
	infinite bool
	panics   bool

	reads    atomic.Int64
	closed      atomic.Int64
	closeErr    error
	closePanics bool
}

func (f *fakeDecompressor) Read() ([]byte, error) {
	f.reads.Add(1)
	if f.panics {
		panic("decompressor exploded")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.chunks) == 0 {
		if f.err != nil {
			return nil, f.err
		}
		return nil, io.EOF
	}
	chunk := f.chunks[0]
	if !f.infinite || len(f.chunks) > 1 {
		f.chunks = f.chunks[1:]
	}
	return bytes.Clone(chunk), nil
}

func (f *fakeDecompressor) Close() error {
	f.closed.Add(1)
	if f.closePanics {
		panic("decompressor close exploded")
	}
	return f.closeErr
}

// fakeCompressor collects everything written to it
type fakeCompressor struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	writes int

	// failAfter makes the n-th write fail (1-based, 0 disables)
	failAfter int
	panics    bool

	closed      atomic.Int64
	closeErr    error
	closePanics bool
}

func (f *fakeCompressor) Write(chunk []byte) error {
	if f.panics {
		panic("compressor exploded")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.writes++
	if f.failAfter > 0 && f.writes >= f.failAfter {
		return errFake
	}
	f.buf.Write(chunk)
	return nil
}

func (f *fakeCompressor) Close() error {
	f.closed.Add(1)
	if f.closePanics {
		panic("compressor close exploded")
	}
	return f.closeErr
}

func (f *fakeCompressor) String() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buf.String()
}

func chunksOf(s ...string) [][]byte {
	out := make([][]byte, len(s))
	for i, c := range s {
		out[i] = []byte(c)
	}
	return out
}
