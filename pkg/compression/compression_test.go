package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/els0r/gostream/pkg/compression/bzip2"
	"github.com/els0r/gostream/pkg/compression/gzip"
	"github.com/els0r/gostream/pkg/compression/null"
	"github.com/els0r/gostream/pkg/compression/schemes"
	"github.com/els0r/gostream/pkg/compression/zstd"
)

// writableSchemes lists all schemes supporting compression
var writableSchemes = []schemes.Type{
	schemes.SchemeNone,
	schemes.SchemeGzip,
	schemes.SchemeLZ4,
	schemes.SchemeZSTD,
	schemes.SchemeS2,
}

var corpus = func() []byte {
	var sb strings.Builder
	for i := 0; i < 20000; i++ {
		fmt.Fprintf(&sb, "%d: the quick brown fox jumps over the lazy dog\n", i)
	}
	return []byte(sb.String())
}()

// bzip2 -9 of "hello bzip2\n" repeated three times
var bzip2Fixture = []byte{
	0x42, 0x5a, 0x68, 0x39, 0x31, 0x41, 0x59, 0x26, 0x53, 0x59, 0x2e, 0xd2, 0x9d, 0x8e, 0x00, 0x00,
	0x08, 0xd9, 0x80, 0x00, 0x10, 0x40, 0x00, 0x10, 0x00, 0x12, 0x64, 0xc0, 0x10, 0x20, 0x00, 0x22,
	0xbf, 0xd5, 0x40, 0x34, 0xf5, 0x08, 0x06, 0x9a, 0x68, 0xc2, 0x9e, 0x69, 0xd6, 0xd1, 0x49, 0x64,
	0x47, 0xc5, 0xdc, 0x91, 0x4e, 0x14, 0x24, 0x0b, 0xb4, 0xa7, 0x63, 0x80,
}

// closeTracker is an in-memory output / input that records whether it was closed
type closeTracker struct {
	*bytes.Buffer
	closed int
}

func (c *closeTracker) Close() error {
	c.closed++
	return nil
}

func TestNewByString(t *testing.T) {
	var tests = []struct {
		name         string
		schemeString string
		expect       schemes.Type
		shouldFail   bool
	}{
		{"empty string", "", schemes.SchemeNone, false},
		{"null codec", "null", schemes.SchemeNone, false},
		{"none codec", "none", schemes.SchemeNone, false},
		{"gzip codec", "gzip", schemes.SchemeGzip, false},
		{"gzip codec (alias)", "gz", schemes.SchemeGzip, false},
		{"bzip2 codec", "bzip2", schemes.SchemeBzip2, false},
		{"lz4 codec", "lz4", schemes.SchemeLZ4, false},
		{"lz4 codec (uppercase)", "LZ4", schemes.SchemeLZ4, false},
		{"zstd codec", "zstd", schemes.SchemeZSTD, false},
		{"zstd codec (alias)", "zst", schemes.SchemeZSTD, false},
		{"s2 codec", "s2", schemes.SchemeS2, false},
		{"unsupported codec", "iwillneverbesupported", schemes.SchemeNone, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, err := NewByString(test.schemeString)
			if test.shouldFail {
				if err == nil {
					t.Fatalf("expected to fail but didn't")
				}
			} else {
				if err != nil {
					t.Fatalf("failed to create codec: %v", err)
				}

				if c.Scheme() != test.expect {
					t.Fatalf("have: %v; expect: %v", c.Scheme(), test.expect)
				}
			}
		})
	}
}

func compress(t *testing.T, codec Codec, data []byte, chunkSize int, opts ...Option) []byte {
	t.Helper()

	out := &closeTracker{Buffer: bytes.NewBuffer(nil)}
	comp, err := NewStreamCompressor(codec, out, opts...)
	if err != nil {
		t.Fatalf("failed to create compressor for scheme %s: %s", codec.Scheme(), err)
	}
	for len(data) > 0 {
		n := min(chunkSize, len(data))
		if err := comp.Write(data[:n]); err != nil {
			t.Fatalf("failed to compress data for scheme %s: %s", codec.Scheme(), err)
		}
		data = data[n:]
	}
	if err := comp.Close(); err != nil {
		t.Fatalf("failed to close compressor for scheme %s: %s", codec.Scheme(), err)
	}
	if out.closed != 1 {
		t.Fatalf("output closed %d times, expected once", out.closed)
	}
	return out.Bytes()
}

func decompress(t *testing.T, codec Codec, data []byte, chunkSize int) []byte {
	t.Helper()

	in := &closeTracker{Buffer: bytes.NewBuffer(data)}
	dec, err := NewStreamDecompressor(codec, in, WithChunkSize(chunkSize))
	if err != nil {
		t.Fatalf("failed to create decompressor for scheme %s: %s", codec.Scheme(), err)
	}

	var out []byte
	for {
		chunk, err := dec.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("failed to decompress data for scheme %s: %s", codec.Scheme(), err)
		}
		if len(chunk) == 0 || len(chunk) > chunkSize {
			t.Fatalf("unexpected chunk size %d (max %d)", len(chunk), chunkSize)
		}
		out = append(out, chunk...)
	}

	// end of stream is sticky
	if _, err := dec.Read(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF after end of stream, have %v", err)
	}
	if err := dec.Close(); err != nil {
		t.Fatalf("failed to close decompressor for scheme %s: %s", codec.Scheme(), err)
	}
	if in.closed != 1 {
		t.Fatalf("input closed %d times, expected once", in.closed)
	}
	return out
}

func TestCompressionDecompression(t *testing.T) {
	for _, scheme := range writableSchemes {
		for _, chunkSize := range []int{1000, 4096, DefaultChunkSize} {
			t.Run(fmt.Sprintf("%s_%d", scheme, chunkSize), func(t *testing.T) {
				codec, err := New(scheme)
				if err != nil {
					t.Fatalf("failed to instantiate codec of scheme %s: %s", scheme, err)
				}

				compressed := compress(t, codec, corpus, chunkSize)
				if scheme != schemes.SchemeNone && len(compressed) >= len(corpus) {
					t.Fatalf("scheme %s did not compress: %d >= %d", scheme, len(compressed), len(corpus))
				}

				if !bytes.Equal(decompress(t, codec, compressed, chunkSize), corpus) {
					t.Fatalf("invalid data detected after round-trip")
				}
			})
		}
	}
}

func TestCompressionDecompressionCustomLevel(t *testing.T) {
	for _, scheme := range writableSchemes {
		for level := 1; level <= 9; level++ {
			t.Run(fmt.Sprintf("%s_%d", scheme, level), func(t *testing.T) {
				codec, err := New(scheme)
				if err != nil {
					t.Fatalf("failed to instantiate codec of scheme %s: %s", scheme, err)
				}

				compressed := compress(t, codec, corpus, DefaultChunkSize, WithLevel(level), WithBufferSize(512))
				if !bytes.Equal(decompress(t, codec, compressed, DefaultChunkSize), corpus) {
					t.Fatalf("invalid data detected after round-trip")
				}
			})
		}
	}
}

func TestEmptyStream(t *testing.T) {
	for _, scheme := range writableSchemes {
		t.Run(scheme.String(), func(t *testing.T) {
			codec, err := New(scheme)
			if err != nil {
				t.Fatalf("failed to instantiate codec of scheme %s: %s", scheme, err)
			}
			if out := decompress(t, codec, compress(t, codec, nil, 1), 16); len(out) != 0 {
				t.Fatalf("expected no data, have %d bytes", len(out))
			}
		})
	}
}

func TestBzip2(t *testing.T) {
	out := decompress(t, bzip2.New(), bzip2Fixture, 8)
	if string(out) != strings.Repeat("hello bzip2\n", 3) {
		t.Fatalf("unexpected bzip2 output: %q", out)
	}

	_, err := Default().NewCompressor("bzip2", &closeTracker{Buffer: bytes.NewBuffer(nil)})
	if !errors.Is(err, bzip2.ErrCompressionUnsupported) {
		t.Fatalf("expected ErrCompressionUnsupported, have %v", err)
	}
}

func TestCorruptInput(t *testing.T) {
	garbage := []byte("this is definitely not compressed data")

	// gzip validates the header upfront
	in := &closeTracker{Buffer: bytes.NewBuffer(garbage)}
	if _, err := NewStreamDecompressor(gzip.New(), in); err == nil {
		t.Fatalf("expected gzip to reject corrupt input")
	}
	if in.closed != 0 {
		t.Fatalf("input must be left open on error")
	}

	// zstd only fails once data is read
	dec, err := NewStreamDecompressor(zstd.New(), &closeTracker{Buffer: bytes.NewBuffer(garbage)})
	if err != nil {
		t.Fatalf("failed to create decompressor: %s", err)
	}
	defer dec.Close()

	if _, err := dec.Read(); err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("expected decompression error, have %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errDecode
}

var errDecode = errors.New("corrupt block")

func TestPartialChunkOnError(t *testing.T) {
	in := io.NopCloser(io.MultiReader(strings.NewReader("abc"), failingReader{}))
	dec, err := NewStreamDecompressor(null.New(), in, WithChunkSize(16))
	if err != nil {
		t.Fatalf("failed to create decompressor: %s", err)
	}
	defer dec.Close()

	chunk, err := dec.Read()
	if !errors.Is(err, errDecode) {
		t.Fatalf("expected decoding error, have %v", err)
	}
	if string(chunk) != "abc" {
		t.Fatalf("data decoded before the error was dropped, have %q", chunk)
	}
}

func TestCloseIdempotent(t *testing.T) {
	out := &closeTracker{Buffer: bytes.NewBuffer(nil)}
	comp, err := Default().NewCompressor("zstd", out)
	if err != nil {
		t.Fatalf("failed to create compressor: %s", err)
	}
	for i := 0; i < 3; i++ {
		if err := comp.Close(); err != nil {
			t.Fatalf("close #%d failed: %s", i, err)
		}
	}
	if out.closed != 1 {
		t.Fatalf("output closed %d times, expected once", out.closed)
	}

	in := &closeTracker{Buffer: bytes.NewBuffer(out.Bytes())}
	dec, err := Default().NewDecompressor("zstd", in)
	if err != nil {
		t.Fatalf("failed to create decompressor: %s", err)
	}
	for i := 0; i < 3; i++ {
		if err := dec.Close(); err != nil {
			t.Fatalf("close #%d failed: %s", i, err)
		}
	}
	if in.closed != 1 {
		t.Fatalf("input closed %d times, expected once", in.closed)
	}
}

func TestRegistry(t *testing.T) {
	reg := Default()

	if have := reg.Schemes(); len(have) != int(schemes.MaxScheme)+1 {
		t.Fatalf("unexpected number of default schemes: %v", have)
	}

	var tests = []struct {
		path   string
		expect schemes.Type
	}{
		{"data.txt", schemes.SchemeNone},
		{"data", schemes.SchemeNone},
		{"data.txt.gz", schemes.SchemeGzip},
		{"data.bz2", schemes.SchemeBzip2},
		{"data.lz4", schemes.SchemeLZ4},
		{"/tmp/data.zst", schemes.SchemeZSTD},
		{"data.s2", schemes.SchemeS2},
		{"data.gz.txt", schemes.SchemeNone},
	}
	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			if have := reg.ByExtension(test.path); have != test.expect {
				t.Fatalf("have: %v; expect: %v", have, test.expect)
			}
		})
	}

	// registries are independent of each other
	limited := NewRegistry(func() Codec { return gzip.New() })
	if have := limited.Schemes(); len(have) != 1 || have[0] != schemes.SchemeGzip {
		t.Fatalf("unexpected schemes: %v", have)
	}
	if _, err := limited.Lookup("zstd"); err == nil {
		t.Fatalf("expected unregistered scheme to fail")
	}
	if have := limited.ByExtension("data.zst"); have != schemes.SchemeNone {
		t.Fatalf("unregistered suffix resolved to %v", have)
	}
	if _, err := reg.Get(schemes.SchemeZSTD); err != nil {
		t.Fatalf("default registry was modified: %s", err)
	}
}
