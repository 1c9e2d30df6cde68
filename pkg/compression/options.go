package compression

const (
	// DefaultChunkSize denotes the size of chunks produced by a StreamDecompressor
	DefaultChunkSize = 64 * 1024

	// DefaultBufferSize denotes the size of the write buffer between a codec and its output
	DefaultBufferSize = 64 * 1024
)

type options struct {
	chunkSize  int
	bufferSize int
	level      *int
}

func defaultOptions() options {
	return options{
		chunkSize:  DefaultChunkSize,
		bufferSize: DefaultBufferSize,
	}
}

// Option configures stream compressors and decompressors
type Option func(*options)

// WithChunkSize sets the maximum size of the chunks returned by a StreamDecompressor
func WithChunkSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.chunkSize = size
		}
	}
}

// WithBufferSize sets the size of the buffer in front of the output of a StreamCompressor
func WithBufferSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.bufferSize = size
		}
	}
}

// WithLevel overrides the codec's default compression level
func WithLevel(level int) Option {
	return func(o *options) {
		o.level = &level
	}
}
