// Package file opens compressed files as read or write pipelines. The compression scheme is
// derived from the file suffix unless set explicitly
package file

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/els0r/gostream/pkg/compression"
	"github.com/els0r/gostream/pkg/compression/schemes"
	"github.com/els0r/gostream/pkg/stream"
)

const (
	// StdStream denotes stdin (for Open) or stdout (for Create)
	StdStream = "-"

	// defaultPermissions denotes the permissions used for file creation
	defaultPermissions = 0644

	// ModeRead denotes read access
	ModeRead = os.O_RDONLY

	// ModeWrite denotes write access, truncating existing files
	ModeWrite = os.O_CREATE | os.O_TRUNC | os.O_WRONLY
)

type options struct {
	registry    *compression.Registry
	scheme      string
	schemeSet   bool
	permissions fs.FileMode

	pipelineOpts    []stream.Option
	compressionOpts []compression.Option
}

// Option defines optional arguments to Open and Create
type Option func(*options)

// WithRegistry sets the registry used to resolve compression schemes
func WithRegistry(r *compression.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithScheme forces a compression scheme instead of deriving it from the file suffix
func WithScheme(name string) Option {
	return func(o *options) {
		o.scheme = name
		o.schemeSet = true
	}
}

// WithPermissions sets the permissions of files created by Create
func WithPermissions(perm fs.FileMode) Option {
	return func(o *options) {
		o.permissions = perm
	}
}

// WithPipelineOptions passes options on to the underlying pipeline
func WithPipelineOptions(opts ...stream.Option) Option {
	return func(o *options) {
		o.pipelineOpts = append(o.pipelineOpts, opts...)
	}
}

// WithCompressionOptions passes options on to the compressor / decompressor
func WithCompressionOptions(opts ...compression.Option) Option {
	return func(o *options) {
		o.compressionOpts = append(o.compressionOpts, opts...)
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		registry:    compression.Default(),
		permissions: defaultPermissions,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) schemeFor(path string) string {
	if o.schemeSet {
		return o.scheme
	}
	return o.registry.ByExtension(path).String()
}

// Scheme returns the compression scheme Open and Create would use for path
func Scheme(path string, opts ...Option) (schemes.Type, error) {
	return schemes.Parse(newOptions(opts).schemeFor(path))
}

// Open opens path for reading and starts a read pipeline decompressing its contents
func Open(ctx context.Context, path string, opts ...Option) (*stream.ReadPipeline, error) {
	o := newOptions(opts)

	var in io.ReadCloser = io.NopCloser(os.Stdin)
	if path != StdStream {
		f, err := os.OpenFile(path, ModeRead, 0)
		if err != nil {
			return nil, err
		}
		in = f
	}

	scheme := o.schemeFor(path)
	dec, err := o.registry.NewDecompressor(scheme, in, o.compressionOpts...)
	if err != nil {
		_ = in.Close()
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return stream.NewReadPipeline(ctx, dec, append([]stream.Option{stream.WithName(path)}, o.pipelineOpts...)...), nil
}

// Create creates (or truncates) path and starts a write pipeline compressing everything
// submitted to it into the file. The file is closed by the pipeline's worker
func Create(ctx context.Context, path string, opts ...Option) (*stream.Writer, error) {
	o := newOptions(opts)

	var out io.WriteCloser = nopWriteCloser{os.Stdout}
	if path != StdStream {
		f, err := os.OpenFile(path, ModeWrite, o.permissions)
		if err != nil {
			return nil, err
		}
		out = f
	}

	scheme := o.schemeFor(path)
	comp, err := o.registry.NewCompressor(scheme, out, o.compressionOpts...)
	if err != nil {
		_ = out.Close()
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	return stream.NewWriter(ctx, comp, append([]stream.Option{stream.WithName(path)}, o.pipelineOpts...)...), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
