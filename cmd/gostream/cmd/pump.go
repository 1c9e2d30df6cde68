package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/els0r/gostream/cmd/gostream/config"
	"github.com/els0r/gostream/pkg/compression"
	"github.com/els0r/gostream/pkg/file"
	"github.com/els0r/gostream/pkg/formatting"
	"github.com/els0r/gostream/pkg/stream"
	"github.com/els0r/telemetry/logging"
	jsoniter "github.com/json-iterator/go"
	"github.com/zeebo/xxh3"
)

// summary describes a completed transfer
type summary struct {
	Inputs   []string `json:"inputs"`
	Output   string   `json:"output"`
	Scheme   string   `json:"scheme"`
	Bytes    int64    `json:"bytes"`
	Checksum string   `json:"xxh3,omitempty"`
	Elapsed  string   `json:"elapsed"`

	elapsed time.Duration
}

func (s *summary) print(w io.Writer, format string) error {
	if format == "json" {
		return jsoniter.NewEncoder(w).Encode(s)
	}
	_, err := fmt.Fprintf(w, "%s from %d input(s) to %s (%s) in %s (%s)",
		formatting.Size(uint64(s.Bytes)), len(s.Inputs), s.Output, s.Scheme,
		formatting.Duration(s.elapsed), formatting.Throughput(uint64(s.Bytes), s.elapsed),
	)
	if err != nil {
		return err
	}
	if s.Checksum != "" {
		_, err = fmt.Fprintf(w, ", xxh3: %s", s.Checksum)
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}

// transfer decompresses all inputs one after the other into a single write pipeline
func transfer(ctx context.Context, cfg *config.Config, inputs []string, output string, outOpts []file.Option, checksum bool) (*summary, error) {
	logger := logging.FromContext(ctx)

	t0 := time.Now()
	pipelineOpts := cfg.PipelineOptions()

	if cfg.Compression.Level != nil {
		outOpts = append(outOpts, file.WithCompressionOptions(compression.WithLevel(*cfg.Compression.Level)))
	}
	outOpts = append(outOpts, file.WithPipelineOptions(pipelineOpts...))

	scheme, err := file.Scheme(output, outOpts...)
	if err != nil {
		return nil, err
	}

	w, err := file.Create(ctx, output, outOpts...)
	if err != nil {
		return nil, err
	}

	var (
		dst    io.Writer = w
		hasher *xxh3.Hasher
	)
	if checksum {
		hasher = xxh3.New()
		dst = io.MultiWriter(w, hasher)
	}

	res := &summary{
		Inputs: inputs,
		Output: output,
		Scheme: scheme.String(),
	}
	for _, input := range inputs {
		n, err := copyFile(ctx, cfg, input, dst)
		res.Bytes += n
		if err != nil {
			// the output is incomplete either way, the write pipeline still has to be joined
			if cerr := w.Close(); cerr != nil {
				logger.With("error", cerr, "output", output).Error("failed to close output")
			}
			return nil, fmt.Errorf("failed to copy %s: %w", input, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", output, err)
	}

	if hasher != nil {
		res.Checksum = fmt.Sprintf("%016x", hasher.Sum64())
	}
	res.elapsed = time.Since(t0)
	res.Elapsed = res.elapsed.Round(time.Millisecond).String()

	logger.With("bytes", res.Bytes, "output", output).Debug("transfer completed")

	return res, nil
}

func copyFile(ctx context.Context, cfg *config.Config, input string, dst io.Writer) (int64, error) {
	r, err := file.Open(ctx, input,
		file.WithPipelineOptions(stream.WithQueueSize(cfg.Pipeline.QueueSize)),
		file.WithCompressionOptions(compression.WithChunkSize(cfg.Pipeline.ChunkSize)),
	)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	n, err := r.WriteTo(dst)
	if err != nil {
		return n, err
	}

	// a cancelled read pipeline ends its stream early without reporting a fault
	return n, ctx.Err()
}
