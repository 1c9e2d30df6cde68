package stream

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/els0r/telemetry/logging"
	"github.com/google/uuid"
)

// Decompressor yields the decompressed contents of a stream chunk by chunk
type Decompressor interface {

	// Read returns the next chunk. The end of the stream is signalled by io.EOF
	Read() ([]byte, error)

	// Close releases the underlying resources. It must be idempotent
	Close() error
}

// ReadPipeline reads from a Decompressor in a background goroutine and hands the chunks to the
// owner through a bounded channel. The end of the stream is always delivered to the consumer,
// no matter whether the worker ran out of data, was cancelled or failed
type ReadPipeline struct {
	id  uuid.UUID
	ctx context.Context

	ch     *Channel[[]byte]
	cancel context.CancelFunc
	rg     RunGroup

	closeOnce sync.Once
}

// NewReadPipeline starts reading from dec. The pipeline owns dec and closes it once the worker
// stops. Cancelling ctx has the same effect as calling Cancel
func NewReadPipeline(ctx context.Context, dec Decompressor, opts ...Option) *ReadPipeline {
	cfg := newConfig(DirectionRead, opts)

	p := &ReadPipeline{
		id: uuid.New(),
		ch: NewChannel[[]byte](cfg.queueSize),
	}
	p.ctx = logging.WithFields(ctx,
		slog.String("pipeline", p.id.String()),
		slog.String("name", cfg.name),
		slog.String("direction", string(DirectionRead)),
	)

	var workerCtx context.Context
	workerCtx, p.cancel = context.WithCancel(p.ctx)
	p.rg.Run(workerCtx, func(ctx context.Context) error {
		return p.run(ctx, dec, cfg.name)
	})

	return p
}

func (p *ReadPipeline) run(ctx context.Context, dec Decompressor, name string) (err error) {
	ctx, span, stats := startWorker(ctx, DirectionRead, name, p.id.String())
	defer stats.finish(ctx, span, &err)

	// end of stream, the consumer must never be left waiting, not even if dec.Close panics
	defer p.ch.Close()

	defer func() {
		if cerr := dec.Close(); cerr != nil && err == nil {
			err = newFault(DirectionRead, OpClose, cerr)
		}
	}()

	for ctx.Err() == nil {
		chunk, rerr := dec.Read()
		if len(chunk) > 0 {
			// a push can only fail due to cancellation, which is not a fault
			if perr := p.ch.Push(ctx, chunk); perr != nil {
				return nil
			}
			stats.add(len(chunk))
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return nil
			}
			return newFault(DirectionRead, OpRead, rerr)
		}
	}
	return nil
}

// ID returns the unique identifier of the pipeline
func (p *ReadPipeline) ID() string {
	return p.id.String()
}

// Next returns the next chunk. After the last chunk io.EOF is returned, also when the worker
// was cancelled or failed. Use Err or Wait to tell these cases apart
func (p *ReadPipeline) Next(ctx context.Context) ([]byte, error) {
	return p.ch.Pop(ctx)
}

// WriteTo drains the pipeline into w. It returns the worker's fault, if any, once the end of the
// stream has been reached
func (p *ReadPipeline) WriteTo(w io.Writer) (n int64, err error) {
	for {
		chunk, err := p.Next(context.Background())
		if err != nil {
			if errors.Is(err, io.EOF) {
				return n, p.Wait()
			}
			return n, err
		}

		wn, err := w.Write(chunk)
		n += int64(wn)
		if err != nil {
			return n, err
		}
	}
}

// Cancel asks the worker to stop reading at the next opportunity. It does not block and may be
// called any number of times
func (p *ReadPipeline) Cancel() {
	p.cancel()
}

// Wait blocks until the worker has stopped and returns its fault, if any
func (p *ReadPipeline) Wait() error {
	return p.rg.Wait()
}

// Err returns the worker's fault without blocking. It returns nil while the worker is running
func (p *ReadPipeline) Err() error {
	return p.rg.Err()
}

// Done returns a channel that is closed once the worker has stopped
func (p *ReadPipeline) Done() <-chan struct{} {
	return p.rg.Done()
}

// Close cancels the worker and waits for it to stop. A fault of the worker is logged but never
// returned; call Wait before Close to observe it
func (p *ReadPipeline) Close() error {
	p.closeOnce.Do(func() {
		p.Cancel()
		if err := p.Wait(); err != nil {
			logging.FromContext(p.ctx).With("error", err).Warn("discarding read pipeline fault on close")
		}
	})
	return nil
}
