package stream

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/els0r/telemetry/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Compressor compresses chunks into an output it owns
type Compressor interface {

	// Write compresses a chunk
	Write(chunk []byte) error

	// Close flushes pending data and closes the output. It must be idempotent
	Close() error
}

// Writer hands deferred chunks to a background goroutine which resolves them in submission
// order and feeds them to a Compressor. Faults of the worker are kept and reported by Submit,
// Wait and Close
type Writer struct {
	id  uuid.UUID
	ctx context.Context

	ch *Channel[DeferredChunk]
	rg RunGroup

	finishOnce sync.Once
	finished   atomic.Bool

	closeOnce sync.Once
	closeErr  error
}

// NewWriter starts a worker writing to comp. The writer owns comp and closes it as the last step
// of the worker. The write side cannot be cancelled: cancelling ctx does not affect the worker,
// only Finish / Close end it, after all submitted chunks have been written
func NewWriter(ctx context.Context, comp Compressor, opts ...Option) *Writer {
	cfg := newConfig(DirectionWrite, opts)

	w := &Writer{
		id: uuid.New(),
		ch: NewChannel[DeferredChunk](cfg.queueSize),
	}
	w.ctx = logging.WithFields(ctx,
		slog.String("pipeline", w.id.String()),
		slog.String("name", cfg.name),
		slog.String("direction", string(DirectionWrite)),
	)

	w.rg.Run(context.WithoutCancel(w.ctx), func(ctx context.Context) error {
		return w.run(ctx, comp, cfg.name, cfg.limiter)
	})

	return w
}

func (w *Writer) run(ctx context.Context, comp Compressor, name string, limiter *rate.Limiter) (err error) {
	ctx, span, stats := startWorker(ctx, DirectionWrite, name, w.id.String())
	defer stats.finish(ctx, span, &err)

	// releases producers blocked on a worker that stopped early, also if comp.Close panics
	defer w.ch.Close()

	defer func() {
		if cerr := comp.Close(); cerr != nil && err == nil {
			err = newFault(DirectionWrite, OpClose, cerr)
		}
	}()

	for {
		deferred, perr := w.ch.Pop(ctx)
		if perr != nil {
			if errors.Is(perr, io.EOF) {
				return nil
			}
			return perr
		}

		chunk, rerr := deferred.Resolve(ctx)
		if rerr != nil {
			return newFault(DirectionWrite, OpResolve, rerr)
		}
		if limiter != nil {
			if lerr := waitN(ctx, limiter, len(chunk)); lerr != nil {
				return newFault(DirectionWrite, OpLimit, lerr)
			}
		}
		if werr := comp.Write(chunk); werr != nil {
			return newFault(DirectionWrite, OpWrite, werr)
		}
		stats.add(len(chunk))
	}
}

// waitN waits for n tokens, in steps no larger than the limiter's burst
func waitN(ctx context.Context, limiter *rate.Limiter, n int) error {
	if limiter.Limit() == rate.Inf {
		return nil
	}
	burst := limiter.Burst()
	if burst < 1 {
		return limiter.WaitN(ctx, n)
	}
	for n > 0 {
		step := min(n, burst)
		if err := limiter.WaitN(ctx, step); err != nil {
			return err
		}
		n -= step
	}
	return nil
}

// ID returns the unique identifier of the pipeline
func (w *Writer) ID() string {
	return w.id.String()
}

// Submit enqueues a deferred chunk, blocking while the queue is full. It returns ErrClosed after
// Finish and the worker's fault if the worker has already stopped because of one
func (w *Writer) Submit(ctx context.Context, chunk DeferredChunk) error {
	if w.finished.Load() {
		return ErrClosed
	}

	err := w.ch.Push(ctx, chunk)
	if errors.Is(err, ErrClosed) && !w.finished.Load() {
		// the worker closed the queue on its way out
		<-w.rg.Done()
		if ferr := w.rg.Err(); ferr != nil {
			return ferr
		}
	}
	return err
}

// Write submits a copy of p. It implements io.Writer
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.Submit(context.Background(), Ready(bytes.Clone(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Finish marks the end of the stream. Chunks submitted before are still written. It is
// idempotent
func (w *Writer) Finish() {
	w.finishOnce.Do(func() {
		w.finished.Store(true)
		w.ch.Close()
	})
}

// Wait blocks until the worker has stopped and returns its fault, if any. Without a prior call to
// Finish it only returns once the worker faulted
func (w *Writer) Wait() error {
	return w.rg.Wait()
}

// Err returns the worker's fault without blocking. It returns nil while the worker is running
func (w *Writer) Err() error {
	return w.rg.Err()
}

// Done returns a channel that is closed once the worker has stopped
func (w *Writer) Done() <-chan struct{} {
	return w.rg.Done()
}

// Close finishes the stream, waits for all submitted chunks to be written and the compressor
// to be closed, and returns the worker's fault, if any. Subsequent calls return the same result
func (w *Writer) Close() error {
	w.closeOnce.Do(func() {
		w.Finish()
		w.closeErr = w.Wait()
		if w.closeErr != nil {
			logging.FromContext(w.ctx).With("error", w.closeErr).Debug("write pipeline closed with a fault")
		}
	})
	return w.closeErr
}
