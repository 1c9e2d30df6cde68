package stream

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/els0r/telemetry/logging"
	"github.com/els0r/telemetry/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// workerStats keeps track of what a worker moved through its channel
type workerStats struct {
	dir    Direction
	chunks int
	bytes  int
	start  time.Time
}

func startWorker(ctx context.Context, dir Direction, name, id string) (context.Context, trace.Span, *workerStats) {
	ctx, span := tracing.Start(ctx, "stream.worker",
		trace.WithAttributes(
			attribute.String("pipeline.id", id),
			attribute.String("pipeline.name", name),
			attribute.String("pipeline.direction", string(dir)),
		),
	)
	logging.FromContext(ctx).Debug("worker started")

	return ctx, span, &workerStats{dir: dir, start: time.Now()}
}

func (s *workerStats) add(n int) {
	s.chunks++
	s.bytes += n

	chunksTotal.WithLabelValues(string(s.dir)).Inc()
	bytesTotal.WithLabelValues(string(s.dir)).Add(float64(n))
}

// finish must be deferred directly by the worker function: it turns a panic into the worker's
// outcome and records it
func (s *workerStats) finish(ctx context.Context, span trace.Span, errp *error) {
	if r := recover(); r != nil {
		*errp = &PanicError{Value: r, Stack: debug.Stack()}
	}
	defer span.End()

	elapsed := time.Since(s.start)
	workerDuration.WithLabelValues(string(s.dir)).Observe(elapsed.Seconds())

	logger := logging.FromContext(ctx).With(
		"chunks", s.chunks,
		"bytes", s.bytes,
		"elapsed", elapsed.Round(time.Millisecond).String(),
	)
	if err := *errp; err != nil {
		faultsTotal.WithLabelValues(string(s.dir)).Inc()

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		logger.With("error", err).Error("worker terminated with a fault")
		return
	}
	logger.Debug("worker finished")
}
