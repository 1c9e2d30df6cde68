package stream

import "golang.org/x/time/rate"

// DefaultQueueSize denotes the default capacity of the hand-off channel between a worker and
// the owning goroutine
const DefaultQueueSize = 10

type config struct {
	queueSize int
	name      string
	limiter   *rate.Limiter
}

func newConfig(dir Direction, opts []Option) config {
	cfg := config{
		queueSize: DefaultQueueSize,
		name:      string(dir),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a ReadPipeline or Writer
type Option func(*config)

// WithQueueSize sets the capacity of the hand-off channel. Values below one are ignored
func WithQueueSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.queueSize = n
		}
	}
}

// WithName labels the pipeline in logs and traces
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithRateLimit throttles the number of bytes per second handed to the compressor. It only
// applies to Writers
func WithRateLimit(limiter *rate.Limiter) Option {
	return func(c *config) {
		c.limiter = limiter
	}
}
