// Package config holds the configuration of the gostream command
package config

import (
	"errors"
	"fmt"

	"github.com/els0r/gostream/pkg/compression/schemes"
	"github.com/els0r/gostream/pkg/defaults"
	"github.com/els0r/gostream/pkg/stream"
	"golang.org/x/time/rate"
)

var (
	errorInvalidQueueSize = errors.New("pipeline queue size must be at least 1")
	errorInvalidChunkSize = errors.New("pipeline chunk size must be at least 1")
	errorInvalidRateLimit = errors.New("pipeline rate limit must not be negative")
	errorInvalidRateBurst = errors.New("pipeline rate burst must be at least 1 if a rate limit is set")
	errorInvalidFormat    = errors.New("output format must be one of: text, json")
)

// Config stores the settings of the gostream command
type Config struct {
	Pipeline    PipelineConfig    `mapstructure:"pipeline" yaml:"pipeline"`
	Compression CompressionConfig `mapstructure:"compression" yaml:"compression"`
	Metrics     MetricsConfig     `mapstructure:"metrics" yaml:"metrics,omitempty"`
	Format      string            `mapstructure:"format" yaml:"format"`
}

// PipelineConfig governs the read and write pipelines
type PipelineConfig struct {
	QueueSize int `mapstructure:"queue_size" yaml:"queue_size"`
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`

	// RateLimit is the maximum number of bytes per second handed to the compressor (0: unlimited)
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit,omitempty"`
	RateBurst int     `mapstructure:"rate_burst" yaml:"rate_burst,omitempty"`
}

// CompressionConfig governs the compression of written files
type CompressionConfig struct {
	Scheme string `mapstructure:"scheme" yaml:"scheme,omitempty"`

	// Level is only applied if set
	Level *int `mapstructure:"-" yaml:"level,omitempty"`
}

// MetricsConfig governs the export of pipeline metrics
type MetricsConfig struct {

	// Textfile is written once the command completes, e.g. for the node exporter's textfile collector
	Textfile string `mapstructure:"textfile" yaml:"textfile,omitempty"`
}

// New returns a configuration populated with defaults
func New() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			QueueSize: defaults.QueueSize,
			ChunkSize: defaults.ChunkSize,
			RateBurst: defaults.ChunkSize,
		},
		Format: defaults.OutputFormat,
	}
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.Pipeline.QueueSize < 1 {
		return errorInvalidQueueSize
	}
	if c.Pipeline.ChunkSize < 1 {
		return errorInvalidChunkSize
	}
	if c.Pipeline.RateLimit < 0 {
		return errorInvalidRateLimit
	}
	if c.Pipeline.RateLimit > 0 && c.Pipeline.RateBurst < 1 {
		return errorInvalidRateBurst
	}
	if c.Compression.Scheme != "" {
		if _, err := schemes.Parse(c.Compression.Scheme); err != nil {
			return fmt.Errorf("invalid compression configuration: %w", err)
		}
	}
	switch c.Format {
	case "text", "json":
	default:
		return errorInvalidFormat
	}
	return nil
}

// PipelineOptions translates the configuration into pipeline options
func (c *Config) PipelineOptions() []stream.Option {
	opts := []stream.Option{stream.WithQueueSize(c.Pipeline.QueueSize)}
	if c.Pipeline.RateLimit > 0 {
		opts = append(opts, stream.WithRateLimit(rate.NewLimiter(rate.Limit(c.Pipeline.RateLimit), c.Pipeline.RateBurst)))
	}
	return opts
}
