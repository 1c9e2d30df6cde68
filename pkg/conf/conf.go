// Package conf provides shared configuration handling utilities for all commands
package conf

import (
	"github.com/els0r/gostream/pkg/defaults"
	"github.com/els0r/telemetry/tracing"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ConfigFile = "config"

	loggingKey = "logging"

	LogDestination = loggingKey + ".destination"
	LogEncoding    = loggingKey + ".encoding"
	LogLevel       = loggingKey + ".level"

	pipelineKey = "pipeline"

	PipelineQueueSize = pipelineKey + ".queue_size"
	PipelineChunkSize = pipelineKey + ".chunk_size"
	PipelineRateLimit = pipelineKey + ".rate_limit"
	PipelineRateBurst = pipelineKey + ".rate_burst"

	compressionKey = "compression"

	CompressionScheme = compressionKey + ".scheme"
	CompressionLevel  = compressionKey + ".level"

	OutputFormat = "format"

	MetricsTextfile = "metrics.textfile"
)

// Global defaults for command line parameters / arguments
const (
	DefaultLogEncoding = "logfmt"
	DefaultLogLevel    = "info"
)

// RegisterFlags registers all command line flags for the configuration
func RegisterFlags(cmd *cobra.Command) error {
	pflags := cmd.PersistentFlags()

	pflags.StringP(ConfigFile, "c", "", "path to configuration file")

	tracing.RegisterFlags(pflags)

	pflags.String(LogLevel, DefaultLogLevel, "log level for logger")
	pflags.String(LogEncoding, DefaultLogEncoding, "message encoding format for logger")
	pflags.String(LogDestination, "", "logging destination file path (empty for stderr)")

	pflags.Int(PipelineQueueSize, defaults.QueueSize, "capacity of the pipeline hand-off queues")
	pflags.Int(PipelineChunkSize, defaults.ChunkSize, "size of decompressed chunks in bytes")
	pflags.Float64(PipelineRateLimit, 0, "maximum number of bytes per second handed to the compressor (0: unlimited)")
	pflags.Int(PipelineRateBurst, defaults.ChunkSize, "rate limiter burst size in bytes")

	pflags.String(CompressionScheme, "", "output compression scheme (default: derived from the output file suffix)")
	pflags.Int(CompressionLevel, 0, "output compression level (default: scheme specific)")

	pflags.String(MetricsTextfile, "", "write pipeline metrics in Prometheus text format to this file on exit")

	pflags.StringP(OutputFormat, "f", defaults.OutputFormat, "format of the summary printed to stderr (text, json)")

	return viper.BindPFlags(pflags)
}
