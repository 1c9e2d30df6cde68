// Package defaults holds the default settings shared by gostream's commands
package defaults

import "github.com/els0r/gostream/pkg/compression"

const (

	// QueueSize denotes the default capacity of the pipeline hand-off channels
	QueueSize = 10

	// ChunkSize denotes the default size of decompressed chunks
	ChunkSize = compression.DefaultChunkSize

	// OutputFormat denotes the default format of command summaries
	OutputFormat = "text"
)
