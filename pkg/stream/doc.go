// Package stream decouples (de-)compression of byte streams from the goroutine consuming or
// producing the data.
//
// A ReadPipeline runs a Decompressor in a background worker and delivers the decompressed
// chunks through a bounded Channel, so a slow consumer throttles the worker instead of letting
// memory grow. A Writer does the reverse: the owner submits DeferredChunks, the worker resolves
// them strictly in submission order and feeds them to a Compressor.
//
// Both pipelines share the same rules:
//   - the end of the stream is a closed Channel (Pop returns io.EOF), never an empty chunk
//   - the end of the stream is delivered even if the worker fails or is cancelled
//   - a worker's failure is kept as its outcome and reported through Wait / Err
//   - Close always joins the worker, nothing outlives its pipeline
package stream
