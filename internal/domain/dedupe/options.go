// Package dedupe defines the interface for frame idempotency tracking.
package dedupe

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize sets the maximum number of frame IDs to keep in memory.
// maxSize > 0 enables bounded mode with FIFO eviction; maxSize <= 0 keeps
// every id for the lifetime of the process.
func WithMaxSize(maxSize int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = maxSize
	}
}
