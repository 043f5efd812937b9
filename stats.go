package console

import "sync/atomic"

// Stats counts what the receive handler did with incoming bytes.
type Stats struct {
	// Lines is the number of lines queued for the consumer.
	Lines uint64
	// DroppedBytes were lost because every line buffer was in use.
	DroppedBytes uint64
	// TruncatedBytes did not fit in MaxLineLen and were discarded.
	TruncatedBytes uint64
}

type counters struct {
	lines     atomic.Uint64
	dropped   atomic.Uint64
	truncated atomic.Uint64
}

// Stats returns a snapshot of the receive counters. Safe from any goroutine.
func (c *Console) Stats() Stats {
	return Stats{
		Lines:          c.stats.lines.Load(),
		DroppedBytes:   c.stats.dropped.Load(),
		TruncatedBytes: c.stats.truncated.Load(),
	}
}
