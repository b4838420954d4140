package lifecycle

import "sync/atomic"

type counters struct {
	begun     atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
	skipped   atomic.Int64
}

func (c *counters) snapshot() (begun, succeeded, failed, skipped int64) {
	return c.begun.Load(), c.succeeded.Load(), c.failed.Load(), c.skipped.Load()
}
