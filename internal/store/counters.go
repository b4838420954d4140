package store

import "sync/atomic"

type counters struct {
	applied   atomic.Int64
	discarded atomic.Int64
	rejected  atomic.Int64
}

func (c *counters) snapshot() (applied, discarded, rejected int64) {
	return c.applied.Load(), c.discarded.Load(), c.rejected.Load()
}
