package telemetry

// sampler reads the cumulative counters of every instrumented component.
type sampler struct {
	cache CacheMetrics
	api   APIMetrics
	fetch FetchMetrics
	store StoreMetrics
}

// snapshot holds cumulative counters (monotonic).
type snapshot struct {
	cacheHits         uint64
	cacheMisses       uint64
	cacheEvictedItems uint64
	cacheEvictedBytes uint64

	apiRequests uint64
	apiFailures uint64
	apiShared   uint64

	fetchBegun     uint64
	fetchSucceeded uint64
	fetchFailed    uint64
	fetchSkipped   uint64

	storeApplied   uint64
	storeDiscarded uint64
	storeRejected  uint64
}

func (s sampler) snapshot() snapshot {
	hits, misses, evictedItems, evictedBytes := s.cache.Metrics()
	requests, failures, shared := s.api.Metrics()
	begun, succeeded, failed, skipped := s.fetch.Metrics()
	applied, discarded, rejected := s.store.Metrics()

	return snapshot{
		cacheHits:         uint64(max(hits, 0)),
		cacheMisses:       uint64(max(misses, 0)),
		cacheEvictedItems: uint64(max(evictedItems, 0)),
		cacheEvictedBytes: uint64(max(evictedBytes, 0)),

		apiRequests: uint64(max(requests, 0)),
		apiFailures: uint64(max(failures, 0)),
		apiShared:   uint64(max(shared, 0)),

		fetchBegun:     uint64(max(begun, 0)),
		fetchSucceeded: uint64(max(succeeded, 0)),
		fetchFailed:    uint64(max(failed, 0)),
		fetchSkipped:   uint64(max(skipped, 0)),

		storeApplied:   uint64(max(applied, 0)),
		storeDiscarded: uint64(max(discarded, 0)),
		storeRejected:  uint64(max(rejected, 0)),
	}
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur snapshot) snapshot {
	return snapshot{
		cacheHits:         delta(prev.cacheHits, cur.cacheHits),
		cacheMisses:       delta(prev.cacheMisses, cur.cacheMisses),
		cacheEvictedItems: delta(prev.cacheEvictedItems, cur.cacheEvictedItems),
		cacheEvictedBytes: delta(prev.cacheEvictedBytes, cur.cacheEvictedBytes),

		apiRequests: delta(prev.apiRequests, cur.apiRequests),
		apiFailures: delta(prev.apiFailures, cur.apiFailures),
		apiShared:   delta(prev.apiShared, cur.apiShared),

		fetchBegun:     delta(prev.fetchBegun, cur.fetchBegun),
		fetchSucceeded: delta(prev.fetchSucceeded, cur.fetchSucceeded),
		fetchFailed:    delta(prev.fetchFailed, cur.fetchFailed),
		fetchSkipped:   delta(prev.fetchSkipped, cur.fetchSkipped),

		storeApplied:   delta(prev.storeApplied, cur.storeApplied),
		storeDiscarded: delta(prev.storeDiscarded, cur.storeDiscarded),
		storeRejected:  delta(prev.storeRejected, cur.storeRejected),
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
