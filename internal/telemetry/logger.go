// Package telemetry periodically logs per-interval deltas of the store counters.
package telemetry

import (
	"context"
	"github.com/Borislavv/go-ash-store/config"
	"github.com/Borislavv/go-ash-store/internal/shared/bytes"
	"github.com/rs/zerolog"
	"time"
)

type CacheMetrics interface {
	Metrics() (hits, misses, evictedItems, evictedBytes int64)
	Len() int64
	Mem() int64
}

type APIMetrics interface {
	Metrics() (requests, failures, shared int64)
}

type FetchMetrics interface {
	Metrics() (begun, succeeded, failed, skipped int64)
}

type StoreMetrics interface {
	Metrics() (applied, discarded, rejected int64)
}

type Logger interface {
	Interval() time.Duration
	Close() error
}

type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.TelemetryCfg
	logger   zerolog.Logger
	cache    CacheMetrics
	sampler  sampler
	interval time.Duration
}

func New(
	ctx context.Context,
	cfg *config.TelemetryCfg,
	logger zerolog.Logger,
	cache CacheMetrics,
	api APIMetrics,
	fetch FetchMetrics,
	store StoreMetrics,
) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	l := &Logs{
		ctx:     ctx,
		cancel:  cancel,
		cfg:     cfg,
		logger:  logger,
		cache:   cache,
		sampler: sampler{cache: cache, api: api, fetch: fetch, store: store},
	}
	if cfg.Enabled() {
		l.interval = cfg.Interval
	}
	return l.run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

func (l *Logs) Close() error {
	l.cancel()
	return nil
}

func (l *Logs) run() *Logs {
	if l.cfg.Enabled() && l.interval > 0 {
		go l.loop(l.sampler.snapshot())
	}
	return l
}

func (l *Logs) loop(prev snapshot) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.ctx.Done():
			return
		case <-ticker.C:
			cur := l.sampler.snapshot()
			l.report(deltaSnapshot(prev, cur))
			prev = cur
		}
	}
}

func (l *Logs) report(d snapshot) {
	interval := l.interval.String()

	l.logger.Info().
		Str("interval", interval).
		Uint64("hits", d.cacheHits).
		Uint64("misses", d.cacheMisses).
		Uint64("evicted_items", d.cacheEvictedItems).
		Str("evicted_bytes", bytes.FmtMem(d.cacheEvictedBytes)).
		Int64("entries", l.cache.Len()).
		Str("size", bytes.FmtMem(uint64(max(l.cache.Mem(), 0)))).
		Msg("response_cache")

	l.logger.Info().
		Str("interval", interval).
		Uint64("requests", d.apiRequests).
		Uint64("failures", d.apiFailures).
		Uint64("shared", d.apiShared).
		Msg("api")

	l.logger.Info().
		Str("interval", interval).
		Uint64("begun", d.fetchBegun).
		Uint64("succeeded", d.fetchSucceeded).
		Uint64("failed", d.fetchFailed).
		Uint64("skipped", d.fetchSkipped).
		Msg("fetch")

	if d.storeDiscarded > 0 || d.storeRejected > 0 || d.storeApplied > 0 {
		l.logger.Info().
			Str("interval", interval).
			Uint64("applied", d.storeApplied).
			Uint64("discarded", d.storeDiscarded).
			Uint64("rejected", d.storeRejected).
			Msg("store")
	}
}
