// Package respcache memoizes raw response bodies by request signature.
//
// The cache is bounded by item count and evicts the least recently used entry,
// where both Get hits and Put refresh recency. It has no notion of expiry:
// callers decide whether cached data is still acceptable before reaching it.
package respcache

import (
	"fmt"
	"github.com/Borislavv/go-ash-store/config"
	"github.com/Borislavv/go-ash-store/internal/respcache/model"
	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/rs/zerolog"
	"sync"
	"sync/atomic"
)

type Cacher interface {
	Get(signature string) (payload []byte, ok bool)
	Put(signature string, payload []byte)
	Load(signature string, fetch func() ([]byte, error)) ([]byte, error)
	Metrics() (hits, misses, evictedItems, evictedBytes int64)
	Del(signature string) (ok bool)
	Clear()
	Len() int64
	Mem() int64
}

// Cache is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	cfg      *config.ResponseCacheCfg
	lru      *simplelru.LRU[uint64, *model.Entry]
	logger   zerolog.Logger
	counters *counters
	mem      atomic.Int64
	freed    int64 // bytes released by the last lru mutation, guarded by mu
}

// New returns a NoOpCache when cfg is disabled.
func New(cfg *config.ResponseCacheCfg, logger zerolog.Logger) (Cacher, error) {
	if !cfg.Enabled() {
		return NoOpCache{}, nil
	}
	return NewCache(cfg, logger)
}

func NewCache(cfg *config.ResponseCacheCfg, logger zerolog.Logger) (*Cache, error) {
	c := &Cache{cfg: cfg, logger: logger, counters: newCounters()}
	l, err := simplelru.NewLRU[uint64, *model.Entry](cfg.Capacity, c.onRemove)
	if err != nil {
		return nil, fmt.Errorf("response cache with capacity %d: %w", cfg.Capacity, err)
	}
	c.lru = l
	return c, nil
}

func (c *Cache) Get(signature string) ([]byte, bool) {
	k := model.NewKey(signature)

	c.mu.Lock()
	entry, ok := c.lru.Peek(k.Value())
	ok = ok && entry.Key().IsTheSame(k)
	if ok {
		// recency is refreshed only for the matching signature
		c.lru.Get(k.Value())
	}
	c.mu.Unlock()

	if ok {
		c.counters.hits.Add(1)
		return entry.PayloadBytes(), true
	}
	// miss or hash collision
	c.counters.misses.Add(1)
	return nil, false
}

func (c *Cache) Put(signature string, payload []byte) {
	k := model.NewKey(signature)
	entry := model.NewEntry(k, payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, found := c.lru.Peek(k.Value()); found {
		// refresh of the same key (or a collision victim): replaced in place, no eviction
		c.mem.Add(-old.Weight())
	}
	c.freed = 0
	if evicted := c.lru.Add(k.Value(), entry); evicted {
		c.counters.evictedItems.Add(1)
		c.counters.evictedBytes.Add(c.freed)
		c.logger.Debug().
			Int64("freed_bytes", c.freed).
			Int("capacity", c.cfg.Capacity).
			Msg("response cache evicted least recently used entry")
	}
	c.mem.Add(entry.Weight())
}

// Load is a read-through Get: on a miss fetch is called and its successful result stored.
// Errors are returned as is and never cached.
func (c *Cache) Load(signature string, fetch func() ([]byte, error)) ([]byte, error) {
	if payload, ok := c.Get(signature); ok {
		return payload, nil
	}
	payload, err := fetch()
	if err != nil {
		return nil, err
	}
	c.Put(signature, payload)
	return payload, nil
}

func (c *Cache) Del(signature string) bool {
	k := model.NewKey(signature)

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.lru.Peek(k.Value()); ok && entry.Key().IsTheSame(k) {
		return c.lru.Remove(k.Value())
	}
	return false
}

func (c *Cache) Clear() {
	c.mu.Lock()
	c.lru.Purge()
	c.mu.Unlock()
}

func (c *Cache) Len() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(c.lru.Len())
}

func (c *Cache) Mem() int64 { return c.mem.Load() }

func (c *Cache) Metrics() (hits, misses, evictedItems, evictedBytes int64) {
	return c.counters.snapshot()
}

// onRemove is called by the lru under c.mu.
func (c *Cache) onRemove(_ uint64, entry *model.Entry) {
	w := entry.Weight()
	c.mem.Add(-w)
	c.freed += w
}
