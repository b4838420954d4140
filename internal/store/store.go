// Package store is the normalized entity store: one generic relation store per
// keys.Relation, each holding per-composite-key records of resource states.
//
// All mutation goes through Dispatch/DispatchIf, which apply messages strictly
// one at a time and publish a new immutable Snapshot. Reads are lock-free.
package store

import (
	"github.com/Borislavv/go-ash-store/internal/message"
	"github.com/Borislavv/go-ash-store/internal/store/state"
	"github.com/rs/zerolog"
	"sync"
	"sync/atomic"
)

// Observer is called after each applied message, in application order, while dispatch is held.
// It must not dispatch synchronously.
type Observer func(prev, next *Snapshot, msg message.Msg)

type Store struct {
	mu        sync.Mutex
	snapshot  atomic.Pointer[Snapshot]
	tokens    atomic.Uint64
	logger    zerolog.Logger
	counters  *counters
	observers map[uint64]Observer
	observeID uint64
}

func New(logger zerolog.Logger) *Store {
	s := &Store{
		logger:    logger,
		counters:  &counters{},
		observers: make(map[uint64]Observer),
	}
	s.snapshot.Store(newSnapshot())
	return s
}

// Snapshot returns the current immutable state.
func (s *Store) Snapshot() *Snapshot { return s.snapshot.Load() }

// NextToken returns a fresh monotonic request token.
func (s *Store) NextToken() uint64 { return s.tokens.Add(1) }

// Dispatch applies msg. It reports whether the store changed.
func (s *Store) Dispatch(msg message.Msg) bool {
	return s.DispatchIf(msg, nil)
}

// DispatchIf evaluates pred against the record msg addresses and applies msg only if it holds.
// Evaluation and application are atomic with respect to other dispatches.
// A nil pred always holds.
func (s *Store) DispatchIf(msg message.Msg, pred func(rec *state.Record) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snapshot.Load()
	if pred != nil {
		h := msg.Head()
		if !pred(prev.Record(h.Key.Relation, h.Args.Tuple)) {
			return false
		}
	}

	next, out, err := reduce(prev, msg)
	switch {
	case err != nil:
		s.counters.rejected.Add(1)
		s.logger.Warn().Err(err).Str("type", msg.Type()).Msg("message rejected")
		return false
	case out == discarded:
		s.counters.discarded.Add(1)
		s.logger.Debug().
			Str("type", msg.Type()).
			Uint64("token", msg.Head().Token).
			Msg("stale completion discarded")
		return false
	case out == ignored:
		return false
	}

	s.snapshot.Store(next)
	s.counters.applied.Add(1)
	for _, observe := range s.observers {
		observe(prev, next, msg)
	}
	return true
}

// Subscribe registers an observer and returns its unsubscribe func.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	s.observeID++
	id := s.observeID
	s.observers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) Metrics() (applied, discarded, rejected int64) {
	return s.counters.snapshot()
}
