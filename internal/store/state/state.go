// Package state holds the immutable shapes the entity store is made of.
// Values are replaced, never mutated in place, once they are published in a snapshot.
package state

import (
	"github.com/Borislavv/go-ash-store/internal/timeagg"
	"time"
)

// Status is the payload-independent part of a resource state.
type Status struct {
	IsFetching bool
	IsFetched  bool
	Err        error
}

// State tracks one fetchable resource.
// IsFetching and IsFetched are never both true.
type State[T any] struct {
	Data    T
	HasData bool
	Status
	// Token identifies the in-flight (or last settled) request; completions with another token are stale.
	Token uint64
}

func (s *State[T]) Failed() bool { return s.Err != nil }

// TimeState is a State scoped to the aggregation and window it was requested with.
// The stamps are written on begin so that in-flight parameters are visible to staleness checks.
type TimeState[T any] struct {
	State[T]
	Aggregation timeagg.Aggregation
	StartDate   time.Time
	EndDate     time.Time
}
