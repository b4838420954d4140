// Package policy decides whether a resource has to be (re)fetched.
//
// Previously fetched time-scoped data is reusable only for the same aggregation
// and a date window that rounds to the same buckets; everything else refetches.
package policy

import (
	"github.com/Borislavv/go-ash-store/internal/store/state"
	"github.com/Borislavv/go-ash-store/internal/timeagg"
)

// ShouldFetch is true when the resource is neither fetched nor in flight.
func ShouldFetch(st state.Status) bool {
	return !(st.IsFetched || st.IsFetching)
}

// KeyShouldFetch is true when the record does not exist yet or its slot should be fetched.
func KeyShouldFetch(rec *state.Record, slot state.Slot) bool {
	if rec == nil {
		return true
	}
	return ShouldFetch(rec.Status(slot))
}

// TimeShouldFetch is true when ts is absent, was requested with another aggregation,
// or a requested bound falls into another bucket than the stored one.
func TimeShouldFetch[T any](ts *state.TimeState[T], agg timeagg.Aggregation, window timeagg.Range) bool {
	if ts == nil {
		return true
	}
	if ts.Aggregation != agg {
		return true
	}
	if !window.Start.IsZero() && !agg.SameBucket(window.Start, ts.StartDate) {
		return true
	}
	if !window.End.IsZero() && !agg.SameBucket(window.End, ts.EndDate) {
		return true
	}
	return ShouldFetch(ts.Status)
}

// RecordTimeShouldFetch applies TimeShouldFetch to a slot of a possibly absent record.
func RecordTimeShouldFetch(rec *state.Record, slot state.Slot, agg timeagg.Aggregation, window timeagg.Range) bool {
	return TimeShouldFetch(rec.TimeSlot(slot), agg, window)
}

// ShouldRetry is true when the slot settled with an error and nothing is in flight.
func ShouldRetry(rec *state.Record, slot state.Slot) bool {
	st := rec.Status(slot)
	return st.Err != nil && !st.IsFetching
}
