package policy

import (
	"errors"
	"github.com/Borislavv/go-ash-store/internal/store/state"
	"github.com/Borislavv/go-ash-store/internal/timeagg"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fetchedDaySeries(start, end time.Time) *state.TimeState[state.Series] {
	ts := &state.TimeState[state.Series]{Aggregation: timeagg.Day, StartDate: start, EndDate: end}
	ts.IsFetched = true
	return ts
}

// TestShouldFetch covers the three statuses.
func TestShouldFetch(t *testing.T) {
	require.True(t, ShouldFetch(state.Status{}))
	require.False(t, ShouldFetch(state.Status{IsFetching: true}))
	require.False(t, ShouldFetch(state.Status{IsFetched: true}))
	require.False(t, ShouldFetch(state.Status{IsFetched: true, Err: errors.New("failed")}))
}

// TestKeyShouldFetch fetches for absent records and unfetched slots.
func TestKeyShouldFetch(t *testing.T) {
	require.True(t, KeyShouldFetch(nil, state.SlotInfo))

	rec := state.NewRecord()
	require.True(t, KeyShouldFetch(rec, state.SlotInfo))

	rec.Info.IsFetched = true
	require.False(t, KeyShouldFetch(rec, state.SlotInfo))
	require.True(t, KeyShouldFetch(rec, state.SlotFixed))
}

// TestTimeShouldFetch_Equivalence reuses only same-bucket windows.
func TestTimeShouldFetch_Equivalence(t *testing.T) {
	ts := fetchedDaySeries(date(2015, 1, 1), date(2016, 1, 1))

	require.False(t, TimeShouldFetch(ts, timeagg.Day, timeagg.Range{Start: date(2015, 1, 1), End: date(2016, 1, 1)}))
	require.True(t, TimeShouldFetch(ts, timeagg.Day, timeagg.Range{Start: date(2015, 1, 1), End: date(2017, 1, 1)}))
}

// TestTimeShouldFetch_RoundsToBucket treats times within the same day as equal.
func TestTimeShouldFetch_RoundsToBucket(t *testing.T) {
	ts := fetchedDaySeries(date(2015, 1, 1), date(2016, 1, 1))
	noon := time.Date(2015, 1, 1, 12, 30, 0, 0, time.UTC)

	require.False(t, TimeShouldFetch(ts, timeagg.Day, timeagg.Range{Start: noon}))
	require.True(t, TimeShouldFetch(ts, timeagg.Day, timeagg.Range{Start: date(2015, 1, 2)}))
}

// TestTimeShouldFetch_MonthBucket is coarser for month aggregation.
func TestTimeShouldFetch_MonthBucket(t *testing.T) {
	ts := &state.TimeState[state.Series]{Aggregation: timeagg.Month, StartDate: date(2015, 1, 1), EndDate: date(2015, 6, 1)}
	ts.IsFetched = true

	require.False(t, TimeShouldFetch(ts, timeagg.Month, timeagg.Range{Start: date(2015, 1, 20), End: date(2015, 6, 30)}))
	require.True(t, TimeShouldFetch(ts, timeagg.Month, timeagg.Range{End: date(2015, 7, 1)}))
}

// TestTimeShouldFetch_AggregationChange always refetches.
func TestTimeShouldFetch_AggregationChange(t *testing.T) {
	ts := fetchedDaySeries(date(2015, 1, 1), date(2016, 1, 1))
	require.True(t, TimeShouldFetch(ts, timeagg.Month, timeagg.Range{Start: date(2015, 1, 1), End: date(2016, 1, 1)}))
}

// TestTimeShouldFetch_Absent fetches when nothing was stored.
func TestTimeShouldFetch_Absent(t *testing.T) {
	require.True(t, TimeShouldFetch[state.Series](nil, timeagg.Day, timeagg.Range{}))
	require.True(t, RecordTimeShouldFetch(nil, state.SlotTimeSeries, timeagg.Day, timeagg.Range{}))
	require.True(t, TimeShouldFetch(&state.TimeState[state.Series]{}, timeagg.Day, timeagg.Range{}))
}

// TestTimeShouldFetch_UnsetBoundsDeferToStatus defers to the status when no window is requested.
func TestTimeShouldFetch_UnsetBoundsDeferToStatus(t *testing.T) {
	ts := fetchedDaySeries(date(2015, 1, 1), date(2016, 1, 1))
	require.False(t, TimeShouldFetch(ts, timeagg.Day, timeagg.Range{}))

	inFlight := &state.TimeState[state.Series]{Aggregation: timeagg.Day}
	inFlight.IsFetching = true
	require.False(t, TimeShouldFetch(inFlight, timeagg.Day, timeagg.Range{}))

	inFlight.IsFetching = false
	require.True(t, TimeShouldFetch(inFlight, timeagg.Day, timeagg.Range{}))
}

// TestShouldRetry only allows settled failures.
func TestShouldRetry(t *testing.T) {
	rec := state.NewRecord()
	require.False(t, ShouldRetry(rec, state.SlotFixed))

	rec.Fixed.IsFetched = true
	rec.Fixed.Err = errors.New("502")
	require.True(t, ShouldRetry(rec, state.SlotFixed))

	rec.Fixed.IsFetching = true
	require.False(t, ShouldRetry(rec, state.SlotFixed))
	require.False(t, ShouldRetry(nil, state.SlotFixed))
}
