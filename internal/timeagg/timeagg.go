// Package timeagg describes the time aggregations (bins) metrics are requested in
// and how dates are formatted, parsed and rounded for each of them.
package timeagg

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownAggregation = errors.New("unknown time aggregation")

type Aggregation string

const (
	Day   Aggregation = "day"
	Month Aggregation = "month"
	Year  Aggregation = "year"
)

// Range is an optional [Start, End] window. A zero bound means "not requested".
type Range struct {
	Start time.Time
	End   time.Time
}

func ParseAggregation(s string) (Aggregation, error) {
	switch a := Aggregation(s); a {
	case Day, Month, Year:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAggregation, s)
	}
}

func (a Aggregation) Valid() bool {
	switch a {
	case Day, Month, Year:
		return true
	default:
		return false
	}
}

func (a Aggregation) String() string { return string(a) }

// Layout returns the date layout used on the wire: YYYY-MM-DD, YYYY-MM or YYYY.
func (a Aggregation) Layout() string {
	switch a {
	case Month:
		return "2006-01"
	case Year:
		return "2006"
	default:
		return time.DateOnly
	}
}

func (a Aggregation) Format(t time.Time) string {
	return t.UTC().Format(a.Layout())
}

// Parse accepts the aggregation's own layout and falls back to a full date,
// since some endpoints return day-precision dates for coarser bins.
func (a Aggregation) Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(a.Layout(), s, time.UTC)
	if err == nil {
		return t, nil
	}
	if t, derr := time.ParseInLocation(time.DateOnly, s, time.UTC); derr == nil {
		return a.Truncate(t), nil
	}
	return time.Time{}, fmt.Errorf("parse %s date %q: %w", a, s, err)
}

// Truncate rounds t down to the start of its bucket (UTC).
func (a Aggregation) Truncate(t time.Time) time.Time {
	t = t.UTC()
	switch a {
	case Month:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case Year:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// SameBucket reports whether a and b round to the same bucket.
// A zero time only shares a bucket with another zero time.
func (a Aggregation) SameBucket(x, y time.Time) bool {
	if x.IsZero() || y.IsZero() {
		return x.IsZero() && y.IsZero()
	}
	return a.Truncate(x).Equal(a.Truncate(y))
}
