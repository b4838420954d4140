package state

import (
	"errors"
	"github.com/stretchr/testify/require"
	"testing"
)

// TestRecord_Status reads slot statuses and tolerates nil records.
func TestRecord_Status(t *testing.T) {
	var nilRec *Record
	require.Equal(t, Status{}, nilRec.Status(SlotInfo))
	require.Nil(t, nilRec.TimeSlot(SlotTimeSeries))

	rec := NewRecord()
	rec.Fixed.IsFetched = true
	rec.Time.Hourly.IsFetching = true

	require.True(t, rec.Status(SlotFixed).IsFetched)
	require.True(t, rec.Status(SlotHourly).IsFetching)
	require.Equal(t, Status{}, rec.Status(Slot(99)))
	require.Same(t, &rec.Time.Hourly, rec.TimeSlot(SlotHourly))
	require.Nil(t, rec.TimeSlot(SlotInfo))
}

// TestState_Failed reports an error status.
func TestState_Failed(t *testing.T) {
	var s State[Info]
	require.False(t, s.Failed())
	s.Err = errors.New("boom")
	require.True(t, s.Failed())
}

// TestInfo_Merge overlays partial fields without touching the receiver.
func TestInfo_Merge(t *testing.T) {
	base := Info{ID: "X", Label: "Full", Meta: map[string]any{"country": "US"}}
	merged := base.Merge(Info{Label: "Partial", Meta: map[string]any{"region": "WA"}})

	require.Equal(t, "X", merged.ID)
	require.Equal(t, "Partial", merged.Label)
	require.Equal(t, map[string]any{"country": "US", "region": "WA"}, merged.Meta)
	require.Equal(t, map[string]any{"country": "US"}, base.Meta)
}

// TestSlot_String names slots for message types.
func TestSlot_String(t *testing.T) {
	require.Equal(t, "TIME_SERIES", SlotTimeSeries.String())
	require.True(t, SlotHourly.IsTimeScoped())
	require.False(t, SlotFixed.IsTimeScoped())
	require.Len(t, Slots(), 4)
}
