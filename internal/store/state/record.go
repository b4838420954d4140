package state

// Record is the bundle of resource states kept per entity or join.
type Record struct {
	Info  State[Info]
	Fixed State[Summary]
	Time  TimeRecord
}

type TimeRecord struct {
	TimeSeries TimeState[Series]
	Hourly     TimeState[Series]
}

func NewRecord() *Record { return &Record{} }

// Status returns the status of the given slot, zero for unknown slots.
func (r *Record) Status(slot Slot) Status {
	if r == nil {
		return Status{}
	}
	switch slot {
	case SlotInfo:
		return r.Info.Status
	case SlotFixed:
		return r.Fixed.Status
	case SlotTimeSeries:
		return r.Time.TimeSeries.Status
	case SlotHourly:
		return r.Time.Hourly.Status
	default:
		return Status{}
	}
}

// TimeSlot returns the time state of a time-scoped slot or nil.
func (r *Record) TimeSlot(slot Slot) *TimeState[Series] {
	if r == nil {
		return nil
	}
	switch slot {
	case SlotTimeSeries:
		return &r.Time.TimeSeries
	case SlotHourly:
		return &r.Time.Hourly
	default:
		return nil
	}
}
