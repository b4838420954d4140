package state

type Slot uint8

const (
	SlotInfo Slot = iota
	SlotFixed
	SlotTimeSeries
	SlotHourly
)

func Slots() []Slot { return []Slot{SlotInfo, SlotFixed, SlotTimeSeries, SlotHourly} }

func (s Slot) String() string {
	switch s {
	case SlotInfo:
		return "INFO"
	case SlotFixed:
		return "FIXED"
	case SlotTimeSeries:
		return "TIME_SERIES"
	case SlotHourly:
		return "HOURLY"
	default:
		return "UNKNOWN"
	}
}

// IsTimeScoped reports whether the slot carries aggregation/date stamps.
func (s Slot) IsTimeScoped() bool { return s == SlotTimeSeries || s == SlotHourly }
