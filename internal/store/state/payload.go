package state

import "time"

// Info is static metadata of an entity or join.
type Info struct {
	ID    string         `json:"id"`
	Label string         `json:"label,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// Merge returns a copy of i overlaid with the non-empty parts of partial.
func (i Info) Merge(partial Info) Info {
	out := Info{ID: i.ID, Label: i.Label}
	if partial.ID != "" {
		out.ID = partial.ID
	}
	if partial.Label != "" {
		out.Label = partial.Label
	}
	if len(i.Meta) > 0 || len(partial.Meta) > 0 {
		out.Meta = make(map[string]any, len(i.Meta)+len(partial.Meta))
		for k, v := range i.Meta {
			out.Meta[k] = v
		}
		for k, v := range partial.Meta {
			out.Meta[k] = v
		}
	}
	return out
}

// Summary is a precomputed fixed-window summary: window name -> metric -> value.
type Summary struct {
	Meta    map[string]any                `json:"meta,omitempty"`
	Windows map[string]map[string]float64 `json:"windows"`
}

type Point struct {
	Date   time.Time          `json:"date"`
	Hour   int                `json:"hour,omitempty"`
	Values map[string]float64 `json:"values"`
}

type Extent struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Series is a time series or an hour-of-day series, ordered by (Date, Hour).
type Series struct {
	Meta    map[string]any    `json:"meta,omitempty"`
	Points  []Point           `json:"points"`
	Extents map[string]Extent `json:"extents,omitempty"`
}
