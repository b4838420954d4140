package api

import (
	"encoding/json"
	"fmt"
	"github.com/Borislavv/go-ash-store/internal/message"
	"github.com/Borislavv/go-ash-store/internal/store/state"
	"github.com/Borislavv/go-ash-store/internal/timeagg"
	"github.com/spf13/cast"
	"sort"
)

// Transform decodes a raw body into the slot payload stored for key.
// It runs on cache hits as well as on fresh responses.
type Transform func(key message.Key, args message.Args, body []byte) (any, error)

// labelFields are tried in order to find a human readable name in info meta.
var labelFields = []string{"label", "name", "location_name", "client_asn_name", "server_asn_name"}

// TransformFor returns the decoder of a slot.
func TransformFor(slot state.Slot) Transform {
	switch slot {
	case state.SlotInfo:
		return DecodeInfo
	case state.SlotFixed:
		return DecodeSummary
	default:
		return DecodeSeries
	}
}

type infoBody struct {
	Meta map[string]any `json:"meta"`
}

// DecodeInfo keys the info by the entity's composite key.
func DecodeInfo(key message.Key, args message.Args, body []byte) (any, error) {
	var b infoBody
	if err := json.Unmarshal(body, &b); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	id, err := key.Relation.Key(args.Tuple)
	if err != nil {
		return nil, err
	}

	info := state.Info{ID: id, Meta: b.Meta}
	for _, f := range labelFields {
		if s, ok := b.Meta[f].(string); ok && s != "" {
			info.Label = s
			break
		}
	}
	return info, nil
}

type summaryBody struct {
	Meta map[string]any            `json:"meta"`
	Data map[string]map[string]any `json:"data"`
}

func DecodeSummary(key message.Key, _ message.Args, body []byte) (any, error) {
	var b summaryBody
	if err := json.Unmarshal(body, &b); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}

	summary := state.Summary{Meta: b.Meta, Windows: make(map[string]map[string]float64, len(b.Data))}
	for window, metrics := range b.Data {
		summary.Windows[window] = numeric(metrics)
	}
	return summary, nil
}

type seriesBody struct {
	Meta    map[string]any   `json:"meta"`
	Results []map[string]any `json:"results"`
}

// DecodeSeries parses rows into points ordered by (date, hour) and computes
// the min/max of every metric.
func DecodeSeries(key message.Key, args message.Args, body []byte) (any, error) {
	var b seriesBody
	if err := json.Unmarshal(body, &b); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}

	agg := args.Aggregation
	if !agg.Valid() {
		agg = timeagg.Day
	}

	series := state.Series{
		Meta:    b.Meta,
		Points:  make([]state.Point, 0, len(b.Results)),
		Extents: make(map[string]state.Extent),
	}
	for i, row := range b.Results {
		var p state.Point
		if raw, ok := row["date"]; ok {
			s, err := cast.ToStringE(raw)
			if err != nil {
				return nil, fmt.Errorf("decode %s: row %d: date: %w", key, i, err)
			}
			if p.Date, err = agg.Parse(s); err != nil {
				return nil, fmt.Errorf("decode %s: row %d: %w", key, i, err)
			}
		}
		if raw, ok := row["hour"]; ok {
			h, err := cast.ToIntE(raw)
			if err != nil {
				return nil, fmt.Errorf("decode %s: row %d: hour: %w", key, i, err)
			}
			p.Hour = h
		}
		p.Values = numeric(row)
		delete(p.Values, "date")
		delete(p.Values, "hour")

		for metric, v := range p.Values {
			ext, seen := series.Extents[metric]
			if !seen {
				series.Extents[metric] = state.Extent{Min: v, Max: v}
				continue
			}
			ext.Min = min(ext.Min, v)
			ext.Max = max(ext.Max, v)
			series.Extents[metric] = ext
		}
		series.Points = append(series.Points, p)
	}

	sort.SliceStable(series.Points, func(i, j int) bool {
		a, b := series.Points[i], series.Points[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Hour < b.Hour
	})
	return series, nil
}

// numeric keeps the fields that read as numbers; dates, names and nulls are dropped.
func numeric(fields map[string]any) map[string]float64 {
	out := make(map[string]float64, len(fields))
	for name, raw := range fields {
		switch raw.(type) {
		case nil, bool, map[string]any, []any:
			continue
		}
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			continue
		}
		out[name] = v
	}
	return out
}
