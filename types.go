package ashstore

import (
	"github.com/Borislavv/go-ash-store/internal/api"
	"github.com/Borislavv/go-ash-store/internal/keys"
	"github.com/Borislavv/go-ash-store/internal/lifecycle"
	"github.com/Borislavv/go-ash-store/internal/message"
	"github.com/Borislavv/go-ash-store/internal/store"
	"github.com/Borislavv/go-ash-store/internal/store/state"
	"github.com/Borislavv/go-ash-store/internal/timeagg"
	"net/http"
)

type (
	Relation = keys.Relation
	Tuple    = keys.Tuple
	Slot     = state.Slot
	Record   = state.Record
	Info     = state.Info
	Summary  = state.Summary
	Series   = state.Series

	Aggregation = timeagg.Aggregation
	Range       = timeagg.Range

	Key     = message.Key
	Args    = message.Args
	Options = message.Options
	Msg     = message.Msg
	Begin   = message.Begin
	Succeed = message.Succeed
	Fail    = message.Fail

	Snapshot = store.Snapshot
	Observer = store.Observer
	Fetcher  = lifecycle.Fetcher

	Option = api.Option
)

const (
	Location              = keys.Location
	ClientISP             = keys.ClientISP
	TransitISP            = keys.TransitISP
	LocationClient        = keys.LocationClient
	ClientTransit         = keys.ClientTransit
	LocationClientTransit = keys.LocationClientTransit

	SlotInfo       = state.SlotInfo
	SlotFixed      = state.SlotFixed
	SlotTimeSeries = state.SlotTimeSeries
	SlotHourly     = state.SlotHourly

	Day   = timeagg.Day
	Month = timeagg.Month
	Year  = timeagg.Year
)

func WithHTTPClient(h *http.Client) Option { return api.WithHTTPClient(h) }

func ParseAggregation(s string) (Aggregation, error) { return timeagg.ParseAggregation(s) }
