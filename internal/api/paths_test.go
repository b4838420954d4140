package api

import (
	"github.com/Borislavv/go-ash-store/internal/keys"
	"github.com/Borislavv/go-ash-store/internal/message"
	"github.com/Borislavv/go-ash-store/internal/store/state"
	"github.com/Borislavv/go-ash-store/internal/timeagg"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

var claremontATT = keys.Tuple{LocationID: "nauscaclaremont", ClientISPID: "AS7018"}

// TestPrefix follows the relation's canonical kind order.
func TestPrefix(t *testing.T) {
	p, err := Prefix(keys.LocationClientTransit, keys.Tuple{LocationID: "l", ClientISPID: "c", TransitISPID: "t"})
	require.NoError(t, err)
	require.Equal(t, "/locations/l/clients/c/servers/t", p)

	p, err = Prefix(keys.TransitISP, keys.Tuple{TransitISPID: "AS174"})
	require.NoError(t, err)
	require.Equal(t, "/servers/AS174", p)
}

// TestPrefix_EscapesIdentifiers keeps ids as single path segments.
func TestPrefix_EscapesIdentifiers(t *testing.T) {
	p, err := Prefix(keys.Location, keys.Tuple{LocationID: "a/b c"})
	require.NoError(t, err)
	require.Equal(t, "/locations/a%2Fb%20c", p)
}

// TestPrefix_MissingIdentifier surfaces the key normalizer error.
func TestPrefix_MissingIdentifier(t *testing.T) {
	_, err := Prefix(keys.LocationClient, keys.Tuple{LocationID: "l"})
	require.ErrorIs(t, err, keys.ErrMissingIdentifier)
}

// TestBind_InfoAndFixed builds the static endpoints without a time bin.
func TestBind_InfoAndFixed(t *testing.T) {
	args := message.Args{Tuple: claremontATT}

	req, err := Bind(message.Key{Relation: keys.LocationClient, Slot: state.SlotInfo}, args)
	require.NoError(t, err)
	require.Equal(t, "/locations/nauscaclaremont/clients/AS7018/info", req.Path)
	require.Empty(t, req.Query)

	req, err = Bind(message.Key{Relation: keys.LocationClient, Slot: state.SlotFixed}, args)
	require.NoError(t, err)
	require.Equal(t, "/locations/nauscaclaremont/clients/AS7018/metrics", req.Path)
}

// TestBind_TimeSeries formats dates in the aggregation's layout.
func TestBind_TimeSeries(t *testing.T) {
	args := message.Args{
		Tuple:       keys.Tuple{LocationID: "nauscaclaremont"},
		Aggregation: timeagg.Month,
		Options: message.Options{Range: timeagg.Range{
			Start: time.Date(2015, 1, 17, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2015, 6, 2, 0, 0, 0, 0, time.UTC),
		}},
	}

	req, err := Bind(message.Key{Relation: keys.Location, Slot: state.SlotTimeSeries}, args)
	require.NoError(t, err)
	require.Equal(t, "/locations/nauscaclaremont/time/month/metrics", req.Path)
	require.Equal(t, map[string]string{"timebin": "month", "startdate": "2015-01", "enddate": "2015-06"}, req.Query)
	require.Equal(t, "/locations/nauscaclaremont/time/month/metrics?enddate=2015-06&startdate=2015-01&timebin=month", req.Signature())
}

// TestBind_Hourly uses the _hour bin and passes optional params through.
func TestBind_Hourly(t *testing.T) {
	args := message.Args{
		Tuple:       keys.Tuple{ClientISPID: "AS7018"},
		Aggregation: timeagg.Day,
		Options:     message.Options{Format: "csv", Download: true},
	}

	req, err := Bind(message.Key{Relation: keys.ClientISP, Slot: state.SlotHourly}, args)
	require.NoError(t, err)
	require.Equal(t, "/clients/AS7018/time/day_hour/metrics", req.Path)
	require.Equal(t, map[string]string{"timebin": "day", "format": "csv", "download": "true"}, req.Query)
}

// TestBind_TimeSeriesNeedsAggregation rejects a time slot without a bin.
func TestBind_TimeSeriesNeedsAggregation(t *testing.T) {
	_, err := Bind(message.Key{Relation: keys.Location, Slot: state.SlotTimeSeries}, message.Args{Tuple: keys.Tuple{LocationID: "l"}})
	require.ErrorIs(t, err, ErrInvalidArgs)
}
