package api

import (
	"errors"
	"fmt"
	"github.com/Borislavv/go-ash-store/internal/keys"
	"github.com/Borislavv/go-ash-store/internal/message"
	"github.com/Borislavv/go-ash-store/internal/store/state"
	"net/url"
	"strconv"
)

var ErrInvalidArgs = errors.New("invalid request arguments")

var segments = map[keys.Kind]string{
	keys.LocationKind:   "locations",
	keys.ClientISPKind:  "clients",
	keys.TransitISPKind: "servers",
}

// Prefix is the resource path of an entity, e.g. /locations/nauscaclaremont/clients/AS7018.
func Prefix(rel keys.Relation, t keys.Tuple) (string, error) {
	// validates the tuple the same way the store keys it
	if _, err := rel.Key(t); err != nil {
		return "", err
	}

	var p string
	for _, kind := range rel.Kinds() {
		p += "/" + segments[kind] + "/" + url.PathEscape(t.ID(kind))
	}
	return p, nil
}

// Bind builds the GET request of a resource.
func Bind(key message.Key, args message.Args) (Request, error) {
	prefix, err := Prefix(key.Relation, args.Tuple)
	if err != nil {
		return Request{}, err
	}

	query := make(map[string]string, 5)
	if args.Options.Format != "" {
		query["format"] = args.Options.Format
	}
	if args.Options.Download {
		query["download"] = strconv.FormatBool(true)
	}

	switch key.Slot {
	case state.SlotInfo:
		return Request{Path: prefix + "/info", Query: query}, nil
	case state.SlotFixed:
		return Request{Path: prefix + "/metrics", Query: query}, nil
	case state.SlotTimeSeries, state.SlotHourly:
		agg := args.Aggregation
		if !agg.Valid() {
			return Request{}, fmt.Errorf("%w: %s requires an aggregation, got %q", ErrInvalidArgs, key, agg)
		}
		query["timebin"] = string(agg)
		if !args.Options.Start.IsZero() {
			query["startdate"] = agg.Format(args.Options.Start)
		}
		if !args.Options.End.IsZero() {
			query["enddate"] = agg.Format(args.Options.End)
		}

		bin := string(agg)
		if key.Slot == state.SlotHourly {
			bin += "_hour"
		}
		return Request{Path: prefix + "/time/" + bin + "/metrics", Query: query}, nil
	default:
		return Request{}, fmt.Errorf("%w: unknown slot %d", ErrInvalidArgs, key.Slot)
	}
}
