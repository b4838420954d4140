package lifecycle

import (
	"github.com/Borislavv/go-ash-store/internal/api"
	"github.com/Borislavv/go-ash-store/internal/keys"
	"github.com/Borislavv/go-ash-store/internal/message"
	"github.com/Borislavv/go-ash-store/internal/policy"
	"github.com/Borislavv/go-ash-store/internal/store/state"
)

// NewResource describes a slot of rel bound to the metrics API.
// Time-scoped slots are reused only for the same aggregation and date buckets.
func NewResource(rel keys.Relation, slot state.Slot) Resource {
	res := Resource{
		Key:       message.Key{Relation: rel, Slot: slot},
		Bind:      api.Bind,
		Transform: api.TransformFor(slot),
	}
	if slot.IsTimeScoped() {
		res.ShouldFetch = func(rec *state.Record, args message.Args) bool {
			return policy.RecordTimeShouldFetch(rec, slot, args.Aggregation, args.Options.Range)
		}
	} else {
		res.ShouldFetch = func(rec *state.Record, _ message.Args) bool {
			return policy.KeyShouldFetch(rec, slot)
		}
	}
	return res
}

// Resources returns a resource for every relation and slot.
func Resources() []Resource {
	out := make([]Resource, 0, len(keys.Relations())*len(state.Slots()))
	for _, rel := range keys.Relations() {
		for _, slot := range state.Slots() {
			out = append(out, NewResource(rel, slot))
		}
	}
	return out
}
