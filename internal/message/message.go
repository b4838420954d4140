// Package message defines the lifecycle messages the entity store is driven by.
//
// Msg is a closed sum type: Begin, Succeed, Fail and SaveInfo are its only variants,
// and consumers switch on the concrete type.
package message

import (
	"github.com/Borislavv/go-ash-store/internal/keys"
	"github.com/Borislavv/go-ash-store/internal/store/state"
	"github.com/Borislavv/go-ash-store/internal/timeagg"
)

// Key identifies a fetchable resource: a slot of a relation.
type Key struct {
	Relation keys.Relation
	Slot     state.Slot
}

// String returns the message type prefix, e.g. LOCATION_CLIENT_ISP_TIME_SERIES.
func (k Key) String() string {
	return k.Relation.Name() + "_" + k.Slot.String()
}

// Options are optional request parameters.
type Options struct {
	timeagg.Range
	Format   string
	Download bool
}

// Args are the bound argument values of one fetch.
type Args struct {
	keys.Tuple
	Aggregation timeagg.Aggregation
	Options     Options
}

// Header is shared by every message.
type Header struct {
	Key   Key
	Args  Args
	Token uint64
}

func (h Header) Head() Header { return h }

type Msg interface {
	Head() Header
	// Type is the discriminator observers see: {KEY}_FETCH, {KEY}_FETCH_SUCCESS, {KEY}_FETCH_FAIL, {KEY}_SAVE.
	Type() string
	sealed()
}

// Begin marks a resource as in flight.
type Begin struct {
	Header
}

// Succeed carries the transformed result of a fetch.
type Succeed struct {
	Header
	Result any
}

// Fail carries the error a fetch settled with.
type Fail struct {
	Header
	Err error
}

// SaveInfo carries partial info surfaced outside a fetch (lists, search results).
type SaveInfo struct {
	Header
	Info state.Info
}

func (m Begin) Type() string    { return m.Key.String() + "_FETCH" }
func (m Succeed) Type() string  { return m.Key.String() + "_FETCH_SUCCESS" }
func (m Fail) Type() string     { return m.Key.String() + "_FETCH_FAIL" }
func (m SaveInfo) Type() string { return m.Key.String() + "_SAVE" }

func (Begin) sealed()    {}
func (Succeed) sealed()  {}
func (Fail) sealed()     {}
func (SaveInfo) sealed() {}

// NewSaveInfo addresses the info slot of rel for tuple.
func NewSaveInfo(rel keys.Relation, tuple keys.Tuple, info state.Info) SaveInfo {
	return SaveInfo{
		Header: Header{Key: Key{Relation: rel, Slot: state.SlotInfo}, Args: Args{Tuple: tuple}},
		Info:   info,
	}
}
