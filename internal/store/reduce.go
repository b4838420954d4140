package store

import (
	"errors"
	"fmt"
	"github.com/Borislavv/go-ash-store/internal/message"
	"github.com/Borislavv/go-ash-store/internal/store/state"
)

var ErrUnexpectedResult = errors.New("unexpected result type for slot")

// outcome tells the store what a reducer did with a message.
type outcome uint8

const (
	applied outcome = iota
	ignored         // not addressed to anything the reducer owns
	discarded       // completion of a superseded request
)

// reduce applies msg to prev and returns the next snapshot (prev itself unless applied).
func reduce(prev *Snapshot, msg message.Msg) (*Snapshot, outcome, error) {
	h := msg.Head()
	key, err := h.Key.Relation.Key(h.Args.Tuple)
	if err != nil {
		return prev, ignored, err
	}

	rel := prev.Relation(h.Key.Relation)
	rec := rel.Get(key)
	if rec == nil {
		rec = state.NewRecord()
	}

	next, out := reduceRecord(rec, msg)
	if out != applied {
		return prev, out, nil
	}
	return prev.with(h.Key.Relation, rel.with(key, next)), applied, nil
}

// reduceRecord replaces exactly one slot of a copy of rec.
func reduceRecord(rec *state.Record, msg message.Msg) (*state.Record, outcome) {
	next := *rec
	var out outcome

	switch slot := msg.Head().Key.Slot; slot {
	case state.SlotInfo:
		next.Info, out = reduceInfo(rec.Info, msg)
	case state.SlotFixed:
		next.Fixed, out = reduceState(rec.Fixed, msg)
	case state.SlotTimeSeries:
		next.Time.TimeSeries, out = reduceTimeState(rec.Time.TimeSeries, msg)
	case state.SlotHourly:
		next.Time.Hourly, out = reduceTimeState(rec.Time.Hourly, msg)
	default:
		return rec, ignored
	}

	if out != applied {
		return rec, out
	}
	return &next, applied
}

// reduceState is the slot reducer shared by every slot and every relation.
func reduceState[T any](st state.State[T], msg message.Msg) (state.State[T], outcome) {
	switch m := msg.(type) {
	case message.Begin:
		st.IsFetching = true
		st.IsFetched = false
		st.Err = nil
		st.Token = m.Token
		return st, applied

	case message.Succeed:
		if m.Token != st.Token {
			return st, discarded
		}
		data, ok := m.Result.(T)
		if !ok {
			return fail(st, fmt.Errorf("%w %s: %T", ErrUnexpectedResult, m.Key, m.Result)), applied
		}
		st.Data = data
		st.HasData = true
		st.IsFetching = false
		st.IsFetched = true
		st.Err = nil
		return st, applied

	case message.Fail:
		if m.Token != st.Token {
			return st, discarded
		}
		return fail(st, m.Err), applied

	default:
		return st, ignored
	}
}

// fail keeps previous data; IsFetched is set so a persistently failing endpoint is not refetched in a loop.
func fail[T any](st state.State[T], err error) state.State[T] {
	st.IsFetching = false
	st.IsFetched = true
	st.Err = err
	return st
}

// reduceTimeState stamps the requested aggregation and window on begin.
func reduceTimeState[T any](ts state.TimeState[T], msg message.Msg) (state.TimeState[T], outcome) {
	if m, ok := msg.(message.Begin); ok {
		ts.Aggregation = m.Args.Aggregation
		ts.StartDate = m.Args.Options.Start
		ts.EndDate = m.Args.Options.End
	}

	var out outcome
	ts.State, out = reduceState(ts.State, msg)
	return ts, out
}

// reduceInfo also accepts partial info, which never clobbers a fetched record.
func reduceInfo(st state.State[state.Info], msg message.Msg) (state.State[state.Info], outcome) {
	save, ok := msg.(message.SaveInfo)
	if !ok {
		return reduceState(st, msg)
	}
	if st.IsFetched {
		return st, ignored
	}

	st.Data = st.Data.Merge(save.Info)
	st.HasData = true
	st.IsFetching = false
	st.IsFetched = true
	st.Err = nil
	return st, applied
}
