package store

import (
	"github.com/Borislavv/go-ash-store/internal/keys"
	"github.com/Borislavv/go-ash-store/internal/store/state"
	"sort"
)

// Snapshot is an immutable view of the whole store.
// Relations and records untouched by a message keep their pointers across snapshots,
// so observers detect "nothing relevant changed" by pointer comparison.
type Snapshot struct {
	version   uint64
	relations map[keys.Relation]*Relation
}

// Relation holds the records of one relation keyed by composite key.
type Relation struct {
	records map[string]*state.Record
}

var emptyRelation = &Relation{records: map[string]*state.Record{}}

func newSnapshot() *Snapshot {
	return &Snapshot{relations: make(map[keys.Relation]*Relation)}
}

// Version increases by one with every applied message.
func (s *Snapshot) Version() uint64 { return s.version }

// Relation never returns nil.
func (s *Snapshot) Relation(rel keys.Relation) *Relation {
	if r, ok := s.relations[rel]; ok {
		return r
	}
	return emptyRelation
}

// Record returns the record of tuple within rel, or nil when nothing was recorded yet.
func (s *Snapshot) Record(rel keys.Relation, tuple keys.Tuple) *state.Record {
	key, err := rel.Key(tuple)
	if err != nil {
		return nil
	}
	return s.Relation(rel).Get(key)
}

func (r *Relation) Get(key string) *state.Record { return r.records[key] }
func (r *Relation) Len() int                     { return len(r.records) }

// Keys returns composite keys in lexical order.
func (r *Relation) Keys() []string {
	out := make([]string, 0, len(r.records))
	for k := range r.records {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// with returns a copy of s where rel is replaced.
// Both with methods copy a whole map per message, which is linear in the number of records.
func (s *Snapshot) with(rel keys.Relation, r *Relation) *Snapshot {
	next := &Snapshot{version: s.version + 1, relations: make(map[keys.Relation]*Relation, len(s.relations)+1)}
	for k, v := range s.relations {
		next.relations[k] = v
	}
	next.relations[rel] = r
	return next
}

// with returns a copy of r where key is replaced.
func (r *Relation) with(key string, rec *state.Record) *Relation {
	next := &Relation{records: make(map[string]*state.Record, len(r.records)+1)}
	for k, v := range r.records {
		next.records[k] = v
	}
	next.records[key] = rec
	return next
}
