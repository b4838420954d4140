package model

import "unsafe"

// Entry is one raw (untransformed) response body.
type Entry struct {
	key     *Key
	payload []byte
}

func NewEntry(key *Key, payload []byte) *Entry {
	return &Entry{key: key, payload: payload}
}

func (e *Entry) Key() *Key {
	if e == nil {
		return nil
	}
	return e.key
}

func (e *Entry) PayloadBytes() []byte {
	if e == nil {
		return nil
	}
	return e.payload
}

func (e *Entry) Weight() int64 { return int64(unsafe.Sizeof(*e)) + int64(cap(e.payload)) }
