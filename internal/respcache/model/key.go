package model

import (
	"github.com/zeebo/xxh3"
	"sync"
	"unsafe"
)

// Key is a request signature hash: v addresses the map, hi/lo guard against collisions.
type Key struct {
	v  uint64
	hi uint64
	lo uint64
}

func NewKey(signature string) *Key {
	return buildKey(unsafe.Slice(unsafe.StringData(signature), len(signature)))
}

func (k *Key) Value() uint64 {
	return k.v
}

func (k *Key) IsTheSame(key *Key) (same bool) {
	return k.v == key.v && k.hi == key.hi && k.lo == key.lo
}

var hasherPool = sync.Pool{New: func() any { return xxh3.New() }}

func buildKey(signature []byte) *Key {
	// acquire reusable hasher
	hasher := hasherPool.Get().(*xxh3.Hasher)
	hasher.Reset()

	_, _ = hasher.Write(signature)

	u128 := hasher.Sum128()
	k := &Key{
		v:  hasher.Sum64(),
		hi: u128.Hi,
		lo: u128.Lo,
	}

	hasherPool.Put(hasher)

	return k
}
