package respcache

// NoOpCache is used when the response cache is disabled.
// Every Get misses and Put stores nothing.
type NoOpCache struct{}

func (NoOpCache) Get(string) ([]byte, bool) { return nil, false }
func (NoOpCache) Put(string, []byte)        {}
func (NoOpCache) Load(_ string, fetch func() ([]byte, error)) ([]byte, error) {
	return fetch()
}
func (NoOpCache) Del(string) bool { return false }
func (NoOpCache) Clear()          {}
func (NoOpCache) Len() int64      { return 0 }
func (NoOpCache) Mem() int64      { return 0 }
func (NoOpCache) Metrics() (hits, misses, evictedItems, evictedBytes int64) {
	return 0, 0, 0, 0
}
