package config

const DefaultResponseCacheCapacity = 128

// ResponseCacheCfg configures the response cache.
//
// The cache has no notion of expiry: an entry leaves only under LRU pressure.
// Whether cached data is still acceptable is decided before the cache is reached.
type ResponseCacheCfg struct {
	// Capacity is the max number of response bodies held at once.
	Capacity int `yaml:"capacity"`
}

func (cfg *ResponseCacheCfg) Enabled() bool {
	return cfg != nil
}
