package config

import "time"

const (
	DefaultAPIRoot    = "https://viz-api.measurementlab.net"
	DefaultAPITimeout = 30 * time.Second
)

type APICfg struct {
	// Root is prepended to every resource path.
	// Example: "https://viz-api.measurementlab.net".
	Root string `yaml:"root"`

	// Timeout bounds a single HTTP round trip.
	Timeout time.Duration `yaml:"timeout"`

	// RateLimit caps outbound requests per second. Zero or negative means unlimited.
	RateLimit int `yaml:"rate_limit"`
}

func (cfg *APICfg) IsRateLimited() bool {
	return cfg != nil && cfg.RateLimit > 0
}
