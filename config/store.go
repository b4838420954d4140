package config

// Store groups configuration of all store subsystems.
// Optional components are disabled by leaving them nil.
type Store struct {
	// API configures the upstream metrics API the fetchers talk to.
	API APICfg `yaml:"api"`

	// ResponseCache configures the bounded LRU of raw response bodies.
	// If nil, responses are never memoized and every fetch hits the network.
	ResponseCache *ResponseCacheCfg `yaml:"response_cache"`

	// Fetch configures the fetch lifecycle (timeouts of in-flight requests).
	// If nil, fetches are bounded only by the caller's context.
	Fetch *FetchCfg `yaml:"fetch"`

	// Telemetry configures periodic counters logging.
	// If nil, nothing is logged periodically.
	Telemetry *TelemetryCfg `yaml:"telemetry"`
}
