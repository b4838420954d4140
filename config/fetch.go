package config

import "time"

const DefaultFetchTimeout = time.Minute

type FetchCfg struct {
	// Timeout bounds the whole begin->settle window of one fetch.
	// A fetch still running when it elapses settles as failed with context.DeadlineExceeded.
	Timeout time.Duration `yaml:"timeout"`
}

func (cfg *FetchCfg) Enabled() bool {
	return cfg != nil
}
