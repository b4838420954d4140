package testhelp

import (
	"github.com/Borislavv/go-ash-store/config"
	"time"
)

// Cfg points the store at root (usually an httptest server) with a small cache
// and a short fetch timeout.
func Cfg(root string) *config.Store {
	c := &config.Store{
		API: config.APICfg{
			Root:    root,
			Timeout: 5 * time.Second,
		},
		ResponseCache: &config.ResponseCacheCfg{
			Capacity: 16,
		},
		Fetch: &config.FetchCfg{
			Timeout: 5 * time.Second,
		},
	}
	c.AdjustConfig()
	return c
}

func NoCacheCfg(root string) *config.Store {
	c := Cfg(root)
	c.ResponseCache = nil
	return c
}
