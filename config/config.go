package config

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"strings"
)

func (cfg *Store) AdjustConfig() {
	if cfg.API.Root == "" {
		cfg.API.Root = DefaultAPIRoot
	}
	cfg.API.Root = strings.TrimRight(cfg.API.Root, "/")
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = DefaultAPITimeout
	}

	if cfg.ResponseCache.Enabled() && cfg.ResponseCache.Capacity <= 0 {
		cfg.ResponseCache.Capacity = DefaultResponseCacheCapacity
	}

	if cfg.Fetch.Enabled() && cfg.Fetch.Timeout <= 0 {
		cfg.Fetch.Timeout = DefaultFetchTimeout
	}

	if cfg.Telemetry.Enabled() && cfg.Telemetry.Interval <= 0 {
		cfg.Telemetry.Interval = DefaultTelemetryInterval
	}
}

func LoadConfig(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	cfg := &Store{}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	cfg.AdjustConfig()

	return cfg, nil
}
