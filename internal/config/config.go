package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config represents the ngxtract configuration (ngxtract.json).
type Config struct {
	External ExternalConfig `json:"external"`
	Parser   ParserConfig   `json:"parser"`
	Cache    CacheConfig    `json:"cache"`
}

// ExternalConfig controls the external language-service engine.
type ExternalConfig struct {
	Enabled   bool `json:"enabled"`
	TimeoutMs int  `json:"timeoutMs,omitempty"` // per-query timeout, clamped to 1000..10000
}

// ParserConfig controls template binding extraction.
type ParserConfig struct {
	// BannedEvents lists event names excluded from outputs in addition
	// to the built-in framework events.
	BannedEvents []string `json:"bannedEvents,omitempty"`
}

// CacheConfig controls the parsed-source LRU cache.
type CacheConfig struct {
	Size int `json:"size,omitempty"` // number of parsed files kept
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		External: ExternalConfig{
			Enabled:   false,
			TimeoutMs: 5000,
		},
		Cache: CacheConfig{
			Size: 128,
		},
	}
}

// Load reads and parses an ngxtract config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %q: %w", path, err)
	}

	return &config, nil
}

// Validate checks the config for logical errors.
func (c *Config) Validate() error {
	if c.External.TimeoutMs < 0 {
		return fmt.Errorf("external.timeoutMs must not be negative, got %d", c.External.TimeoutMs)
	}

	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be positive, got %d", c.Cache.Size)
	}

	for _, event := range c.Parser.BannedEvents {
		if event == "" {
			return fmt.Errorf("parser.bannedEvents must not contain empty names")
		}
	}

	return nil
}
