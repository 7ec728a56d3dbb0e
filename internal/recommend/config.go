// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"time"
)

// Config contains the engine configuration.
type Config struct {
	Limits   LimitsConfig   `json:"limits"`
	Cache    CacheConfig    `json:"cache"`
	Trending TrendingConfig `json:"trending"`

	// Workers is the goroutine count for each similarity matrix build.
	// 0 uses GOMAXPROCS.
	Workers int `json:"workers"`
}

// LimitsConfig bounds the result count.
type LimitsConfig struct {
	DefaultK int `json:"default_k"`
	MaxK     int `json:"max_k"`
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	Enabled    bool          `json:"enabled"`
	TTL        time.Duration `json:"ttl"`
	MaxEntries int           `json:"max_entries"`
}

// TrendingConfig configures featured picks.
type TrendingConfig struct {
	// Pool is how many of the most popular titles picks are drawn from.
	Pool int `json:"pool"`

	// Count is the default number of picks.
	Count int `json:"count"`

	// Seed seeds the sampler. 0 seeds from the clock.
	Seed int64 `json:"seed"`
}

// DefaultConfig returns the defaults used by the server.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     50,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 10000,
		},
		Trending: TrendingConfig{
			Pool:  30,
			Count: 4,
		},
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Limits.MaxK < 1 {
		return fmt.Errorf("max_k must be >= 1, got %d", c.Limits.MaxK)
	}
	if c.Limits.DefaultK < 1 || c.Limits.DefaultK > c.Limits.MaxK {
		return fmt.Errorf("default_k must be between 1 and %d, got %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %v", c.Cache.TTL)
	}
	if c.Trending.Pool < 1 || c.Trending.Count < 1 {
		return fmt.Errorf("trending pool and count must be >= 1")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
