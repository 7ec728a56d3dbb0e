// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package config loads Marquee's configuration.
//
// Values are layered with Koanf v2:
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file (config.yaml, or the path in CONFIG_PATH)
//  3. Environment variables, which win over everything else
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	ds, err := dataset.Load(cfg.Dataset.Path, logger)
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Dataset   DatasetConfig   `koanf:"dataset"`
	Index     IndexConfig     `koanf:"index"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatasetConfig locates the movie catalog CSV.
type DatasetConfig struct {
	// Path to the CSV file with a header row. Env: DATASET_PATH
	Path string `koanf:"path"`
}

// IndexConfig controls construction of the similarity indices.
type IndexConfig struct {
	// Workers is the number of goroutines used to fill each similarity
	// matrix. 0 uses GOMAXPROCS. Env: INDEX_WORKERS
	Workers int `koanf:"workers"`
}

// RecommendConfig holds query-time limits.
type RecommendConfig struct {
	// DefaultK is used when a request does not name a result count.
	DefaultK int `koanf:"default_k"`

	// MaxK caps the result count of a single request.
	MaxK int `koanf:"max_k"`

	// TrendingPool is how many of the most popular titles featured picks
	// are drawn from.
	TrendingPool int `koanf:"trending_pool"`

	// TrendingCount is the default number of featured picks.
	TrendingCount int `koanf:"trending_count"`

	// TrendingSeed seeds the featured-pick sampler. 0 seeds from the clock.
	TrendingSeed int64 `koanf:"trending_seed"`

	// Timeout bounds a single recommendation request.
	Timeout time.Duration `koanf:"timeout"`
}

// CacheConfig configures the response cache in front of the engine.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	TTL     time.Duration `koanf:"ttl"`

	// MaxEntries bounds the cache; the oldest entry is evicted first.
	MaxEntries int `koanf:"max_entries"`

	// CleanupInterval is how often expired entries are swept.
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// SecurityConfig holds the HTTP hardening knobs. There is no
// authentication; the API is read-only.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig mirrors logging.Config for the fields that can be configured.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsProduction reports whether the server runs with ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, an optional config file, and
// environment variables, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
