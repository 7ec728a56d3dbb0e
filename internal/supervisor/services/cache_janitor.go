// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/metrics"
)

// DefaultCleanupInterval is used when the janitor is given no interval.
const DefaultCleanupInterval = time.Minute

// CacheCleaner is satisfied by *recommend.Engine.
type CacheCleaner interface {
	// CleanupCache drops expired responses and returns how many went.
	CleanupCache() int

	// CacheStats reports ok=false when caching is disabled.
	CacheStats() (cache.Stats, bool)
}

// CacheJanitor periodically expires cached recommendation responses. The
// cache also drops stale entries on lookup; the janitor bounds memory held
// by entries nobody asks for again.
type CacheJanitor struct {
	cache    CacheCleaner
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitor creates a janitor running every interval.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCacheJanitor(cache CacheCleaner, interval time.Duration, logger zerolog.Logger) *CacheJanitor {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &CacheJanitor{
		cache:    cache,
		interval: interval,
		logger:   logger.With().Str("service", "cache-janitor").Logger(),
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service.
func (j *CacheJanitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Debug().Dur("interval", j.interval).Msg("Cache janitor running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *CacheJanitor) sweep() {
	removed := j.cache.CleanupCache()
	stats, ok := j.cache.CacheStats()
	if !ok {
		return
	}
	remaining := stats.Keys
	metrics.RecordCacheCleanup(removed, remaining)
	if removed > 0 {
		j.logger.Debug().Int("removed", removed).Int("remaining", remaining).Msg("Expired cached responses")
	}
}

// String implements fmt.Stringer.
func (j *CacheJanitor) String() string {
	return j.name
}
