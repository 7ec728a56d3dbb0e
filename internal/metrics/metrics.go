// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package metrics declares the Prometheus collectors exported on /metrics.
//
// Collectors are registered with the default registry through promauto at
// package init, so importing the package is enough to expose them. Callers
// use the Record* and Update* helpers rather than touching the vectors.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes used as the "outcome" label.
const (
	OutcomeOK           = "ok"
	OutcomeEmpty        = "empty"
	OutcomeUnknownTitle = "unknown_title"
	OutcomeInvalid      = "invalid"
	OutcomeError        = "error"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_recommendations_total",
			Help: "Total number of recommendation queries by strategy and outcome",
		},
		[]string{"strategy", "outcome"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_recommendation_duration_seconds",
			Help:    "Time to rank, join and filter one recommendation query",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"strategy"},
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_recommendation_results",
			Help:    "Number of items returned after filtering",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"strategy"},
	)

	// Response Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_response_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_response_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_response_cache_entries",
			Help: "Current number of cached recommendation responses",
		},
	)

	CacheExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_response_cache_expired_total",
			Help: "Total number of cached responses removed by cleanup",
		},
	)

	// Dataset and Index Metrics
	DatasetMovies = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_dataset_movies",
			Help: "Number of records per dataset view",
		},
		[]string{"view"}, // "base", "exploded", "distinct"
	)

	DatasetSkippedRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_dataset_skipped_rows",
			Help: "Rows dropped while loading the dataset",
		},
	)

	IndexTitles = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_index_titles",
			Help: "Number of titles in each similarity index",
		},
		[]string{"strategy"},
	)

	IndexVocabulary = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_index_vocabulary",
			Help: "Feature vocabulary size of each similarity index",
		},
		[]string{"strategy"},
	)

	IndexZeroVectors = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_index_zero_vectors",
			Help: "Titles with an all-zero feature vector",
		},
		[]string{"strategy"},
	)

	IndexBuildDuration = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "marquee_index_build_seconds",
			Help: "Wall time spent building each similarity index",
		},
		[]string{"strategy"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records one query. results is ignored unless the
// outcome is ok or empty.
func RecordRecommendation(strategy, outcome string, results int, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(strategy, outcome).Inc()
	if outcome != OutcomeOK && outcome != OutcomeEmpty {
		return
	}
	RecommendationDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	RecommendationResults.WithLabelValues(strategy).Observe(float64(results))
}

// RecordCacheLookup records a response cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// RecordCacheCleanup records a cleanup pass.
func RecordCacheCleanup(removed, remaining int) {
	CacheExpired.Add(float64(removed))
	CacheEntries.Set(float64(remaining))
}

// UpdateDatasetGauges publishes the sizes of the loaded dataset.
func UpdateDatasetGauges(base, exploded, distinct, skipped int) {
	DatasetMovies.WithLabelValues("base").Set(float64(base))
	DatasetMovies.WithLabelValues("exploded").Set(float64(exploded))
	DatasetMovies.WithLabelValues("distinct").Set(float64(distinct))
	DatasetSkippedRows.Set(float64(skipped))
}

// UpdateIndexGauges publishes the shape of one similarity index.
func UpdateIndexGauges(strategy string, titles, vocabulary, zeroVectors int, build time.Duration) {
	IndexTitles.WithLabelValues(strategy).Set(float64(titles))
	IndexVocabulary.WithLabelValues(strategy).Set(float64(vocabulary))
	IndexZeroVectors.WithLabelValues(strategy).Set(float64(zeroVectors))
	IndexBuildDuration.WithLabelValues(strategy).Set(build.Seconds())
}

// Classifier maps a recommendation error to an outcome label. The metrics
// package does not import the engine, so callers pass their sentinel errors.
type Classifier struct {
	UnknownTitle error
	Invalid      []error
}

// Outcome returns the label for err. A nil error with no items is "empty".
func (c Classifier) Outcome(err error, empty bool) string {
	switch {
	case err == nil && empty:
		return OutcomeEmpty
	case err == nil:
		return OutcomeOK
	case c.UnknownTitle != nil && errors.Is(err, c.UnknownTitle):
		return OutcomeUnknownTitle
	}
	for _, target := range c.Invalid {
		if errors.Is(err, target) {
			return OutcomeInvalid
		}
	}
	return OutcomeError
}
