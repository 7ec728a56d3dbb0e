// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/recommend/algorithms"
)

// Strategy selects the similarity index a query runs against.
type Strategy string

const (
	// StrategyGenre ranks by cosine similarity of multi-hot genre vectors.
	StrategyGenre Strategy = algorithms.GenreIndexName

	// StrategyOverview ranks by cosine similarity of TF-IDF overview vectors.
	StrategyOverview Strategy = algorithms.OverviewIndexName
)

// Strategies lists the valid strategies.
var Strategies = []Strategy{StrategyGenre, StrategyOverview}

// ParseStrategy accepts a strategy name case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyGenre:
		return StrategyGenre, nil
	case StrategyOverview:
		return StrategyOverview, nil
	default:
		return "", fmt.Errorf("%w: %q (want genre or overview)", ErrInvalidStrategy, s)
	}
}

// String returns the strategy name.
func (s Strategy) String() string {
	return string(s)
}

// Request is a single recommendation query.
type Request struct {
	// Title of the query movie. Matched exactly.
	Title string `json:"title"`

	// Strategy picks the similarity index.
	Strategy Strategy `json:"strategy"`

	// K is the number of neighbors to rank. 0 means the configured default;
	// values above the configured maximum are clamped.
	K int `json:"k"`

	// Filter is applied to the ranked neighbors.
	Filter Filter `json:"filter"`
}

// Item is one recommended movie.
type Item struct {
	// Rank is the 1-based position in the similarity ranking, before filtering.
	Rank int `json:"rank"`

	Title       string   `json:"title"`
	Genres      []string `json:"genres"`
	VoteAverage float64  `json:"vote_average"`
	Popularity  float64  `json:"popularity"`
	ReleaseYear *int     `json:"release_year"`
	PosterURL   string   `json:"poster_url,omitempty"`

	// Score is the cosine similarity to the query movie, in [0, 1].
	Score float64 `json:"score"`
}

// Response is the outcome of Recommend.
type Response struct {
	// Items are in similarity-rank order.
	Items []Item `json:"items"`

	// Empty is true when ranking succeeded but the filter removed every
	// candidate.
	Empty bool `json:"empty"`

	// Ranked is how many neighbors were ranked before filtering.
	Ranked int `json:"ranked"`

	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	Title     string    `json:"title"`
	Strategy  Strategy  `json:"strategy"`
	K         int       `json:"k"`
	LatencyMS int64     `json:"latency_ms"`
	CacheHit  bool      `json:"cache_hit"`
	Timestamp time.Time `json:"timestamp"`
}

// Metrics are engine counters since startup.
type Metrics struct {
	RequestCount  int64 `json:"request_count"`
	UnknownTitles int64 `json:"unknown_titles"`
	EmptyResults  int64 `json:"empty_results"`
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
	ErrorCount    int64 `json:"error_count"`
	CacheEntries  int   `json:"cache_entries"`
}

// IndexInfo describes one similarity index.
type IndexInfo struct {
	Strategy       Strategy `json:"strategy"`
	Titles         int      `json:"titles"`
	Vocabulary     int      `json:"vocabulary"`
	ZeroVectors    int      `json:"zero_vectors"`
	BuildLatencyMS int64    `json:"build_latency_ms"`
}
