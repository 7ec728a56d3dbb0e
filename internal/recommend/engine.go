// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/dataset"
	"github.com/tomtom215/marquee/internal/recommend/algorithms"
)

// Engine serves recommendations from prebuilt similarity indices.
type Engine struct {
	config *Config
	logger zerolog.Logger

	data     *dataset.Dataset
	genre    *algorithms.GenreIndex
	overview *algorithms.OverviewIndex
	info     map[Strategy]IndexInfo

	// records maps a title to its first occurrence in the base view.
	records map[string]*dataset.Movie

	responses *cache.Cache[*Response]

	rngMu sync.Mutex
	rng   *rand.Rand

	requestCount  atomic.Int64
	unknownTitles atomic.Int64
	emptyResults  atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
	errorCount    atomic.Int64
}

// NewEngine builds both similarity indices over ds. The two builds run
// concurrently and either failing (including ctx cancellation) fails the
// whole construction.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(ctx context.Context, ds *dataset.Dataset, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if ds == nil || len(ds.Movies) == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}

	e := &Engine{
		config:  cfg.Clone(),
		logger:  logger.With().Str("component", "recommend").Logger(),
		data:    ds,
		info:    make(map[Strategy]IndexInfo, len(Strategies)),
		records: make(map[string]*dataset.Movie, len(ds.Distinct)),
		rng:     newRand(cfg.Trending.Seed),
	}
	for i := range ds.Movies {
		if _, ok := e.records[ds.Movies[i].Title]; !ok {
			e.records[ds.Movies[i].Title] = &ds.Movies[i]
		}
	}
	if cfg.Cache.Enabled {
		e.responses = cache.New[*Response](cfg.Cache.TTL, cfg.Cache.MaxEntries)
	}

	if err := e.buildIndices(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) buildIndices(ctx context.Context) error {
	opts := algorithms.BuildOptions{Workers: e.config.Workers}
	var genreInfo, overviewInfo IndexInfo

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		idx, err := algorithms.NewGenreIndex(gctx, e.data.Movies, opts)
		if err != nil {
			return fmt.Errorf("build genre index: %w", err)
		}
		e.genre = idx
		genreInfo = describe(StrategyGenre, idx.Index, len(idx.Vocabulary()), start)
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		idx, err := algorithms.NewOverviewIndex(gctx, e.data.Movies, opts)
		if err != nil {
			return fmt.Errorf("build overview index: %w", err)
		}
		e.overview = idx
		overviewInfo = describe(StrategyOverview, idx.Index, idx.VocabularySize(), start)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	e.info[StrategyGenre] = genreInfo
	e.info[StrategyOverview] = overviewInfo
	for _, s := range Strategies {
		info := e.info[s]
		e.logger.Info().
			Str("strategy", s.String()).
			Int("titles", info.Titles).
			Int("vocabulary", info.Vocabulary).
			Int("zero_vectors", info.ZeroVectors).
			Int64("build_ms", info.BuildLatencyMS).
			Msg("Similarity index built")
	}
	return nil
}

func describe(s Strategy, idx *algorithms.Index, vocab int, start time.Time) IndexInfo {
	zeros := 0
	for i := 0; i < idx.Len(); i++ {
		if idx.IsZero(i) {
			zeros++
		}
	}
	return IndexInfo{
		Strategy:       s,
		Titles:         idx.Len(),
		Vocabulary:     vocab,
		ZeroVectors:    zeros,
		BuildLatencyMS: time.Since(start).Milliseconds(),
	}
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	//nolint:gosec // featured picks are not security sensitive
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// Recommend ranks the titles most similar to req.Title under req.Strategy.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if err := ctx.Err(); err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	req, err := e.prepareRequest(req)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	requestID := uuid.New().String()
	reqLogger := e.logger.With().
		Str("request_id", requestID).
		Str("title", req.Title).
		Str("strategy", req.Strategy.String()).
		Int("k", req.K).
		Logger()

	cacheKey := cache.GenerateKey("recommend", req)
	if cached := e.tryGetCachedResponse(cacheKey, start); cached != nil {
		reqLogger.Debug().Msg("Returning cached recommendations")
		return cached, nil
	}

	idx := e.Index(req.Strategy)
	row, ok := idx.Lookup(req.Title)
	if !ok {
		e.unknownTitles.Add(1)
		reqLogger.Debug().Msg("Unknown title")
		return nil, &UnknownTitleError{Title: req.Title, Strategy: req.Strategy}
	}

	neighbors := idx.Neighbors(row, req.K)
	items := make([]Item, 0, len(neighbors))
	for rank, n := range neighbors {
		m := e.records[n.Title]
		if m == nil || !req.Filter.Matches(m) {
			continue
		}
		items = append(items, Item{
			Rank:        rank + 1,
			Title:       m.Title,
			Genres:      m.Genres,
			VoteAverage: m.VoteAverage,
			Popularity:  m.Popularity,
			ReleaseYear: m.ReleaseYear,
			PosterURL:   m.PosterURL,
			Score:       n.Score,
		})
	}

	resp := &Response{
		Items:  items,
		Empty:  len(items) == 0,
		Ranked: len(neighbors),
		Metadata: ResponseMetadata{
			Title:     req.Title,
			Strategy:  req.Strategy,
			K:         req.K,
			LatencyMS: time.Since(start).Milliseconds(),
			Timestamp: start,
		},
	}
	if resp.Empty {
		e.emptyResults.Add(1)
	}

	if e.responses != nil {
		e.responses.Set(cacheKey, resp)
	}

	reqLogger.Debug().
		Int("ranked", resp.Ranked).
		Int("returned", len(items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("Generated recommendations")

	return resp, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	if req.Strategy == "" {
		req.Strategy = StrategyGenre
	}
	s, err := ParseStrategy(req.Strategy.String())
	if err != nil {
		return req, err
	}
	req.Strategy = s

	switch {
	case req.K < 0:
		return req, fmt.Errorf("%w: %d", ErrInvalidK, req.K)
	case req.K == 0:
		req.K = e.config.Limits.DefaultK
	case req.K > e.config.Limits.MaxK:
		req.K = e.config.Limits.MaxK
	}

	if err := req.Filter.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

func (e *Engine) tryGetCachedResponse(key string, start time.Time) *Response {
	if e.responses == nil {
		return nil
	}
	cached, ok := e.responses.Get(key)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}
	e.cacheHits.Add(1)
	if cached.Empty {
		e.emptyResults.Add(1)
	}

	resp := *cached
	resp.Items = make([]Item, len(cached.Items))
	copy(resp.Items, cached.Items)
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = start
	return &resp
}

// Index returns the similarity index for s, or nil for an unknown strategy.
func (e *Engine) Index(s Strategy) *algorithms.Index {
	switch s {
	case StrategyGenre:
		return e.genre.Index
	case StrategyOverview:
		return e.overview.Index
	default:
		return nil
	}
}

// IndexInfo describes the index for s.
func (e *Engine) IndexInfo(s Strategy) (IndexInfo, bool) {
	info, ok := e.info[s]
	return info, ok
}

// Movie returns the first record with the given title.
func (e *Engine) Movie(title string) (dataset.Movie, bool) {
	m, ok := e.records[title]
	if !ok {
		return dataset.Movie{}, false
	}
	return *m, true
}

// Dataset returns the catalog the engine was built from.
func (e *Engine) Dataset() *dataset.Dataset {
	return e.data
}

// SelectableTitles lists, sorted, the distinct titles that pass the filter
// and can be queried under every strategy.
func (e *Engine) SelectableTitles(f Filter) []string {
	titles := make([]string, 0, len(e.data.Distinct))
	for i := range e.data.Distinct {
		m := &e.data.Distinct[i]
		if !f.Matches(m) {
			continue
		}
		if !e.genre.Contains(m.Title) || !e.overview.Contains(m.Title) {
			continue
		}
		titles = append(titles, m.Title)
	}
	sort.Strings(titles)
	return titles
}

// Genres returns the sorted genre vocabulary.
func (e *Engine) Genres() []string {
	return e.data.Genres()
}

// Bounds returns the extremes of the filterable attributes.
func (e *Engine) Bounds() dataset.Bounds {
	return e.data.Bounds()
}

// Stats summarizes the movies passing f. Genre counts only include selected
// genres. When nothing passes the filter the whole catalog is summarized.
func (e *Engine) Stats(f Filter) dataset.Stats {
	movies := make([]dataset.Movie, 0, len(e.data.Movies))
	for i := range e.data.Movies {
		if f.Matches(&e.data.Movies[i]) {
			movies = append(movies, e.data.Movies[i])
		}
	}
	if len(movies) == 0 {
		return dataset.ComputeStats(e.data.Movies, nil)
	}
	return dataset.ComputeStats(movies, f.MatchesGenre)
}

// Trending returns n random picks from the most popular titles. n <= 0 uses
// the configured count.
func (e *Engine) Trending(n int) []dataset.Movie {
	if n <= 0 {
		n = e.config.Trending.Count
	}
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.data.Trending(e.config.Trending.Pool, n, e.rng)
}

// CleanupCache drops expired responses and returns how many were removed.
func (e *Engine) CleanupCache() int {
	if e.responses == nil {
		return 0
	}
	return e.responses.Cleanup()
}

// CacheStats returns response cache counters. ok is false when caching is
// disabled.
func (e *Engine) CacheStats() (cache.Stats, bool) {
	if e.responses == nil {
		return cache.Stats{}, false
	}
	return e.responses.GetStats(), true
}

// GetMetrics returns a snapshot of the engine counters.
func (e *Engine) GetMetrics() Metrics {
	m := Metrics{
		RequestCount:  e.requestCount.Load(),
		UnknownTitles: e.unknownTitles.Load(),
		EmptyResults:  e.emptyResults.Load(),
		CacheHits:     e.cacheHits.Load(),
		CacheMisses:   e.cacheMisses.Load(),
		ErrorCount:    e.errorCount.Load(),
	}
	if e.responses != nil {
		m.CacheEntries = e.responses.Len()
	}
	return m
}
