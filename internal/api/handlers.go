// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/recommend"
)

// DefaultRequestTimeout bounds a recommendation request when none is configured.
const DefaultRequestTimeout = 10 * time.Second

// emptyResultMessage accompanies a response whose filter removed everything.
const emptyResultMessage = "No recommendations match the selected filters. Try widening the year, genre, rating or popularity range."

var outcomes = metrics.Classifier{
	UnknownTitle: recommend.ErrUnknownTitle,
	Invalid:      []error{recommend.ErrInvalidStrategy, recommend.ErrInvalidK, recommend.ErrInvalidFilter},
}

// Handler serves the API endpoints from one engine.
type Handler struct {
	engine    *recommend.Engine
	timeout   time.Duration
	startTime time.Time
}

// NewHandler creates a handler. A zero timeout uses DefaultRequestTimeout.
func NewHandler(engine *recommend.Engine, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Handler{
		engine:    engine,
		timeout:   timeout,
		startTime: time.Now(),
	}
}

// HealthLive reports that the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady reports 200 once the engine is loaded and 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Similarity indices are not loaded")
		return
	}

	ds := h.engine.Dataset()
	rw.Success(map[string]interface{}{
		"ready":   true,
		"dataset": ds.Source,
		"movies":  len(ds.Distinct),
		"skipped": ds.Skipped,
		"engine":  h.engine.GetMetrics(),
		"uptime":  time.Since(h.startTime).Seconds(),
	})
}

// Movies lists the selectable titles for the filter.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	f, apiErr := decodeFilter(r.URL.Query())
	if apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	titles := h.engine.SelectableTitles(f)
	rw.List(titles, len(titles))
}

// Movie returns the record for the {title} path parameter.
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	title := chi.URLParam(r, "title")
	if unescaped, err := url.PathUnescape(title); err == nil {
		title = unescaped
	}
	m, ok := h.engine.Movie(title)
	if !ok {
		rw.Error(http.StatusNotFound, ErrCodeUnknownTitle, "Movie title not found: "+title)
		return
	}
	rw.Success(m)
}

// Genres returns the sorted genre vocabulary.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	genres := h.engine.Genres()
	NewResponseWriter(w, r).List(genres, len(genres))
}

// Bounds returns the extremes used as default filter ranges.
func (h *Handler) Bounds(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.engine.Bounds())
}

// Stats summarizes the movies passing the filter.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	f, apiErr := decodeFilter(r.URL.Query())
	if apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	rw.Success(h.engine.Stats(f))
}

// Trending returns random picks from the most popular titles.
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	p := newQueryParser(r.URL.Query())
	q := trendingQuery{N: p.int("n", 0)}
	if apiErr := checkQuery(p, &q); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}
	picks := h.engine.Trending(q.N)
	rw.List(picks, len(picks))
}

// Indexes summarizes both similarity indices.
func (h *Handler) Indexes(w http.ResponseWriter, r *http.Request) {
	infos := make([]recommend.IndexInfo, 0, len(recommend.Strategies))
	for _, s := range recommend.Strategies {
		if info, ok := h.engine.IndexInfo(s); ok {
			infos = append(infos, info)
		}
	}
	NewResponseWriter(w, r).List(infos, len(infos))
}

// recommendationsPayload adds a user-facing message to an empty result.
type recommendationsPayload struct {
	*recommend.Response
	Message string `json:"message,omitempty"`
}

// Recommendations ranks the neighbors of ?title= and applies the filter.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	start := time.Now()

	req, apiErr := decodeRecommendQuery(r.URL.Query())
	if apiErr != nil {
		metrics.RecordRecommendation(strategyLabel(r.URL.Query().Get("strategy")), metrics.OutcomeInvalid, 0, 0)
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, req)

	strategy := strategyLabel(string(req.Strategy))
	if resp != nil {
		strategy = resp.Metadata.Strategy.String()
	}
	results := 0
	if resp != nil {
		results = len(resp.Items)
		metrics.RecordCacheLookup(resp.Metadata.CacheHit)
	}
	metrics.RecordRecommendation(strategy, outcomes.Outcome(err, resp != nil && resp.Empty), results, time.Since(start))

	if err != nil {
		h.writeRecommendError(rw, r, err)
		return
	}

	payload := recommendationsPayload{Response: resp}
	if resp.Empty {
		payload.Message = emptyResultMessage
	}
	rw.List(payload, len(resp.Items))
}

func (h *Handler) writeRecommendError(rw *ResponseWriter, r *http.Request, err error) {
	var unknown *recommend.UnknownTitleError
	switch {
	case errors.As(err, &unknown):
		rw.ErrorWithDetails(http.StatusNotFound, ErrCodeUnknownTitle, "Movie title not found", map[string]string{
			"title":    unknown.Title,
			"strategy": unknown.Strategy.String(),
		})
	case errors.Is(err, recommend.ErrInvalidStrategy),
		errors.Is(err, recommend.ErrInvalidK),
		errors.Is(err, recommend.ErrInvalidFilter):
		rw.ValidationError(err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded):
		logging.Ctx(r.Context()).Warn().Dur("timeout", h.timeout).Msg("Recommendation timed out")
		rw.Error(http.StatusServiceUnavailable, ErrCodeTimeout, "Recommendation timed out")
	case errors.Is(err, context.Canceled):
		logging.Ctx(r.Context()).Debug().Msg("Recommendation canceled by client")
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Request canceled")
	default:
		rw.InternalError(err)
	}
}

// strategyLabel keeps unknown strategy strings out of metric labels.
func strategyLabel(raw string) string {
	s, err := recommend.ParseStrategy(raw)
	switch {
	case raw == "":
		return string(recommend.StrategyGenre)
	case err != nil:
		return "invalid"
	default:
		return s.String()
	}
}
