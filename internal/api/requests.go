// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/validation"
)

// filterQuery holds the filter parameters shared by several endpoints.
type filterQuery struct {
	YearMin *int     `query:"year_min" validate:"omitempty,gte=1800,lte=2200"`
	YearMax *int     `query:"year_max" validate:"omitempty,gte=1800,lte=2200"`
	Genres  []string `query:"genres" validate:"omitempty,max=50,dive,notblank,max=100"`
	VoteMin *float64 `query:"vote_min" validate:"omitempty,gte=0,lte=10"`
	VoteMax *float64 `query:"vote_max" validate:"omitempty,gte=0,lte=10"`
	PopMin  *float64 `query:"pop_min" validate:"omitempty,gte=0"`
	PopMax  *float64 `query:"pop_max" validate:"omitempty,gte=0"`
}

type recommendQuery struct {
	Title    string `query:"title" validate:"required,notblank,max=500"`
	Strategy string `query:"strategy" validate:"omitempty,strategy"`
	K        int    `query:"k" validate:"min=0,max=1000"`

	Filter filterQuery `query:"filter"`
}

type trendingQuery struct {
	N int `query:"n" validate:"min=0,max=100"`
}

// paramError reports a parameter that could not be parsed at all.
type paramError struct {
	Field string `json:"field"`
	Want  string `json:"want"`
	Value string `json:"value"`
}

func (e *paramError) Error() string {
	return fmt.Sprintf("%s must be %s", e.Field, e.Want)
}

// queryParser accumulates the first parse failure.
type queryParser struct {
	values url.Values
	err    *paramError
}

func newQueryParser(values url.Values) *queryParser {
	return &queryParser{values: values}
}

func (p *queryParser) str(key string) string {
	return strings.TrimSpace(p.values.Get(key))
}

func (p *queryParser) intPtr(key string) *int {
	raw := p.str(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, "an integer", raw)
		return nil
	}
	return &v
}

func (p *queryParser) int(key string, def int) int {
	if v := p.intPtr(key); v != nil {
		return *v
	}
	return def
}

func (p *queryParser) floatPtr(key string) *float64 {
	raw := p.str(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(key, "a number", raw)
		return nil
	}
	return &v
}

// list accepts both ?genres=a,b and ?genres=a&genres=b. Blank entries from
// trailing commas are dropped.
func (p *queryParser) list(key string) []string {
	var out []string
	for _, raw := range p.values[key] {
		out = append(out, parseCommaSeparated(raw)...)
	}
	return out
}

func (p *queryParser) fail(key, want, raw string) {
	if p.err == nil {
		p.err = &paramError{Field: key, Want: want, Value: raw}
	}
}

func (p *queryParser) filter() filterQuery {
	return filterQuery{
		YearMin: p.intPtr("year_min"),
		YearMax: p.intPtr("year_max"),
		Genres:  p.list("genres"),
		VoteMin: p.floatPtr("vote_min"),
		VoteMax: p.floatPtr("vote_max"),
		PopMin:  p.floatPtr("pop_min"),
		PopMax:  p.floatPtr("pop_max"),
	}
}

func (q *filterQuery) toFilter() recommend.Filter {
	return recommend.Filter{
		YearMin:       q.YearMin,
		YearMax:       q.YearMax,
		Genres:        q.Genres,
		VoteMin:       q.VoteMin,
		VoteMax:       q.VoteMax,
		PopularityMin: q.PopMin,
		PopularityMax: q.PopMax,
	}
}

// decodeFilter parses and validates the filter parameters of values.
func decodeFilter(values url.Values) (recommend.Filter, *APIError) {
	p := newQueryParser(values)
	q := p.filter()
	if apiErr := checkQuery(p, &q); apiErr != nil {
		return recommend.Filter{}, apiErr
	}
	f := q.toFilter()
	if err := f.Validate(); err != nil {
		return recommend.Filter{}, &APIError{Code: ErrCodeValidation, Message: err.Error()}
	}
	return f, nil
}

func decodeRecommendQuery(values url.Values) (recommend.Request, *APIError) {
	p := newQueryParser(values)
	q := recommendQuery{
		Title:    strings.TrimSpace(values.Get("title")),
		Strategy: p.str("strategy"),
		K:        p.int("k", 0),
		Filter:   p.filter(),
	}
	if apiErr := checkQuery(p, &q); apiErr != nil {
		return recommend.Request{}, apiErr
	}
	f := q.Filter.toFilter()
	if err := f.Validate(); err != nil {
		return recommend.Request{}, &APIError{Code: ErrCodeValidation, Message: err.Error()}
	}

	req := recommend.Request{Title: q.Title, K: q.K, Filter: f}
	if q.Strategy != "" {
		s, err := recommend.ParseStrategy(q.Strategy)
		if err != nil {
			return recommend.Request{}, &APIError{Code: ErrCodeValidation, Message: err.Error()}
		}
		req.Strategy = s
	}
	return req, nil
}

func checkQuery(p *queryParser, v interface{}) *APIError {
	if p.err != nil {
		return &APIError{Code: ErrCodeValidation, Message: p.err.Error(), Details: p.err}
	}
	if verr := validation.ValidateStruct(v); verr != nil {
		apiErr := verr.ToAPIError()
		return &APIError{Code: apiErr.Code, Message: apiErr.Message, Details: apiErr.Details}
	}
	return nil
}

// parseCommaSeparated parses a comma-separated string into a slice
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
