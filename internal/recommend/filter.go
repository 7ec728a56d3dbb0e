// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/marquee/internal/dataset"
)

// AllGenres is the genre selection that matches every movie.
const AllGenres = "All"

// Filter restricts results by attribute. A nil bound is unconstrained and
// all bounds are inclusive.
type Filter struct {
	YearMin *int `json:"year_min,omitempty"`
	YearMax *int `json:"year_max,omitempty"`

	// Genres matches movies having at least one listed genre. Empty, or any
	// list containing AllGenres, matches every movie including those with
	// no genres.
	Genres []string `json:"genres,omitempty"`

	VoteMin       *float64 `json:"vote_min,omitempty"`
	VoteMax       *float64 `json:"vote_max,omitempty"`
	PopularityMin *float64 `json:"popularity_min,omitempty"`
	PopularityMax *float64 `json:"popularity_max,omitempty"`
}

// IsZero reports whether the filter constrains nothing.
func (f *Filter) IsZero() bool {
	return f.YearMin == nil && f.YearMax == nil &&
		f.allGenres() &&
		f.VoteMin == nil && f.VoteMax == nil &&
		f.PopularityMin == nil && f.PopularityMax == nil
}

// Validate rejects inverted ranges.
func (f *Filter) Validate() error {
	if f.YearMin != nil && f.YearMax != nil && *f.YearMin > *f.YearMax {
		return fmt.Errorf("%w: year range %d..%d", ErrInvalidFilter, *f.YearMin, *f.YearMax)
	}
	if f.VoteMin != nil && f.VoteMax != nil && *f.VoteMin > *f.VoteMax {
		return fmt.Errorf("%w: vote range %g..%g", ErrInvalidFilter, *f.VoteMin, *f.VoteMax)
	}
	if f.PopularityMin != nil && f.PopularityMax != nil && *f.PopularityMin > *f.PopularityMax {
		return fmt.Errorf("%w: popularity range %g..%g", ErrInvalidFilter, *f.PopularityMin, *f.PopularityMax)
	}
	return nil
}

// Matches reports whether m passes every active predicate. A movie without
// a release year fails any active year bound.
func (f *Filter) Matches(m *dataset.Movie) bool {
	if f.YearMin != nil || f.YearMax != nil {
		if !m.HasYear() {
			return false
		}
		if f.YearMin != nil && *m.ReleaseYear < *f.YearMin {
			return false
		}
		if f.YearMax != nil && *m.ReleaseYear > *f.YearMax {
			return false
		}
	}
	if !inRange(m.VoteAverage, f.VoteMin, f.VoteMax) {
		return false
	}
	if !inRange(m.Popularity, f.PopularityMin, f.PopularityMax) {
		return false
	}
	if f.allGenres() {
		return true
	}
	for _, g := range m.Genres {
		if f.MatchesGenre(g) {
			return true
		}
	}
	return false
}

// MatchesGenre reports whether a single genre is selected.
func (f *Filter) MatchesGenre(genre string) bool {
	if f.allGenres() {
		return true
	}
	for _, g := range f.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

func (f *Filter) allGenres() bool {
	if len(f.Genres) == 0 {
		return true
	}
	for _, g := range f.Genres {
		if strings.EqualFold(g, AllGenres) {
			return true
		}
	}
	return false
}

func inRange(v float64, lo, hi *float64) bool {
	if lo != nil && v < *lo {
		return false
	}
	if hi != nil && v > *hi {
		return false
	}
	return true
}
