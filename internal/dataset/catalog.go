// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"math/rand/v2"
	"sort"
)

// Bounds are the extremes of the filterable attributes. Clients use them as
// the default filter ranges.
type Bounds struct {
	YearMin       *int    `json:"year_min"`
	YearMax       *int    `json:"year_max"`
	VoteMin       float64 `json:"vote_min"`
	VoteMax       float64 `json:"vote_max"`
	PopularityMin float64 `json:"popularity_min"`
	PopularityMax float64 `json:"popularity_max"`
}

// GenreCount pairs a genre with the number of exploded rows carrying it.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// Stats summarizes a slice of the catalog.
type Stats struct {
	TotalMovies  int          `json:"total_movies"`
	UniqueGenres int          `json:"unique_genres"`
	TopGenres    []GenreCount `json:"top_genres"`
	YearMin      *int         `json:"year_min"`
	YearMax      *int         `json:"year_max"`
}

// topGenreCount is how many genres Stats reports.
const topGenreCount = 3

// Genres returns the sorted genre vocabulary.
func (d *Dataset) Genres() []string {
	seen := make(map[string]struct{})
	for _, row := range d.Exploded {
		seen[row.Genre] = struct{}{}
	}
	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}

// Bounds computes the attribute extremes over the base view.
func (d *Dataset) Bounds() Bounds {
	var b Bounds
	for i := range d.Movies {
		m := &d.Movies[i]
		if i == 0 {
			b.VoteMin, b.VoteMax = m.VoteAverage, m.VoteAverage
			b.PopularityMin, b.PopularityMax = m.Popularity, m.Popularity
		}
		b.VoteMin = min(b.VoteMin, m.VoteAverage)
		b.VoteMax = max(b.VoteMax, m.VoteAverage)
		b.PopularityMin = min(b.PopularityMin, m.Popularity)
		b.PopularityMax = max(b.PopularityMax, m.Popularity)
		b.YearMin, b.YearMax = widenYears(b.YearMin, b.YearMax, m.ReleaseYear)
	}
	return b
}

func widenYears(lo, hi, y *int) (*int, *int) {
	if y == nil {
		return lo, hi
	}
	if lo == nil || *y < *lo {
		v := *y
		lo = &v
	}
	if hi == nil || *y > *hi {
		v := *y
		hi = &v
	}
	return lo, hi
}

// ComputeStats summarizes movies. Genres are counted once per record, and
// only those accepted by keepGenre (nil keeps all). Ties in the top genres
// keep first-seen order.
func ComputeStats(movies []Movie, keepGenre func(string) bool) Stats {
	titles := make(map[string]struct{}, len(movies))
	counts := make(map[string]int)
	var order []string
	var st Stats

	for i := range movies {
		m := &movies[i]
		titles[m.Title] = struct{}{}
		st.YearMin, st.YearMax = widenYears(st.YearMin, st.YearMax, m.ReleaseYear)
		for _, g := range m.Genres {
			if keepGenre != nil && !keepGenre(g) {
				continue
			}
			if _, ok := counts[g]; !ok {
				order = append(order, g)
			}
			counts[g]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	st.TotalMovies = len(titles)
	st.UniqueGenres = len(order)
	st.TopGenres = make([]GenreCount, 0, topGenreCount)
	for _, g := range order[:min(topGenreCount, len(order))] {
		st.TopGenres = append(st.TopGenres, GenreCount{Genre: g, Count: counts[g]})
	}
	return st
}

// Trending draws n titles at random from the pool most popular distinct
// titles. A duplicated title is represented by its most popular record.
// It returns fewer than n when the catalog is smaller.
func (d *Dataset) Trending(pool, n int, rng *rand.Rand) []Movie {
	byPopularity := make([]Movie, len(d.Movies))
	copy(byPopularity, d.Movies)
	sort.SliceStable(byPopularity, func(i, j int) bool {
		return byPopularity[i].Popularity > byPopularity[j].Popularity
	})

	seen := make(map[string]struct{}, len(d.Distinct))
	ranked := make([]Movie, 0, len(d.Distinct))
	for i := range byPopularity {
		if _, dup := seen[byPopularity[i].Title]; dup {
			continue
		}
		seen[byPopularity[i].Title] = struct{}{}
		ranked = append(ranked, byPopularity[i])
	}
	if pool < len(ranked) {
		ranked = ranked[:pool]
	}
	n = min(n, len(ranked))

	picks := make([]Movie, 0, n)
	for _, i := range rng.Perm(len(ranked))[:n] {
		picks = append(picks, ranked[i])
	}
	return picks
}
