// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"sort"
)

// VoteLabels name the Vote_Average quartiles from lowest to highest.
var VoteLabels = []string{"Not Popular", "Below Average", "Average", "Popular"}

// quantileEdges returns len(VoteLabels)+1 bin edges at evenly spaced
// quantiles of values, using linear interpolation between order statistics.
// values must be non-empty.
func quantileEdges(values []float64, bins int) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	edges := make([]float64, bins+1)
	for k := 0; k <= bins; k++ {
		pos := float64(k) / float64(bins) * float64(n-1)
		lo := int(pos)
		if lo >= n-1 {
			edges[k] = sorted[n-1]
			continue
		}
		frac := pos - float64(lo)
		edges[k] = sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
	}
	return edges
}

// binFor returns the bin of v given edges. Bins are right-closed, (e[k], e[k+1]],
// except the first, which also includes e[0]. Repeated edges leave the bins
// between them empty.
func binFor(v float64, edges []float64) int {
	last := len(edges) - 2
	for k := 0; k < last; k++ {
		if v <= edges[k+1] {
			return k
		}
	}
	return last
}

func assignVoteLabels(movies []Movie) {
	votes := make([]float64, len(movies))
	for i := range movies {
		votes[i] = movies[i].VoteAverage
	}
	edges := quantileEdges(votes, len(VoteLabels))
	for i := range movies {
		movies[i].VoteLabel = VoteLabels[binFor(movies[i].VoteAverage, edges)]
	}
}
