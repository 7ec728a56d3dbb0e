// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"math"
	"testing"
)

func TestQuantileEdges(t *testing.T) {
	t.Parallel()

	edges := quantileEdges([]float64{5, 1, 3, 2, 4}, 4)
	want := []float64{1, 2, 3, 4, 5}
	for i := range want {
		if math.Abs(edges[i]-want[i]) > 1e-12 {
			t.Fatalf("edges = %v, want %v", edges, want)
		}
	}

	// interpolated: positions 0, 0.75, 1.5, 2.25, 3
	edges = quantileEdges([]float64{0, 10, 20, 30}, 4)
	want = []float64{0, 7.5, 15, 22.5, 30}
	for i := range want {
		if math.Abs(edges[i]-want[i]) > 1e-12 {
			t.Fatalf("edges = %v, want %v", edges, want)
		}
	}
}

func TestAssignVoteLabels(t *testing.T) {
	t.Parallel()

	votes := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	movies := make([]Movie, len(votes))
	for i, v := range votes {
		movies[i].VoteAverage = v
	}
	assignVoteLabels(movies)

	// edges: 1, 2.75, 4.5, 6.25, 8
	want := []string{
		"Not Popular", "Not Popular",
		"Below Average", "Below Average",
		"Average", "Average",
		"Popular", "Popular",
	}
	for i := range movies {
		if movies[i].VoteLabel != want[i] {
			t.Errorf("vote %v labeled %q, want %q", votes[i], movies[i].VoteLabel, want[i])
		}
	}
}

func TestBinForBoundaries(t *testing.T) {
	t.Parallel()

	edges := []float64{1, 2, 3, 4, 5}
	tests := []struct {
		v    float64
		want int
	}{
		{1, 0}, // lowest edge belongs to the first bin
		{2, 0}, // right-closed
		{2.0001, 1},
		{3, 1},
		{4, 2},
		{5, 3},
	}
	for _, tt := range tests {
		if got := binFor(tt.v, edges); got != tt.want {
			t.Errorf("binFor(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}

	// all votes equal: every edge repeats and everything lands in the first bin
	same := []Movie{{VoteAverage: 7}, {VoteAverage: 7}, {VoteAverage: 7}}
	assignVoteLabels(same)
	for _, m := range same {
		if m.VoteLabel != VoteLabels[0] {
			t.Errorf("label = %q, want %q", m.VoteLabel, VoteLabels[0])
		}
	}
}
