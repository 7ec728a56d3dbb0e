// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"context"
	"sort"

	"github.com/tomtom215/marquee/internal/dataset"
)

// Index is a similarity index over a fixed list of titles. Row i of the
// matrix belongs to Title(i).
type Index struct {
	name    string
	titles  []string
	lookup  map[string]int
	matrix  *Matrix
	vectors []sparseVector
}

// Neighbor is one ranked result.
type Neighbor struct {
	Row   int
	Title string
	Score float64
}

// newIndex maps each title to its first row. Duplicate titles are skipped,
// along with their vectors.
func newIndex(ctx context.Context, name string, movies []dataset.Movie, vectorize func(int) sparseVector, opts BuildOptions) (*Index, error) {
	idx := &Index{
		name:   name,
		titles: make([]string, 0, len(movies)),
		lookup: make(map[string]int, len(movies)),
	}
	for i := range movies {
		title := movies[i].Title
		if _, dup := idx.lookup[title]; dup {
			continue
		}
		idx.lookup[title] = len(idx.titles)
		idx.titles = append(idx.titles, title)
		idx.vectors = append(idx.vectors, vectorize(i))
	}

	m, err := buildMatrix(ctx, idx.vectors, opts)
	if err != nil {
		return nil, err
	}
	idx.matrix = m
	return idx, nil
}

// Name identifies the strategy the index serves.
func (x *Index) Name() string { return x.name }

// Len returns the number of distinct titles.
func (x *Index) Len() int { return len(x.titles) }

// Title returns the title at row i.
func (x *Index) Title(i int) string { return x.titles[i] }

// Lookup returns the row of title. Callers must check ok before touching
// the matrix.
func (x *Index) Lookup(title string) (int, bool) {
	i, ok := x.lookup[title]
	return i, ok
}

// Contains reports whether title is indexed.
func (x *Index) Contains(title string) bool {
	_, ok := x.lookup[title]
	return ok
}

// Similarity returns sim(i, j).
func (x *Index) Similarity(i, j int) float64 {
	return x.matrix.At(i, j)
}

// IsZero reports whether row i has an all-zero feature vector.
func (x *Index) IsZero(i int) bool {
	return x.vectors[i].isZero()
}

// Neighbors ranks every row except row by descending similarity, breaking
// ties by row order, and returns the first k. It returns fewer than k when
// the index is small. Scores that collide in the float32 matrix are ordered
// by their exact cosine before row order applies.
func (x *Index) Neighbors(row, k int) []Neighbor {
	if k <= 0 || x.Len() < 2 {
		return []Neighbor{}
	}

	ranked := make([]Neighbor, 0, x.Len()-1)
	for j := 0; j < x.Len(); j++ {
		if j == row {
			continue
		}
		ranked = append(ranked, Neighbor{Row: j, Title: x.titles[j], Score: x.matrix.At(row, j)})
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	x.refineTies(row, ranked, k)

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}

// refineTies re-sorts each run of equal stored scores that reaches into the
// first k by full-precision cosine. Rows whose exact cosines are also equal
// keep row order.
func (x *Index) refineTies(row int, ranked []Neighbor, k int) {
	for start := 0; start < len(ranked) && start < k; {
		end := start + 1
		for end < len(ranked) && ranked[end].Score == ranked[start].Score {
			end++
		}
		if end-start > 1 {
			run := ranked[start:end]
			exact := make(map[int]float64, len(run))
			for _, n := range run {
				exact[n.Row] = cosine(x.vectors[row], x.vectors[n.Row])
			}
			sort.SliceStable(run, func(a, b int) bool {
				return exact[run[a].Row] > exact[run[b].Row]
			})
		}
		start = end
	}
}
