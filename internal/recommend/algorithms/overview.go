// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/marquee/internal/dataset"
)

// OverviewIndexName is the strategy name of the overview index.
const OverviewIndexName = "overview"

// OverviewIndex is an Index over TF-IDF vectors of movie overviews.
type OverviewIndex struct {
	*Index
	terms []string
	idf   []float64
}

// NewOverviewIndex fits TF-IDF over the overviews of the distinct titles in
// movies and builds the similarity index. Weights are raw term count times
// ln((1+N)/(1+df)) + 1, then each document is L2 normalized. An empty
// overview, or one made only of stop words, gives a zero vector.
func NewOverviewIndex(ctx context.Context, movies []dataset.Movie, opts BuildOptions) (*OverviewIndex, error) {
	docs := make([][]string, len(movies))
	first := make(map[string]struct{}, len(movies))
	for i := range movies {
		if _, dup := first[movies[i].Title]; dup {
			continue
		}
		first[movies[i].Title] = struct{}{}
		docs[i] = Tokenize(movies[i].Overview)
	}

	terms, ids, idf := fitIDF(docs, len(first))

	idx, err := newIndex(ctx, OverviewIndexName, movies, func(i int) sparseVector {
		weights := make(map[int32]float64, len(docs[i]))
		for _, tok := range docs[i] {
			weights[ids[tok]]++
		}
		for id, tf := range weights {
			weights[id] = tf * idf[id]
		}
		return newSparseVector(weights).normalize()
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("build overview index: %w", err)
	}

	return &OverviewIndex{Index: idx, terms: terms, idf: idf}, nil
}

// fitIDF assigns term ids in sorted order and computes smoothed idf over n
// documents. nil entries of docs are skipped.
func fitIDF(docs [][]string, n int) ([]string, map[string]int32, []float64) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	ids := make(map[string]int32, len(terms))
	idf := make([]float64, len(terms))
	for i, t := range terms {
		ids[t] = int32(i)
		idf[i] = math.Log(float64(1+n)/float64(1+df[t])) + 1
	}
	return terms, ids, idf
}

// VocabularySize returns the number of distinct terms.
func (o *OverviewIndex) VocabularySize() int {
	return len(o.terms)
}

// termIDF returns the inverse document frequency of term, and false when
// the term never occurs in the corpus.
func (o *OverviewIndex) termIDF(term string) (float64, bool) {
	i := sort.SearchStrings(o.terms, term)
	if i < len(o.terms) && o.terms[i] == term {
		return o.idf[i], true
	}
	return 0, false
}
