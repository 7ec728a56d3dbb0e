// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/marquee/internal/dataset"
)

// GenreIndexName is the strategy name of the genre index.
const GenreIndexName = "genre"

// GenreIndex is an Index over multi-hot genre vectors.
type GenreIndex struct {
	*Index
	vocabulary []string
}

// NewGenreIndex builds the genre vocabulary from movies and the similarity
// index over it. A movie listing a genre twice counts it once; a movie with
// no genres gets a zero vector.
func NewGenreIndex(ctx context.Context, movies []dataset.Movie, opts BuildOptions) (*GenreIndex, error) {
	vocab := genreVocabulary(movies)
	ids := make(map[string]int32, len(vocab))
	for i, g := range vocab {
		ids[g] = int32(i)
	}

	idx, err := newIndex(ctx, GenreIndexName, movies, func(i int) sparseVector {
		hot := make(map[int32]float64, len(movies[i].Genres))
		for _, g := range movies[i].Genres {
			hot[ids[g]] = 1
		}
		return newSparseVector(hot).normalize()
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("build genre index: %w", err)
	}

	return &GenreIndex{Index: idx, vocabulary: vocab}, nil
}

// Vocabulary returns the sorted distinct genres, the width of the vectors.
func (g *GenreIndex) Vocabulary() []string {
	out := make([]string, len(g.vocabulary))
	copy(out, g.vocabulary)
	return out
}

func genreVocabulary(movies []dataset.Movie) []string {
	seen := make(map[string]struct{})
	titles := make(map[string]struct{}, len(movies))
	for i := range movies {
		if _, dup := titles[movies[i].Title]; dup {
			continue
		}
		titles[movies[i].Title] = struct{}{}
		for _, g := range movies[i].Genres {
			seen[g] = struct{}{}
		}
	}
	vocab := make([]string, 0, len(seen))
	for g := range seen {
		vocab = append(vocab, g)
	}
	sort.Strings(vocab)
	return vocab
}
