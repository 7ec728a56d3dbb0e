// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package algorithms builds the content-based similarity indices.
//
// Two indices exist, one per strategy:
//
//   - Genre: each movie becomes a multi-hot vector over the sorted genre
//     vocabulary.
//   - Overview: each overview becomes a TF-IDF vector (raw term counts,
//     smoothed idf, L2 normalization) over English words with stop words
//     removed.
//
// Both reduce to unit-length sparse vectors, so cosine similarity is a dot
// product. All pairwise similarities are computed once into a Matrix that
// stores the strict upper triangle; the diagonal is 1 by definition and a
// zero vector is 0 to everything else.
//
// # Thread Safety
//
// An Index is immutable once built and may be read from any number of
// goroutines without locking.
package algorithms
