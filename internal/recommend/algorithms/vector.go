// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"math"
	"sort"
)

// sparseVector holds the non-zero entries of a feature vector, ordered by
// feature id.
type sparseVector struct {
	ids  []int32
	vals []float64
}

func (v sparseVector) isZero() bool {
	return len(v.ids) == 0
}

// newSparseVector builds a vector from a feature->weight map, dropping zero
// weights.
func newSparseVector(weights map[int32]float64) sparseVector {
	ids := make([]int32, 0, len(weights))
	for id, w := range weights {
		if w != 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	v := sparseVector{ids: ids, vals: make([]float64, len(ids))}
	for i, id := range ids {
		v.vals[i] = weights[id]
	}
	return v
}

// normalize scales v to unit L2 length in place. A zero vector stays zero.
func (v sparseVector) normalize() sparseVector {
	var sum float64
	for _, x := range v.vals {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i := range v.vals {
		v.vals[i] /= norm
	}
	return v
}

// dot merges two id-ordered vectors.
func dot(a, b sparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.ids) && j < len(b.ids) {
		switch {
		case a.ids[i] == b.ids[j]:
			sum += a.vals[i] * b.vals[j]
			i++
			j++
		case a.ids[i] < b.ids[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// cosine assumes both vectors are unit length or zero. The result is clamped
// to [0, 1]; feature weights are non-negative, so only rounding can push it
// outside.
func cosine(a, b sparseVector) float64 {
	if a.isZero() || b.isZero() {
		return 0
	}
	s := dot(a, b)
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
