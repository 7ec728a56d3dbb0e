// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// Matrix is a symmetric similarity matrix with a unit diagonal. Only the
// strict upper triangle is stored, in float32, so At(i, j) and At(j, i)
// read the same cell. Cosines closer than float32 precision read back equal;
// Index.Neighbors resolves such ties from the feature vectors.
type Matrix struct {
	n     int
	upper []float32
}

// Len returns the matrix dimension.
func (m *Matrix) Len() int {
	return m.n
}

// offset returns the position of (i, j) in upper. Requires i < j.
func (m *Matrix) offset(i, j int) int {
	return i*m.n - i*(i+1)/2 + (j - i - 1)
}

// At returns sim(i, j). It panics on out-of-range indices like a slice would.
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || j < 0 || i >= m.n || j >= m.n {
		panic(fmt.Sprintf("algorithms: matrix index (%d, %d) out of range [0, %d)", i, j, m.n))
	}
	switch {
	case i == j:
		return 1
	case i > j:
		i, j = j, i
	}
	return float64(m.upper[m.offset(i, j)])
}

// BuildOptions tunes matrix construction.
type BuildOptions struct {
	// Workers is the number of goroutines filling rows. 0 uses GOMAXPROCS.
	Workers int
}

func (o BuildOptions) workers(rows int) int {
	w := o.Workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	return max(1, min(w, rows))
}

// buildMatrix computes all pairwise cosines. Row lengths shrink toward the
// bottom of the triangle, so workers pull rows from a shared counter instead
// of taking fixed chunks. Cancellation is checked between rows.
func buildMatrix(ctx context.Context, vectors []sparseVector, opts BuildOptions) (*Matrix, error) {
	n := len(vectors)
	m := &Matrix{n: n, upper: make([]float32, n*(n-1)/2)}
	if n < 2 {
		return m, nil
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < opts.workers(n-1); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= n-1 || ctx.Err() != nil {
					return
				}
				base := m.offset(i, i+1)
				for j := i + 1; j < n; j++ {
					m.upper[base+j-i-1] = float32(cosine(vectors[i], vectors[j]))
				}
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("similarity matrix build canceled: %w", err)
	}
	return m, nil
}
