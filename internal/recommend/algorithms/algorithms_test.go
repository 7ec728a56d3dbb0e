// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package algorithms

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/marquee/internal/dataset"
)

const tolerance = 1e-6

func movie(title string, genres []string, overview string) dataset.Movie {
	return dataset.Movie{Title: title, Genres: genres, Overview: overview}
}

func testMovies() []dataset.Movie {
	return []dataset.Movie{
		movie("A", []string{"Action", "Comedy"}, "A detective chases a thief across Paris."),
		movie("B", []string{"Action"}, "A thief plans one last heist in Paris."),
		movie("C", []string{"Drama"}, "Two sisters reunite after years apart."),
		movie("D", []string{"Comedy", "Action"}, ""),
		movie("E", []string{}, "The and of it."),
		movie("A", []string{"Horror"}, "Duplicate title should be ignored."),
	}
}

func checkMatrixInvariants(t *testing.T, x *Index) {
	t.Helper()
	n := x.Len()
	for i := 0; i < n; i++ {
		if got := x.Similarity(i, i); got != 1 {
			t.Errorf("%s: sim(%d,%d) = %v, want 1", x.Name(), i, i, got)
		}
		for j := 0; j < n; j++ {
			s := x.Similarity(i, j)
			if s < 0 || s > 1 {
				t.Errorf("%s: sim(%d,%d) = %v out of [0,1]", x.Name(), i, j, s)
			}
			if math.Abs(s-x.Similarity(j, i)) > tolerance {
				t.Errorf("%s: sim(%d,%d) != sim(%d,%d)", x.Name(), i, j, j, i)
			}
		}
	}
}

func TestGenreIndex(t *testing.T) {
	t.Parallel()

	idx, err := NewGenreIndex(context.Background(), testMovies(), BuildOptions{Workers: 3})
	if err != nil {
		t.Fatalf("NewGenreIndex() error = %v", err)
	}

	if idx.Len() != 5 {
		t.Fatalf("Len() = %d, want 5 distinct titles", idx.Len())
	}
	want := []string{"Action", "Comedy", "Drama"}
	if got := idx.Vocabulary(); !reflect.DeepEqual(got, want) {
		t.Errorf("Vocabulary() = %v, want %v (duplicate title genres excluded)", got, want)
	}

	checkMatrixInvariants(t, idx.Index)

	a, _ := idx.Lookup("A")
	b, _ := idx.Lookup("B")
	c, _ := idx.Lookup("C")
	d, _ := idx.Lookup("D")
	e, _ := idx.Lookup("E")

	tests := []struct {
		name string
		i, j int
		want float64
	}{
		{"one of two shared", a, b, 1 / math.Sqrt2},
		{"disjoint", a, c, 0},
		{"identical sets in any order", a, d, 1},
		{"zero vector", a, e, 0},
	}
	for _, tt := range tests {
		if got := idx.Similarity(tt.i, tt.j); math.Abs(got-tt.want) > tolerance {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
	if !idx.IsZero(e) {
		t.Error("movie without genres should have a zero vector")
	}
}

func TestGenreIndex_DuplicateGenreCountsOnce(t *testing.T) {
	t.Parallel()

	movies := []dataset.Movie{
		movie("X", []string{"Action", "Action"}, ""),
		movie("Y", []string{"Action"}, ""),
	}
	idx, err := NewGenreIndex(context.Background(), movies, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got := idx.Similarity(0, 1); math.Abs(got-1) > tolerance {
		t.Errorf("sim = %v, want 1", got)
	}
}

func TestOverviewIndex(t *testing.T) {
	t.Parallel()

	idx, err := NewOverviewIndex(context.Background(), testMovies(), BuildOptions{Workers: 2})
	if err != nil {
		t.Fatalf("NewOverviewIndex() error = %v", err)
	}
	checkMatrixInvariants(t, idx.Index)

	a, _ := idx.Lookup("A")
	b, _ := idx.Lookup("B")
	c, _ := idx.Lookup("C")
	d, _ := idx.Lookup("D")
	e, _ := idx.Lookup("E")

	if idx.Similarity(a, b) <= 0 {
		t.Error("A and B share thief/paris and should be similar")
	}
	if idx.Similarity(a, c) != 0 {
		t.Errorf("A and C share no terms: got %v", idx.Similarity(a, c))
	}
	for j := 0; j < idx.Len(); j++ {
		if j != d && idx.Similarity(d, j) != 0 {
			t.Errorf("empty overview should be 0 to row %d, got %v", j, idx.Similarity(d, j))
		}
	}
	if !idx.IsZero(e) {
		t.Error("stop-word-only overview should give a zero vector")
	}
	if idx.Similarity(d, e) != 0 {
		t.Error("two zero vectors are 0 to each other")
	}
}

func TestOverviewIndex_IDF(t *testing.T) {
	t.Parallel()

	movies := []dataset.Movie{
		movie("1", nil, "space war"),
		movie("2", nil, "space love"),
		movie("3", nil, "space"),
	}
	idx, err := NewOverviewIndex(context.Background(), movies, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}

	// in every document: ln(4/4) + 1
	if got, ok := idx.termIDF("space"); !ok || math.Abs(got-1) > 1e-12 {
		t.Errorf("IDF(space) = %v, %v; want 1", got, ok)
	}
	// in one document: ln(4/2) + 1
	if got, _ := idx.termIDF("war"); math.Abs(got-(math.Log(2)+1)) > 1e-12 {
		t.Errorf("IDF(war) = %v", got)
	}
	if _, ok := idx.termIDF("the"); ok {
		t.Error("stop words are not in the vocabulary")
	}
	if idx.VocabularySize() != 3 {
		t.Errorf("VocabularySize() = %d, want 3", idx.VocabularySize())
	}

	// doc1 = (space:1, war:1+ln2) normalized, doc3 = (space:1)
	w := math.Log(2) + 1
	want := 1 / math.Sqrt(1+w*w)
	if got := idx.Similarity(0, 2); math.Abs(got-want) > tolerance {
		t.Errorf("sim(1,3) = %v, want %v", got, want)
	}
}

func TestNeighbors(t *testing.T) {
	t.Parallel()

	movies := []dataset.Movie{
		movie("A", []string{"Action", "Comedy"}, ""),
		movie("B", []string{"Action"}, ""),
		movie("C", []string{"Drama"}, ""),
	}
	idx, err := NewGenreIndex(context.Background(), movies, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}

	got := idx.Neighbors(0, 2)
	if len(got) != 2 || got[0].Title != "B" || got[1].Title != "C" {
		t.Fatalf("Neighbors(A, 2) = %+v, want [B C]", got)
	}
	if math.Abs(got[0].Score-0.7071) > 1e-3 || got[1].Score != 0 {
		t.Errorf("scores = %v, %v", got[0].Score, got[1].Score)
	}

	if n := idx.Neighbors(0, 10); len(n) != 2 {
		t.Errorf("k larger than the index: got %d results, want 2", len(n))
	}
	if n := idx.Neighbors(0, 0); len(n) != 0 {
		t.Errorf("k=0: got %d results", len(n))
	}
}

func TestNeighbors_TiesKeepRowOrderAndExcludeSelf(t *testing.T) {
	t.Parallel()

	movies := []dataset.Movie{
		movie("P", []string{"Drama"}, ""),
		movie("Q", []string{"Drama"}, ""),
		movie("R", []string{"Drama"}, ""),
		movie("S", []string{"Drama"}, ""),
	}
	idx, err := NewGenreIndex(context.Background(), movies, BuildOptions{Workers: 4})
	if err != nil {
		t.Fatal(err)
	}

	got := idx.Neighbors(2, 3)
	want := []string{"P", "Q", "S"}
	for i, n := range got {
		if n.Title != want[i] {
			t.Fatalf("Neighbors(R) = %+v, want %v", got, want)
		}
		if n.Row == 2 {
			t.Error("query row returned")
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Error("scores must be non-increasing")
		}
	}
}

func TestNeighbors_Float32CollisionsUseExactCosine(t *testing.T) {
	t.Parallel()

	// Both cosines to Q round to 1 in float32; A is closer in float64.
	vectors := map[string]sparseVector{
		"Q": newSparseVector(map[int32]float64{0: 1}),
		"B": newSparseVector(map[int32]float64{0: 1, 1: 2e-5}).normalize(),
		"A": newSparseVector(map[int32]float64{0: 1, 1: 1e-5}).normalize(),
	}
	movies := []dataset.Movie{movie("Q", nil, ""), movie("B", nil, ""), movie("A", nil, "")}
	idx, err := newIndex(context.Background(), "test", movies, func(i int) sparseVector {
		return vectors[movies[i].Title]
	}, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if idx.Similarity(0, 1) != idx.Similarity(0, 2) {
		t.Fatalf("stored scores differ: %v vs %v", idx.Similarity(0, 1), idx.Similarity(0, 2))
	}
	got := idx.Neighbors(0, 2)
	if len(got) != 2 || got[0].Title != "A" || got[1].Title != "B" {
		t.Errorf("Neighbors(Q, 2) = %+v, want [A B]", got)
	}
}

func TestBuildCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewGenreIndex(ctx, testMovies(), BuildOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestMatrixParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	var movies []dataset.Movie
	genres := []string{"Action", "Comedy", "Drama", "Horror", "Family"}
	for i := 0; i < 40; i++ {
		movies = append(movies, movie(
			string(rune('a'+i%26))+string(rune('A'+i/26)),
			[]string{genres[i%5], genres[(i*3)%5]},
			"",
		))
	}

	seq, err := NewGenreIndex(context.Background(), movies, BuildOptions{Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	par, err := NewGenreIndex(context.Background(), movies, BuildOptions{Workers: 8})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(seq.matrix.upper, par.matrix.upper) {
		t.Error("parallel build differs from sequential build")
	}
	if seq.matrix.Len() != 40 || seq.Similarity(3, 3) != 1 {
		t.Errorf("matrix length %d, diagonal %v", seq.matrix.Len(), seq.Similarity(3, 3))
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"The Dark Knight rises!", []string{"dark", "knight", "rises"}},
		{"I, a man, in 2049.", []string{"man", "2049"}},
		{"don't stop_me now", []string{"don", "stop_me"}},
		{"Café über", []string{"café", "über"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := Tokenize(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
