// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package dataset

import (
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestGenres(t *testing.T) {
	t.Parallel()

	ds := mustParse(t, sampleCSV)
	want := []string{
		"Action", "Adventure", "Animation", "Comedy", "Crime", "Drama", "Family",
		"Fantasy", "Mystery", "Science Fiction", "Thriller",
	}
	if got := ds.Genres(); !reflect.DeepEqual(got, want) {
		t.Errorf("Genres() = %v, want %v", got, want)
	}
}

func TestBounds(t *testing.T) {
	t.Parallel()

	b := mustParse(t, sampleCSV).Bounds()
	if b.YearMin == nil || *b.YearMin != 2021 || b.YearMax == nil || *b.YearMax != 2022 {
		t.Errorf("year bounds = %v..%v", b.YearMin, b.YearMax)
	}
	if b.VoteMin != 1.0 || b.VoteMax != 8.3 {
		t.Errorf("vote bounds = %v..%v", b.VoteMin, b.VoteMax)
	}
	if b.PopularityMin != 1.0 || b.PopularityMax != 5083.954 {
		t.Errorf("popularity bounds = %v..%v", b.PopularityMin, b.PopularityMax)
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	year := func(y int) *int { return &y }
	movies := []Movie{
		{Title: "A", Genres: []string{"Drama", "Action"}, ReleaseYear: year(1990)},
		{Title: "B", Genres: []string{"Action"}, ReleaseYear: year(2005)},
		{Title: "C", Genres: []string{"Comedy", "Drama"}},
		{Title: "A", Genres: []string{"Horror"}, ReleaseYear: year(1980)},
		{Title: "D", Genres: []string{"Action"}},
	}

	st := ComputeStats(movies, nil)
	if st.TotalMovies != 4 {
		t.Errorf("TotalMovies = %d, want 4", st.TotalMovies)
	}
	if st.UniqueGenres != 4 {
		t.Errorf("UniqueGenres = %d, want 4", st.UniqueGenres)
	}
	want := []GenreCount{{"Action", 3}, {"Drama", 2}, {"Comedy", 1}}
	if !reflect.DeepEqual(st.TopGenres, want) {
		t.Errorf("TopGenres = %v, want %v", st.TopGenres, want)
	}
	if *st.YearMin != 1980 || *st.YearMax != 2005 {
		t.Errorf("year range = %d..%d", *st.YearMin, *st.YearMax)
	}

	onlyDrama := ComputeStats(movies, func(g string) bool { return g == "Drama" })
	if onlyDrama.UniqueGenres != 1 || len(onlyDrama.TopGenres) != 1 {
		t.Errorf("filtered stats = %+v", onlyDrama)
	}

	empty := ComputeStats(nil, nil)
	if empty.TotalMovies != 0 || len(empty.TopGenres) != 0 || empty.YearMin != nil {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestTrending(t *testing.T) {
	t.Parallel()

	ds := mustParse(t, sampleCSV)
	rng := rand.New(rand.NewPCG(1, 2))

	picks := ds.Trending(2, 2, rng)
	if len(picks) != 2 {
		t.Fatalf("len(picks) = %d, want 2", len(picks))
	}
	allowed := map[string]bool{"Spider-Man: No Way Home": true, "The Batman": true}
	for _, m := range picks {
		if !allowed[m.Title] {
			t.Errorf("%q is not in the top-2 popularity pool", m.Title)
		}
	}
	if picks[0].Title == picks[1].Title {
		t.Error("picks should not repeat")
	}

	if got := ds.Trending(30, 10, rng); len(got) != len(ds.Distinct) {
		t.Errorf("oversized request returned %d, want %d", len(got), len(ds.Distinct))
	}
}

func TestTrending_DuplicateKeepsMostPopularRecord(t *testing.T) {
	t.Parallel()

	data := "Title,Genre,Vote_Average,Popularity,Release_Date,Overview\n" +
		"Heat,Crime,7.9,10,1995-12-15,Early low-popularity record.\n" +
		"Ronin,Action,7.2,50,1998-09-25,A job in Paris.\n" +
		"Heat,Crime,7.9,90,1995-12-15,Later popular record.\n"
	ds := mustParse(t, data)

	picks := ds.Trending(1, 1, rand.New(rand.NewPCG(7, 7)))
	if len(picks) != 1 || picks[0].Title != "Heat" || picks[0].Popularity != 90 {
		t.Errorf("picks = %+v, want the popularity-90 Heat record", picks)
	}
}
