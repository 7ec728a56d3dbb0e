// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package dataset loads the movie catalog from CSV into the two views the
// recommender works from.
//
// The base view (Dataset.Movies) holds one Movie per accepted CSV record,
// with genres kept as an ordered list and a never-nil overview. The exploded
// view (Dataset.Exploded) holds one GenreRow per (movie, genre) pair.
// Distinct is the base view reduced to the first record of each title and
// is what the similarity indices are built over.
//
// Everything here is built once at startup and read-only afterwards.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Column names in the source CSV.
const (
	ColTitle       = "Title"
	ColGenre       = "Genre"
	ColVoteAverage = "Vote_Average"
	ColPopularity  = "Popularity"
	ColReleaseDate = "Release_Date"
	ColOverview    = "Overview"
	ColPosterURL   = "Poster_Url"
)

// RequiredColumns must all be present in the header row.
var RequiredColumns = []string{
	ColTitle, ColGenre, ColVoteAverage, ColPopularity, ColReleaseDate, ColOverview,
}

// genreSeparator splits the Genre field. Only the literal ", " separates
// tokens; "Action,Drama" is one token.
const genreSeparator = ", "

var (
	// ErrMissingColumn is returned when the header lacks a required column.
	// No view can be built, so callers treat it as fatal.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptyDataset is returned when no record survives parsing.
	ErrEmptyDataset = errors.New("dataset has no usable records")
)

// Movie is one record of the base view.
type Movie struct {
	Title       string   `json:"title"`
	Genres      []string `json:"genres"`
	VoteAverage float64  `json:"vote_average"`
	Popularity  float64  `json:"popularity"`
	// ReleaseYear is nil when the release date is missing or unparseable.
	ReleaseYear *int   `json:"release_year"`
	Overview    string `json:"overview"`
	PosterURL   string `json:"poster_url,omitempty"`
	// VoteLabel is the Vote_Average quartile bucket. See VoteLabels.
	VoteLabel string `json:"vote_label"`
}

// HasYear reports whether the release year is known.
func (m *Movie) HasYear() bool {
	return m.ReleaseYear != nil
}

// GenreRow is one record of the exploded view. Movie indexes Dataset.Movies.
type GenreRow struct {
	Movie int
	Genre string
}

// Dataset holds both views of the catalog.
type Dataset struct {
	// Source is the path the dataset was read from, if any.
	Source string

	// Movies is the base view in file order.
	Movies []Movie

	// Exploded is the per-genre view in file order.
	Exploded []GenreRow

	// Distinct holds the first record of every title, in file order.
	Distinct []Movie

	// Skipped counts records dropped for an empty title or a non-numeric
	// Vote_Average or Popularity.
	Skipped int

	// MissingYears counts kept records whose release date did not parse.
	MissingYears int
}

// Load reads the CSV file at path.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Load(path string, logger zerolog.Logger) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f, logger)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	ds.Source = path
	return ds, nil
}

// Parse reads a CSV stream with a header row. Rows are recovered where
// possible: a bad date gives a nil year, an empty genre field an empty list,
// and a missing overview "". A row with a non-numeric vote or popularity is
// skipped and counted. A missing required column fails the whole parse.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Parse(r io.Reader, logger zerolog.Logger) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrEmptyDataset)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := headerIndex(header)
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	ds := &Dataset{}
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		movie, reason := parseMovie(row, idx)
		if reason != "" {
			ds.Skipped++
			logger.Warn().Int("line", line).Str("reason", reason).Msg("Skipping dataset record")
			continue
		}
		if movie.ReleaseYear == nil {
			ds.MissingYears++
		}
		ds.Movies = append(ds.Movies, movie)
	}

	if len(ds.Movies) == 0 {
		return nil, ErrEmptyDataset
	}

	assignVoteLabels(ds.Movies)
	ds.explode()
	ds.distinct()

	logger.Info().
		Int("records", len(ds.Movies)).
		Int("titles", len(ds.Distinct)).
		Int("genre_rows", len(ds.Exploded)).
		Int("skipped", ds.Skipped).
		Int("missing_years", ds.MissingYears).
		Msg("Dataset parsed")

	return ds, nil
}

// headerIndex maps trimmed column names to positions. A UTF-8 byte order
// mark on the first column is ignored.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

func field(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseMovie returns a non-empty reason when the row must be skipped.
func parseMovie(row []string, idx map[string]int) (Movie, string) {
	title := strings.TrimSpace(field(row, idx, ColTitle))
	if title == "" {
		return Movie{}, "empty title"
	}

	vote, ok := parseNumber(field(row, idx, ColVoteAverage))
	if !ok {
		return Movie{}, "non-numeric " + ColVoteAverage
	}
	pop, ok := parseNumber(field(row, idx, ColPopularity))
	if !ok {
		return Movie{}, "non-numeric " + ColPopularity
	}

	return Movie{
		Title:       title,
		Genres:      SplitGenres(field(row, idx, ColGenre)),
		VoteAverage: vote,
		Popularity:  pop,
		ReleaseYear: ParseYear(field(row, idx, ColReleaseDate)),
		Overview:    field(row, idx, ColOverview),
		PosterURL:   strings.TrimSpace(field(row, idx, ColPosterURL)),
	}, ""
}

// parseNumber accepts finite numbers only. ParseFloat also accepts "NaN" and
// "Inf", which would slip past range filters and cannot be encoded as JSON.
func parseNumber(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// SplitGenres splits a Genre field into trimmed tokens in source order.
// Empty tokens are dropped, so a blank field yields an empty, non-nil list.
func SplitGenres(s string) []string {
	genres := []string{}
	if strings.TrimSpace(s) == "" {
		return genres
	}
	for _, tok := range strings.Split(s, genreSeparator) {
		if tok = strings.TrimSpace(tok); tok != "" {
			genres = append(genres, tok)
		}
	}
	return genres
}

func (d *Dataset) explode() {
	d.Exploded = make([]GenreRow, 0, len(d.Movies)*2)
	for i := range d.Movies {
		for _, g := range d.Movies[i].Genres {
			d.Exploded = append(d.Exploded, GenreRow{Movie: i, Genre: g})
		}
	}
}

func (d *Dataset) distinct() {
	seen := make(map[string]struct{}, len(d.Movies))
	d.Distinct = make([]Movie, 0, len(d.Movies))
	for i := range d.Movies {
		if _, ok := seen[d.Movies[i].Title]; ok {
			continue
		}
		seen[d.Movies[i].Title] = struct{}{}
		d.Distinct = append(d.Distinct, d.Movies[i])
	}
}
