// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTitle is matched by every *UnknownTitleError.
	ErrUnknownTitle = errors.New("unknown title")

	// ErrInvalidStrategy is returned for a strategy other than genre or overview.
	ErrInvalidStrategy = errors.New("invalid strategy")

	// ErrInvalidK is returned for a negative result count.
	ErrInvalidK = errors.New("invalid result count")

	// ErrInvalidFilter is returned when a filter range is inverted.
	ErrInvalidFilter = errors.New("invalid filter")
)

// UnknownTitleError names the title that is not in the strategy's index.
type UnknownTitleError struct {
	Title    string
	Strategy Strategy
}

func (e *UnknownTitleError) Error() string {
	return fmt.Sprintf("movie title %q not found in the %s index", e.Title, e.Strategy)
}

// Is makes errors.Is(err, ErrUnknownTitle) true.
func (e *UnknownTitleError) Is(target error) bool {
	return target == ErrUnknownTitle
}
