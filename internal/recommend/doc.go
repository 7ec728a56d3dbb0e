// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package recommend answers "movies like this one" queries.
//
// An Engine is built once per process from a loaded dataset. Building it
// constructs the genre and overview similarity indices (see the algorithms
// subpackage); after that the engine is read-only apart from its response
// cache and counters, and is safe for concurrent use.
//
// # Query flow
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Title:    "The Batman",
//	    Strategy: recommend.StrategyOverview,
//	    K:        5,
//	    Filter:   recommend.Filter{YearMin: &from},
//	})
//
//  1. The title is looked up in the strategy's index. An unknown title
//     returns an *UnknownTitleError (errors.Is ErrUnknownTitle).
//  2. Every other title is ranked by descending similarity, ties in dataset
//     order, and the first K are kept.
//  3. Each ranked title is joined to its full record, keeping rank order.
//  4. The filter is applied. If nothing survives the response has Empty set;
//     that is a normal outcome, not an error.
package recommend
