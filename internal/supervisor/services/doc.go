// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package services adapts server components to suture.Service.
//
// Each service implements Serve(ctx) error and String() string. Serve
// returns ctx.Err() on shutdown and a wrapped error on failure, which
// suture treats as a crash and restarts with backoff.
package services
