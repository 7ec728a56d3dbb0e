// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP middleware for the Marquee API.

All middleware use the chi signature func(http.Handler) http.Handler and
are mounted by the api package router:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

RequestID honors an incoming X-Request-ID header or generates a UUID, echoes
it in the response, and stores it together with a fresh correlation ID in
the request context so that logging.Ctx picks both up.

PrometheusMetrics records request counts and latencies per route pattern.
The chi pattern (/api/v1/movies/{title}) is used instead of the raw path so
that movie titles do not become label values.

AccessLog writes one structured zerolog line per request.
*/
package middleware
