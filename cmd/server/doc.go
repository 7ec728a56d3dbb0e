// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee loads a movie catalog from CSV, builds two similarity indices over
it (genre overlap and TF-IDF of the plot overview) and serves ranked
recommendations over a read-only JSON API.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("marquee")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Cache janitor (only when CACHE_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── HTTP server

Startup order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Dataset: CSV parse, genre explosion, distinct titles, vote labels
 4. Engine: both similarity matrices built concurrently
 5. HTTP: Chi router with CORS, rate limiting and Prometheus metrics
 6. Supervisor: services started; SIGINT/SIGTERM stops the tree

A dataset that fails to load or an index that fails to build is fatal. The
process never serves requests without both indices.

# Configuration

Common environment variables:

	DATASET_PATH             CSV catalog (default data/movies.csv)
	INDEX_WORKERS            goroutines per matrix build (0 = GOMAXPROCS)
	RECOMMEND_DEFAULT_K      result count when k is omitted (5)
	RECOMMEND_MAX_K          upper bound for k (50)
	RECOMMEND_TRENDING_SEED  fixed seed for featured picks (0 = clock)
	CACHE_ENABLED            response cache (true)
	HTTP_PORT                listen port (8501)
	RATE_LIMIT_REQUESTS      requests per window per IP (100)
	LOG_LEVEL, LOG_FORMAT    zerolog level and json|console

# Example Usage

	DATASET_PATH=./movies.csv LOG_FORMAT=console ./marquee
	curl 'localhost:8501/api/v1/recommendations?title=Inception&strategy=overview&k=5'
*/
package main
