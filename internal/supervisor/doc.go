// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package supervisor runs the long-lived parts of the server under a
// suture/v4 supervisor tree.
//
// The similarity indices are built before the tree starts and never change,
// so nothing here owns them. The tree restarts the goroutines that can fail
// at runtime:
//
//	marquee (root)
//	├── maintenance-layer
//	│   └── cache-janitor   expires cached recommendation responses
//	└── api-layer
//	    └── http-server     serves the JSON API and /metrics
//
// Supervisor events are logged through sutureslog, which writes to the
// zerolog-backed slog handler from the logging package.
package supervisor
