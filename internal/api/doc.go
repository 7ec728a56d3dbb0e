// Marquee - Content-Based Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api serves the recommendation engine over JSON HTTP.

Every response uses the same envelope:

	{"success": true,  "data": {...}, "meta": {"request_id": "...", "timestamp": "..."}}
	{"success": false, "error": {"code": "UNKNOWN_TITLE", "message": "..."}, "meta": {...}}

Routes (all GET):

	/api/v1/health/live            process is up
	/api/v1/health/ready           engine is loaded
	/api/v1/movies                 selectable titles for the filter
	/api/v1/movies/{title}         one movie record
	/api/v1/genres                 genre vocabulary
	/api/v1/bounds                 filter slider bounds
	/api/v1/stats                  quick stats for the filter
	/api/v1/trending?n=            featured titles
	/api/v1/indexes                similarity index summaries
	/api/v1/recommendations        ranked neighbors of ?title= under ?strategy=
	/metrics                       Prometheus exposition

Filter parameters shared by movies, stats and recommendations:
year_min, year_max, genres (comma separated or repeated), vote_min,
vote_max, pop_min, pop_max.

An unknown title is a 404 with code UNKNOWN_TITLE. A filter that removes
every candidate is a 200 whose data has "empty": true and a message.
Malformed parameters are a 400 with code VALIDATION_ERROR.
*/
package api
