// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

/*
Package middleware provides chi compatible HTTP middleware.

  - RequestID: assigns or propagates X-Request-ID and seeds the logging
    context with request and correlation IDs.
  - PrometheusMetrics: request count, duration and in-flight gauge, labelled
    by chi route pattern to keep label cardinality bounded.

Both have the func(http.Handler) http.Handler shape and are mounted with
r.Use in the api package:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Get("/health", h.Health)
	})
*/
package middleware
