// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package api

import (
	"net/http"

	"github.com/tomtom215/nodevision/internal/catalog"
)

// Endpoints lists the routes advertised by /info, relative to /api/v1.
var Endpoints = []string{
	"/health",
	"/info",
	"/nodes/catalog",
	"/projects/save",
	"/projects/load",
	"/preview/generate",
	"/metrics/preview",
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, HealthResponse{
		Status:  "ok",
		Service: ServiceName,
		Version: BackendVersion,
	})
}

// Info handles GET /info.
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	endpoints := make([]string, len(Endpoints))
	copy(endpoints, Endpoints)
	WriteSuccess(w, r, InfoResponse{
		Name:           DisplayName,
		Description:    Description,
		BackendVersion: BackendVersion,
		Endpoints:      endpoints,
	})
}

// NodeCatalog handles GET /nodes/catalog.
func (h *Handler) NodeCatalog(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, catalog.Entries())
}
