// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package api

import (
	"time"

	"github.com/tomtom215/nodevision/internal/latency"
	"github.com/tomtom215/nodevision/internal/render"
	"github.com/tomtom215/nodevision/internal/storage"
)

// Service identity reported by /health and /info.
const (
	ServiceName    = "nodevision-backend"
	BackendVersion = "0.2.0"
	DisplayName    = "NodeVision Editor Backend"
	Description    = "Node graph preview renderer and project store for the NodeVision editor"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: health, info, node catalog
//   - handlers_projects.go: project save and load
//   - handlers_preview.go: preview rendering and latency telemetry
type Handler struct {
	renderer  *render.Service
	store     *storage.Store
	recorder  *latency.Recorder
	startTime time.Time
}

// NewHandler creates a handler. A nil recorder disables telemetry ingestion.
func NewHandler(renderer *render.Service, store *storage.Store, recorder *latency.Recorder) *Handler {
	return &Handler{
		renderer:  renderer,
		store:     store,
		recorder:  recorder,
		startTime: time.Now(),
	}
}

// Uptime returns how long the handler has been serving.
func (h *Handler) Uptime() time.Duration {
	return time.Since(h.startTime)
}
