// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/nodevision/internal/latency"
	"github.com/tomtom215/nodevision/internal/logging"
	"github.com/tomtom215/nodevision/internal/render"
	"github.com/tomtom215/nodevision/internal/validation"
)

// GeneratePreview handles POST /preview/generate.
func (h *Handler) GeneratePreview(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req PreviewGenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateProjectRequest(rw, &req, req.Project) {
		return
	}

	res, err := h.renderer.Render(r.Context(), render.Request{
		Project:    req.Project,
		ForceProxy: req.ForceProxy,
	})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Preview render failed")
		rw.InternalError("Failed to render preview")
		return
	}

	rw.Success(newPreviewResponse(res))
}

// RecordPreviewMetric handles POST /metrics/preview, appending one measurement
// to the latency log that feeds the historical proxy rule.
func (h *Handler) RecordPreviewMetric(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.recorder == nil {
		rw.Error(http.StatusServiceUnavailable, ErrCodeInternalError, "Latency recording is disabled")
		return
	}

	var req PreviewMetricRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationError(verr.Error(), verr.Issues())
		return
	}

	if err := h.recorder.Append(req.Metric()); err != nil {
		if errors.Is(err, latency.ErrInvalidProfile) || errors.Is(err, latency.ErrInvalidDelay) {
			rw.BadRequest(err.Error())
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to record preview metric")
		rw.InternalError("Failed to record preview metric")
		return
	}

	rw.Success(MetricRecordedResponse{
		Recorded: true,
		Profile:  strings.TrimSpace(req.Profile),
	})
}
