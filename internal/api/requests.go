// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/nodevision/internal/latency"
	"github.com/tomtom215/nodevision/internal/models"
)

// MaxRequestBodyBytes bounds every JSON request body.
const MaxRequestBodyBytes = 16 << 20

// ProjectSaveRequest is the body of POST /projects/save.
// An empty Slot selects the store's default slot.
type ProjectSaveRequest struct {
	Project *models.ProjectGraph `json:"project" validate:"required,structonly"`
	Slot    string               `json:"slot" validate:"max=128"`
}

// ProjectLoadRequest is the body of POST /projects/load.
type ProjectLoadRequest struct {
	Slot string `json:"slot" validate:"max=128"`
}

// PreviewGenerateRequest is the body of POST /preview/generate.
type PreviewGenerateRequest struct {
	Project    *models.ProjectGraph `json:"project" validate:"required,structonly"`
	ForceProxy *bool                `json:"forceProxy"`
}

// PreviewMetricRequest is one client-side latency measurement.
type PreviewMetricRequest struct {
	Profile        string   `json:"profile" validate:"required,max=64"`
	DelayMs        *float64 `json:"delayMs" validate:"required,gte=0"`
	CPUPercent     *float64 `json:"cpuPercent" validate:"omitempty,gte=0"`
	MemoryMB       *float64 `json:"memoryMb" validate:"omitempty,gte=0"`
	Proxy          *bool    `json:"proxy"`
	Scale          *float64 `json:"scale" validate:"omitempty,gt=0,lte=1"`
	Reason         string   `json:"reason" validate:"max=64"`
	TargetDelayMs  *float64 `json:"targetDelayMs" validate:"omitempty,gte=0"`
	AverageDelayMs *float64 `json:"averageDelayMs" validate:"omitempty,gte=0"`
}

// Metric converts the request to a recorder row set.
func (req *PreviewMetricRequest) Metric() latency.Metric {
	m := latency.Metric{
		Profile:        req.Profile,
		CPUPercent:     req.CPUPercent,
		MemoryMB:       req.MemoryMB,
		Proxy:          req.Proxy,
		Scale:          req.Scale,
		Reason:         req.Reason,
		TargetDelayMs:  req.TargetDelayMs,
		AverageDelayMs: req.AverageDelayMs,
	}
	if req.DelayMs != nil {
		m.DelayMs = *req.DelayMs
	}
	return m
}

// decodeJSON reads a bounded JSON body into dst. An empty body leaves dst
// untouched so optional-only requests may be sent without one.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
