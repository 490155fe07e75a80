// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package api

import (
	"encoding/base64"
	"time"

	"github.com/tomtom215/nodevision/internal/models"
	"github.com/tomtom215/nodevision/internal/render"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// InfoResponse is returned by GET /info.
type InfoResponse struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	BackendVersion string   `json:"backendVersion"`
	Endpoints      []string `json:"endpoints"`
}

// ProjectSaveResponse is returned by POST /projects/save.
type ProjectSaveResponse struct {
	Slot    string                `json:"slot"`
	Path    string                `json:"path"`
	Summary models.ProjectSummary `json:"summary"`
}

// ProjectLoadResponse is returned by POST /projects/load.
type ProjectLoadResponse struct {
	Slot    string                `json:"slot"`
	Path    string                `json:"path"`
	Project *models.ProjectGraph  `json:"project"`
	Summary models.ProjectSummary `json:"summary"`
}

// PreviewSourceInfo is the size of the resolved frame before proxy scaling.
type PreviewSourceInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PreviewProxyInfo reports the proxy decision applied to a preview.
type PreviewProxyInfo struct {
	Enabled        bool     `json:"enabled"`
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	Scale          float64  `json:"scale"`
	Reason         string   `json:"reason"`
	AverageDelayMs *float64 `json:"averageDelayMs"`
	TargetDelayMs  *float64 `json:"targetDelayMs"`
}

// PreviewResponse is returned by POST /preview/generate.
type PreviewResponse struct {
	ImageBase64 string            `json:"imageBase64"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Source      PreviewSourceInfo `json:"source"`
	Proxy       PreviewProxyInfo  `json:"proxy"`
	GeneratedAt string            `json:"generatedAt"`
}

// MetricRecordedResponse is returned by POST /metrics/preview.
type MetricRecordedResponse struct {
	Recorded bool   `json:"recorded"`
	Profile  string `json:"profile"`
}

// generatedAtLayout renders UTC timestamps with microseconds and a Z suffix.
const generatedAtLayout = "2006-01-02T15:04:05.000000"

func formatGeneratedAt(t time.Time) string {
	return t.UTC().Format(generatedAtLayout) + "Z"
}

func newPreviewResponse(res *render.Result) PreviewResponse {
	target := res.Decision.TargetDelayMs
	return PreviewResponse{
		ImageBase64: base64.StdEncoding.EncodeToString(res.PNG),
		Width:       res.Width,
		Height:      res.Height,
		Source:      PreviewSourceInfo{Width: res.SourceWidth, Height: res.SourceHeight},
		Proxy: PreviewProxyInfo{
			Enabled:        res.Decision.Enabled,
			Width:          res.Width,
			Height:         res.Height,
			Scale:          res.Decision.Scale,
			Reason:         string(res.Decision.Reason),
			AverageDelayMs: res.Decision.AverageDelayMs,
			TargetDelayMs:  &target,
		},
		GeneratedAt: formatGeneratedAt(res.GeneratedAt),
	}
}
