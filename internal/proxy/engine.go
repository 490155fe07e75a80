// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

// Package proxy decides whether a preview is rendered at reduced resolution.
//
// Rules are evaluated in a fixed priority order and the first match wins:
//
//  1. client override (forceProxy true/false)
//  2. project metadata previewProxy.enabled
//  3. source at or above 4K
//  4. source at or above 1440p
//  5. historical average delay for the exact resolution above the target
//  6. full resolution
//
// The default scale comes from metadata previewProxy.scale, clamped to
// [MinScale, MaxScale]. Automatic rules never use more than AutoScaleCap.
package proxy

import (
	"github.com/tomtom215/nodevision/internal/logging"
	"github.com/tomtom215/nodevision/internal/metrics"
	"github.com/tomtom215/nodevision/internal/models"
	"github.com/tomtom215/nodevision/internal/params"
)

// Scale bounds and thresholds.
const (
	MinScale     = 0.1
	MaxScale     = 1.0
	AutoScaleCap = 0.5

	// Latency targets in milliseconds.
	TargetDelayStandard = 150.0
	TargetDelayHigh     = 250.0
)

// Reason identifies which rule produced a decision.
type Reason string

// Closed set of decision reasons.
const (
	ReasonClientForceOn      Reason = "client_force_on"
	ReasonClientForceOff     Reason = "client_force_off"
	ReasonProjectMetadataOn  Reason = "project_metadata_on"
	ReasonProjectMetadataOff Reason = "project_metadata_off"
	ReasonResolution4K       Reason = "resolution_4k"
	ReasonResolutionQHD      Reason = "resolution_qhd"
	ReasonHistoricalDelay    Reason = "historical_delay"
	ReasonAuto               Reason = "auto"
)

// Decision is the outcome for one render.
type Decision struct {
	Enabled bool
	// Scale is 1.0 whenever Enabled is false.
	Scale  float64
	Reason Reason
	// AverageDelayMs is set when history for the resolution was consulted and found.
	AverageDelayMs *float64
	TargetDelayMs  float64
}

// Averager supplies historical preview delays per resolution.
type Averager interface {
	Average(width, height int) (float64, bool)
}

// Engine evaluates the decision rules.
type Engine struct {
	history      Averager
	defaultScale float64
}

// NewEngine creates an engine. defaultScale applies when the project carries
// no usable previewProxy.scale; values outside [MinScale, MaxScale] are clamped.
func NewEngine(history Averager, defaultScale float64) *Engine {
	if s, ok := params.Float(defaultScale); ok {
		defaultScale = params.Clamp(s, MinScale, MaxScale)
	} else {
		defaultScale = AutoScaleCap
	}
	return &Engine{history: history, defaultScale: defaultScale}
}

// Decide picks the proxy settings for a source of width x height.
// override is the client's forceProxy flag; nil means no override.
func (e *Engine) Decide(graph *models.ProjectGraph, width, height int, override *bool) Decision {
	d := e.decide(graph, width, height, override)
	metrics.RecordProxyDecision(string(d.Reason))
	logging.Debug().
		Int("width", width).
		Int("height", height).
		Bool("enabled", d.Enabled).
		Float64("scale", d.Scale).
		Str("reason", string(d.Reason)).
		Msg("Proxy decision")
	return d
}

func (e *Engine) decide(graph *models.ProjectGraph, width, height int, override *bool) Decision {
	width, height = max(width, 1), max(height, 1)
	target := TargetDelay(width, height)
	meta := previewProxyMetadata(graph)
	scale := e.scaleFrom(meta)

	if override != nil {
		if *override {
			return Decision{Enabled: true, Scale: scale, Reason: ReasonClientForceOn, TargetDelayMs: target}
		}
		return Decision{Enabled: false, Scale: 1.0, Reason: ReasonClientForceOff, TargetDelayMs: target}
	}

	if enabled, ok := params.Bool(meta["enabled"]); ok {
		if enabled {
			return Decision{Enabled: true, Scale: scale, Reason: ReasonProjectMetadataOn, TargetDelayMs: target}
		}
		return Decision{Enabled: false, Scale: 1.0, Reason: ReasonProjectMetadataOff, TargetDelayMs: target}
	}

	autoScale := min(scale, AutoScaleCap)
	if width >= 3840 || height >= 2160 {
		return Decision{Enabled: true, Scale: autoScale, Reason: ReasonResolution4K, TargetDelayMs: target}
	}
	if width >= 2560 || height >= 1440 {
		return Decision{Enabled: true, Scale: autoScale, Reason: ReasonResolutionQHD, TargetDelayMs: target}
	}

	var avgPtr *float64
	if e.history != nil {
		if avg, ok := e.history.Average(width, height); ok {
			avgPtr = &avg
			if avg > target {
				return Decision{
					Enabled:        true,
					Scale:          autoScale,
					Reason:         ReasonHistoricalDelay,
					AverageDelayMs: avgPtr,
					TargetDelayMs:  target,
				}
			}
		}
	}

	return Decision{Enabled: false, Scale: 1.0, Reason: ReasonAuto, AverageDelayMs: avgPtr, TargetDelayMs: target}
}

// TargetDelay returns the acceptable preview delay for a resolution.
func TargetDelay(width, height int) float64 {
	width, height = max(width, 1), max(height, 1)
	if width >= 2560 || height >= 1440 {
		return TargetDelayHigh
	}
	return TargetDelayStandard
}

// DefaultScale returns the clamped previewProxy.scale of graph, or the
// engine default.
func (e *Engine) DefaultScale(graph *models.ProjectGraph) float64 {
	return e.scaleFrom(previewProxyMetadata(graph))
}

func (e *Engine) scaleFrom(meta map[string]any) float64 {
	if s, ok := params.Float(meta["scale"]); ok {
		return params.Clamp(s, MinScale, MaxScale)
	}
	return e.defaultScale
}

func previewProxyMetadata(graph *models.ProjectGraph) map[string]any {
	if graph == nil || graph.Metadata == nil {
		return nil
	}
	m, _ := params.Map(graph.Metadata["previewProxy"])
	return m
}
