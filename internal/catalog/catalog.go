// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

// Package catalog lists the node types offered to the editor.
package catalog

import "github.com/tomtom215/nodevision/internal/graph"

// Categories.
const (
	CategoryIO         = "IO"
	CategoryColor      = "Color"
	CategoryTransform  = "Transform"
	CategoryComposite  = "Composite"
	CategoryMonitoring = "Monitoring"
)

// Entry describes one node type.
type Entry struct {
	NodeID        string         `json:"nodeId"`
	DisplayName   string         `json:"displayName"`
	Category      string         `json:"category"`
	Description   string         `json:"description"`
	Inputs        []string       `json:"inputs"`
	Outputs       []string       `json:"outputs"`
	DefaultParams map[string]any `json:"defaultParams"`
}

// Entries returns a fresh copy of the catalog in display order. Callers may
// modify the result.
func Entries() []Entry {
	return []Entry{
		{
			NodeID:        graph.KindMediaInput.String(),
			DisplayName:   "Media Input",
			Category:      CategoryIO,
			Description:   "Loads an image or proxy frame from disk, or a labelled placeholder when the file is unavailable.",
			Inputs:        []string{},
			Outputs:       []string{"video", "audio"},
			DefaultParams: map[string]any{"path": "Assets/clip01.mp4", "placeholderWidth": 1920, "placeholderHeight": 1080},
		},
		{
			NodeID:        graph.KindExposureAdjust.String(),
			DisplayName:   "Exposure Adjust",
			Category:      CategoryColor,
			Description:   "Scales brightness by 2^exposure, exposure in [-4, 4].",
			Inputs:        []string{"video"},
			Outputs:       []string{"video"},
			DefaultParams: map[string]any{"exposure": 0.0},
		},
		{
			NodeID:        graph.KindContrastAdjust.String(),
			DisplayName:   "Contrast Adjust",
			Category:      CategoryColor,
			Description:   "Adjusts contrast around the mean luminance, factor in [0, 4].",
			Inputs:        []string{"video"},
			Outputs:       []string{"video"},
			DefaultParams: map[string]any{"contrast": 1.0},
		},
		{
			NodeID:        graph.KindSaturationAdjust.String(),
			DisplayName:   "Saturation Adjust",
			Category:      CategoryColor,
			Description:   "Adjusts color saturation, factor in [0, 4] where 0 is grayscale.",
			Inputs:        []string{"video"},
			Outputs:       []string{"video"},
			DefaultParams: map[string]any{"saturation": 1.0},
		},
		{
			NodeID:        graph.KindResize.String(),
			DisplayName:   "Resize",
			Category:      CategoryTransform,
			Description:   "Resizes to width x height, fitting inside the box when keepAspectRatio is set.",
			Inputs:        []string{"image"},
			Outputs:       []string{"image"},
			DefaultParams: map[string]any{"width": 1280, "height": 720, "keepAspectRatio": true},
		},
		{
			NodeID:        graph.KindCrop.String(),
			DisplayName:   "Crop",
			Category:      CategoryTransform,
			Description:   "Cuts out a rectangle, clamped to the input bounds.",
			Inputs:        []string{"image"},
			Outputs:       []string{"image"},
			DefaultParams: map[string]any{"x": 0, "y": 0, "width": 640, "height": 360},
		},
		{
			NodeID:        graph.KindBlend.String(),
			DisplayName:   "Blend",
			Category:      CategoryComposite,
			Description:   "Mixes the secondary input over the primary with the given alpha.",
			Inputs:        []string{"primary", "secondary"},
			Outputs:       []string{"image"},
			DefaultParams: map[string]any{"alpha": 0.5},
		},
		{
			NodeID:        graph.KindPreviewDisplay.String(),
			DisplayName:   "Preview Display",
			Category:      CategoryMonitoring,
			Description:   "Preview sink. The first sink that produces an image becomes the preview.",
			Inputs:        []string{"primary", "secondary"},
			Outputs:       []string{},
			DefaultParams: map[string]any{},
		},
	}
}

// Lookup returns the entry for a node type tag.
func Lookup(nodeID string) (Entry, bool) {
	for _, e := range Entries() {
		if e.NodeID == nodeID {
			return e, true
		}
	}
	return Entry{}, false
}
