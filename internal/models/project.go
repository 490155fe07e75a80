// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package models

import "math"

// Default frame size used when a project declares no resolution.
const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// MaxFrameSize caps each side of any frame derived from project data.
const MaxFrameSize = 16384

// ProjectGraph is a complete editor project.
type ProjectGraph struct {
	SchemaVersion     string         `json:"schemaVersion" validate:"required"`
	MediaColorSpace   string         `json:"mediaColorSpace" validate:"required"`
	ProjectFps        float64        `json:"projectFps" validate:"gte=0"`
	ProjectResolution *Resolution    `json:"projectResolution,omitempty"`
	Nodes             []Node         `json:"nodes" validate:"dive"`
	Edges             []Edge         `json:"edges" validate:"dive"`
	Assets            []Asset        `json:"assets" validate:"dive"`
	Metadata          map[string]any `json:"metadata"`
}

// Resolution is the declared project frame size. Values arrive as JSON numbers
// and may be fractional or zero.
type Resolution struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Node is a single processing step.
type Node struct {
	ID          string         `json:"id" validate:"required"`
	Type        string         `json:"type" validate:"required"`
	DisplayName string         `json:"displayName,omitempty"`
	Params      map[string]any `json:"params"`
	Inputs      map[string]any `json:"inputs"`
	Outputs     []string       `json:"outputs"`
	CachePolicy string         `json:"cachePolicy,omitempty"`
	Position    *NodePosition  `json:"position,omitempty"`
}

// NodePosition is the editor canvas position. Cosmetic.
type NodePosition struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
}

// Edge is an advisory connection between two node slots.
type Edge struct {
	From     string `json:"from" validate:"required"`
	To       string `json:"to" validate:"required"`
	Disabled *bool  `json:"disabled,omitempty"`
}

// Asset is a media file referenced by MediaInput nodes.
type Asset struct {
	ID         string `json:"id" validate:"required"`
	Path       string `json:"path" validate:"required"`
	Hash       string `json:"hash"`
	ProxyPath  string `json:"proxyPath,omitempty"`
	ColorSpace string `json:"colorSpace,omitempty"`
	BitDepth   *int   `json:"bitDepth,omitempty"`
}

// ProjectSummary is returned by the save and load endpoints.
type ProjectSummary struct {
	Nodes         int     `json:"nodes"`
	Edges         int     `json:"edges"`
	Assets        int     `json:"assets"`
	Fps           float64 `json:"fps"`
	ColorSpace    string  `json:"colorSpace"`
	SchemaVersion string  `json:"schemaVersion"`
}

// FrameSize returns the declared project resolution, falling back to
// 1920x1080 for missing or zero dimensions. Both values lie in
// [1, MaxFrameSize].
func (p *ProjectGraph) FrameSize() (width, height int) {
	return p.FrameSizeOr(DefaultWidth, DefaultHeight)
}

// FrameSizeOr is FrameSize with caller supplied fallbacks.
func (p *ProjectGraph) FrameSizeOr(defaultWidth, defaultHeight int) (width, height int) {
	width, height = defaultWidth, defaultHeight
	if p.ProjectResolution != nil {
		if w := truncate(p.ProjectResolution.Width); w != 0 {
			width = w
		}
		if h := truncate(p.ProjectResolution.Height); h != 0 {
			height = h
		}
	}
	return min(max(width, 1), MaxFrameSize), min(max(height, 1), MaxFrameSize)
}

// Summary returns node, edge and asset counts plus the project header fields.
func (p *ProjectGraph) Summary() ProjectSummary {
	return ProjectSummary{
		Nodes:         len(p.Nodes),
		Edges:         len(p.Edges),
		Assets:        len(p.Assets),
		Fps:           p.ProjectFps,
		ColorSpace:    p.MediaColorSpace,
		SchemaVersion: p.SchemaVersion,
	}
}

// DuplicateNodeID returns the first node id that occurs more than once, or "".
func (p *ProjectGraph) DuplicateNodeID() string {
	seen := make(map[string]struct{}, len(p.Nodes))
	for i := range p.Nodes {
		id := p.Nodes[i].ID
		if _, ok := seen[id]; ok {
			return id
		}
		seen[id] = struct{}{}
	}
	return ""
}

func truncate(v float64) int {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return 0
	case v > MaxFrameSize:
		return MaxFrameSize
	case v < -MaxFrameSize:
		return -MaxFrameSize
	}
	return int(v)
}
