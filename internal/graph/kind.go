// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package graph

// Kind is the closed set of node types the resolver knows how to evaluate.
type Kind int

// Node kinds.
const (
	KindUnknown Kind = iota
	KindMediaInput
	KindExposureAdjust
	KindContrastAdjust
	KindSaturationAdjust
	KindPreviewDisplay
	KindResize
	KindCrop
	KindBlend
)

var kindNames = map[Kind]string{
	KindMediaInput:       "MediaInput",
	KindExposureAdjust:   "ExposureAdjust",
	KindContrastAdjust:   "ContrastAdjust",
	KindSaturationAdjust: "SaturationAdjust",
	KindPreviewDisplay:   "PreviewDisplay",
	KindResize:           "Resize",
	KindCrop:             "Crop",
	KindBlend:            "Blend",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// ParseKind maps a node type tag to its Kind. Matching is exact.
func ParseKind(tag string) Kind {
	if k, ok := kindsByName[tag]; ok {
		return k
	}
	return KindUnknown
}

// String returns the type tag, or "unknown".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsSink reports whether nodes of this kind are preview outputs.
func (k Kind) IsSink() bool {
	return k == KindPreviewDisplay
}

// IsSource reports whether nodes of this kind produce images without inputs.
func (k Kind) IsSource() bool {
	return k == KindMediaInput
}
