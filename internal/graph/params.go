// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package graph

import (
	"math"

	"github.com/tomtom215/nodevision/internal/params"
)

// Parse-or-default helpers. A missing key or a value of the wrong shape
// yields def; nothing here ever fails.

func paramFloat(p map[string]any, key string, def float64) float64 {
	if v, ok := params.Float(p[key]); ok {
		return v
	}
	return def
}

func paramInt(p map[string]any, key string, def int) int {
	if v, ok := params.Int(p[key]); ok {
		return v
	}
	return def
}

func paramBool(p map[string]any, key string, def bool) bool {
	if v, ok := params.Bool(p[key]); ok {
		return v
	}
	return def
}

func paramString(p map[string]any, key, def string) string {
	if v, ok := params.String(p[key]); ok && v != "" {
		return v
	}
	return def
}

// Typed options, one struct per parameterised kind.

type exposureOptions struct {
	Exposure float64
}

func parseExposure(p map[string]any) exposureOptions {
	return exposureOptions{Exposure: params.Clamp(paramFloat(p, "exposure", 0), -4, 4)}
}

// Factor is the brightness multiplier, 2^exposure.
func (o exposureOptions) Factor() float64 {
	return math.Pow(2, o.Exposure)
}

type contrastOptions struct {
	Contrast float64
}

func parseContrast(p map[string]any) contrastOptions {
	return contrastOptions{Contrast: params.Clamp(paramFloat(p, "contrast", 1), 0, 4)}
}

type saturationOptions struct {
	Saturation float64
}

func parseSaturation(p map[string]any) saturationOptions {
	return saturationOptions{Saturation: params.Clamp(paramFloat(p, "saturation", 1), 0, 4)}
}

type resizeOptions struct {
	Width, Height int
	KeepAspect    bool
}

// parseResize defaults the box to the input size and clamps each side to
// [1, limit].
func parseResize(p map[string]any, srcW, srcH, limit int) resizeOptions {
	return resizeOptions{
		Width:      min(max(paramInt(p, "width", srcW), 1), limit),
		Height:     min(max(paramInt(p, "height", srcH), 1), limit),
		KeepAspect: paramBool(p, "keepAspectRatio", true),
	}
}

type cropOptions struct {
	X, Y, Width, Height int
}

func parseCrop(p map[string]any, srcW, srcH int) cropOptions {
	return cropOptions{
		X:      paramInt(p, "x", 0),
		Y:      paramInt(p, "y", 0),
		Width:  paramInt(p, "width", srcW),
		Height: paramInt(p, "height", srcH),
	}
}

type blendOptions struct {
	Alpha float64
}

func parseBlend(p map[string]any) blendOptions {
	return blendOptions{Alpha: params.Clamp(paramFloat(p, "alpha", 0.5), 0, 1)}
}

type mediaOptions struct {
	Path    string
	AssetID string
	// Zero means unset.
	PlaceholderWidth  int
	PlaceholderHeight int
}

func parseMedia(p map[string]any) mediaOptions {
	return mediaOptions{
		Path:              paramString(p, "path", ""),
		AssetID:           paramString(p, "assetId", ""),
		PlaceholderWidth:  paramInt(p, "placeholderWidth", 0),
		PlaceholderHeight: paramInt(p, "placeholderHeight", 0),
	}
}
