// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package graph

import (
	"image"

	"github.com/tomtom215/nodevision/internal/imaging"
	"github.com/tomtom215/nodevision/internal/models"
)

func (r *Resolver) evalExposure(p *Pass, n *models.Node) *image.RGBA {
	src := r.resolveInput(p, n)
	if src == nil {
		return nil
	}
	return imaging.Brightness(src, parseExposure(n.Params).Factor())
}

func (r *Resolver) evalContrast(p *Pass, n *models.Node) *image.RGBA {
	src := r.resolveInput(p, n)
	if src == nil {
		return nil
	}
	return imaging.Contrast(src, parseContrast(n.Params).Contrast)
}

func (r *Resolver) evalSaturation(p *Pass, n *models.Node) *image.RGBA {
	src := r.resolveInput(p, n)
	if src == nil {
		return nil
	}
	return imaging.Saturation(src, parseSaturation(n.Params).Saturation)
}

func (r *Resolver) evalResize(p *Pass, n *models.Node) *image.RGBA {
	src := r.resolveInput(p, n)
	if src == nil {
		return nil
	}
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	opts := parseResize(n.Params, sw, sh, r.maxFrameSize)
	w, h := opts.Width, opts.Height
	if opts.KeepAspect {
		w, h = imaging.FitSize(sw, sh, w, h)
	}
	return imaging.Resize(src, w, h)
}

func (r *Resolver) evalCrop(p *Pass, n *models.Node) *image.RGBA {
	src := r.resolveInput(p, n)
	if src == nil {
		return nil
	}
	opts := parseCrop(n.Params, src.Bounds().Dx(), src.Bounds().Dy())
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil
	}
	rect := image.Rect(opts.X, opts.Y, opts.X+opts.Width, opts.Y+opts.Height)
	out, ok := imaging.Crop(src, rect)
	if !ok {
		return nil
	}
	return out
}

// evalBlend mixes the secondary input over the main one. The secondary slot
// never stands in for a missing main input.
func (r *Resolver) evalBlend(p *Pass, n *models.Node) *image.RGBA {
	primary := r.resolveInput(p, n, "secondary")
	if primary == nil {
		return nil
	}
	ref, _ := n.Inputs["secondary"].(string)
	if ref == "" {
		return primary
	}
	secondary := r.ResolveNode(p, refNodeID(ref))
	if secondary == nil {
		return primary
	}
	return imaging.Blend(primary, secondary, parseBlend(n.Params).Alpha)
}
