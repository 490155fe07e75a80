// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package graph

import (
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/tomtom215/nodevision/internal/imaging"
	"github.com/tomtom215/nodevision/internal/logging"
	"github.com/tomtom215/nodevision/internal/metrics"
	"github.com/tomtom215/nodevision/internal/models"
)

// Placeholder geometry.
const (
	MinPlaceholderSize = 64
	BannerHeight       = 36
)

var (
	bannerFill = color.NRGBA{R: 20, G: 26, B: 46, A: 192}
	bannerText = color.RGBA{R: 0xf5, G: 0xf7, B: 0xff, A: 0xff}
)

// evalMedia loads the node's media file or, failing that, draws a labelled
// gradient placeholder. It never returns nil.
func (r *Resolver) evalMedia(p *Pass, n *models.Node) *image.RGBA {
	opts := parseMedia(n.Params)
	log := logging.Ctx(p.ctx)

	for _, path := range r.mediaPaths(p, opts) {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		img, err := r.load(path)
		if err != nil {
			log.Debug().Err(err).Str("node_id", n.ID).Str("path", path).Msg("Media decode failed, trying next candidate")
			continue
		}
		return img
	}

	metrics.RecordPlaceholder()
	log.Debug().Str("node_id", n.ID).Str("path", opts.Path).Msg("Media source unavailable, using placeholder")
	return r.placeholder(p, n, opts)
}

// mediaPaths lists the filesystem locations to try, in order, without
// duplicates: params.path, then the asset's path and proxy path. Each
// reference is tried as given, under the working directory and under the
// project root.
func (r *Resolver) mediaPaths(p *Pass, opts mediaOptions) []string {
	refs := make([]string, 0, 3)
	if opts.Path != "" {
		refs = append(refs, opts.Path)
	}
	var asset *models.Asset
	if opts.AssetID != "" {
		asset = p.assets[opts.AssetID]
	}
	if asset == nil && opts.Path != "" {
		asset = p.assetsByPath[opts.Path]
	}
	if asset != nil {
		for _, ref := range []string{asset.Path, asset.ProxyPath} {
			if ref != "" {
				refs = append(refs, ref)
			}
		}
	}

	cwd, _ := os.Getwd()
	seen := make(map[string]struct{})
	paths := make([]string, 0, len(refs)*3)
	add := func(path string) {
		path = filepath.Clean(path)
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}
	for _, ref := range refs {
		add(ref)
		if filepath.IsAbs(ref) {
			continue
		}
		if cwd != "" {
			add(filepath.Join(cwd, ref))
		}
		if r.projectRoot != "" {
			add(filepath.Join(r.projectRoot, ref))
		}
	}
	return paths
}

// PlaceholderSize returns the placeholder dimensions for a media node: the
// placeholderWidth/Height params, else the project resolution, else the
// configured default, kept within [MinPlaceholderSize, max frame size].
func (r *Resolver) PlaceholderSize(graph *models.ProjectGraph, nodeParams map[string]any) (width, height int) {
	opts := parseMedia(nodeParams)
	return r.placeholderSize(graph, opts)
}

func (r *Resolver) placeholderSize(graph *models.ProjectGraph, opts mediaOptions) (width, height int) {
	fw, fh := r.placeholderWidth, r.placeholderHeight
	if graph != nil {
		fw, fh = graph.FrameSizeOr(fw, fh)
	}
	width, height = opts.PlaceholderWidth, opts.PlaceholderHeight
	if width == 0 {
		width = fw
	}
	if height == 0 {
		height = fh
	}
	return r.clampFrame(width), r.clampFrame(height)
}

func (r *Resolver) clampFrame(side int) int {
	return min(max(side, MinPlaceholderSize), r.maxFrameSize)
}

func (r *Resolver) placeholder(p *Pass, n *models.Node, opts mediaOptions) *image.RGBA {
	w, h := r.placeholderSize(p.graph, opts)
	img := imaging.VerticalGradient(w, h, placeholderRow)

	canvas := imaging.NewCanvas(img)
	if err := canvas.FillRect(0, 0, float64(w), BannerHeight, bannerFill); err != nil {
		logging.Ctx(p.ctx).Debug().Err(err).Msg("Placeholder banner fill failed")
		return img
	}
	canvas.Text(placeholderLabel(n, opts), 12, 12, bannerText)
	return canvas.Image()
}

func placeholderRow(t float64) color.RGBA {
	return color.RGBA{
		R: uint8(48 + 96*t),
		G: uint8(80 + 100*(1-t)),
		B: uint8(120 + 50*math.Sin(math.Pi*t)),
		A: 0xff,
	}
}

func placeholderLabel(n *models.Node, opts mediaOptions) string {
	switch {
	case n.DisplayName != "":
		return n.DisplayName
	case opts.Path != "":
		return opts.Path
	case opts.AssetID != "":
		return opts.AssetID
	default:
		return "Media Placeholder"
	}
}
