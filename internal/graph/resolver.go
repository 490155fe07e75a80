// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

// Package graph resolves a project node graph into a single preview frame.
//
// Resolution walks from the preview sinks back through node inputs. Every
// node is evaluated at most once per Pass and a node that is reached again
// while it is still being evaluated (a cycle) resolves to nil. Missing
// nodes, missing inputs and unknown kinds also resolve to nil; the resolver
// never returns an error.
package graph

import (
	"context"
	"image"
	"image/color"
	"maps"
	"slices"
	"strings"

	"github.com/tomtom215/nodevision/internal/config"
	"github.com/tomtom215/nodevision/internal/imaging"
	"github.com/tomtom215/nodevision/internal/logging"
	"github.com/tomtom215/nodevision/internal/metrics"
	"github.com/tomtom215/nodevision/internal/models"
)

// FallbackColor fills the frame returned when nothing in the graph resolves.
var FallbackColor = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}

// Slots consulted, in order, for a node's main input.
var inputPriority = []string{"primary", "video", "image", "input"}

// Resolver evaluates project graphs. It holds no per-graph state and is safe
// for concurrent use.
type Resolver struct {
	projectRoot       string
	placeholderWidth  int
	placeholderHeight int
	maxFrameSize      int
	load              func(path string) (*image.RGBA, error)
}

// NewResolver creates a resolver. cfg supplies the project root used to
// locate media, the placeholder size used when a project declares no
// resolution, and the per-side cap on frames the graph can ask for.
func NewResolver(cfg config.PreviewConfig) *Resolver {
	limit := cfg.MaxFrameSize
	if limit <= 0 || limit > models.MaxFrameSize {
		limit = models.MaxFrameSize
	}
	limit = max(limit, MinPlaceholderSize)

	w, h := cfg.PlaceholderWidth, cfg.PlaceholderHeight
	if w <= 0 {
		w = models.DefaultWidth
	}
	if h <= 0 {
		h = models.DefaultHeight
	}
	return &Resolver{
		projectRoot:       cfg.ProjectRoot,
		placeholderWidth:  min(w, limit),
		placeholderHeight: min(h, limit),
		maxFrameSize:      limit,
		load:              imaging.Load,
	}
}

// Pass is the state of one resolution: lookups, the memo cache and the set
// of nodes currently being evaluated. A Pass is not safe for concurrent use.
type Pass struct {
	ctx          context.Context
	graph        *models.ProjectGraph
	nodes        map[string]*models.Node
	assets       map[string]*models.Asset
	assetsByPath map[string]*models.Asset
	cache        map[string]*image.RGBA
	inProgress   map[string]struct{}
}

// NewPass indexes graph for a resolution. Duplicate node ids keep the first
// declaration.
func (r *Resolver) NewPass(ctx context.Context, graph *models.ProjectGraph) *Pass {
	p := &Pass{
		ctx:          ctx,
		graph:        graph,
		nodes:        make(map[string]*models.Node, len(graph.Nodes)),
		assets:       make(map[string]*models.Asset, len(graph.Assets)),
		assetsByPath: make(map[string]*models.Asset, len(graph.Assets)),
		cache:        make(map[string]*image.RGBA),
		inProgress:   make(map[string]struct{}),
	}
	for i := range graph.Nodes {
		n := &graph.Nodes[i]
		if _, dup := p.nodes[n.ID]; !dup {
			p.nodes[n.ID] = n
		}
	}
	for i := range graph.Assets {
		a := &graph.Assets[i]
		if _, dup := p.assets[a.ID]; !dup {
			p.assets[a.ID] = a
		}
		if _, dup := p.assetsByPath[a.Path]; !dup {
			p.assetsByPath[a.Path] = a
		}
	}
	return p
}

// Resolve returns the effective output image of graph: the first preview
// sink that produces an image, else the first media source loaded directly,
// else a flat 1920x1080 frame in FallbackColor. The result is never nil.
func (r *Resolver) Resolve(ctx context.Context, graph *models.ProjectGraph) *image.RGBA {
	p := r.NewPass(ctx, graph)
	log := logging.Ctx(ctx)

	for i := range graph.Nodes {
		n := &graph.Nodes[i]
		if !ParseKind(n.Type).IsSink() {
			continue
		}
		if img := r.ResolveNode(p, n.ID); img != nil {
			return img
		}
		log.Debug().Str("node_id", n.ID).Msg("Preview sink produced no image")
	}

	for i := range graph.Nodes {
		n := &graph.Nodes[i]
		if ParseKind(n.Type).IsSource() {
			log.Debug().Str("node_id", n.ID).Msg("No sink resolved, using first media source")
			return r.evalMedia(p, n)
		}
	}

	log.Debug().Msg("Graph has no usable output, using flat fallback frame")
	return imaging.Solid(models.DefaultWidth, models.DefaultHeight, FallbackColor)
}

// ResolveNode evaluates a single node within pass. Results are memoized, so
// resolving the same id twice returns the identical image.
func (r *Resolver) ResolveNode(p *Pass, id string) *image.RGBA {
	if img, ok := p.cache[id]; ok {
		return img
	}
	node, ok := p.nodes[id]
	if !ok {
		return nil
	}
	if _, busy := p.inProgress[id]; busy {
		metrics.RecordCycle()
		logging.Ctx(p.ctx).Warn().Str("node_id", id).Msg("Cycle detected in node graph, ignoring back reference")
		return nil
	}

	p.inProgress[id] = struct{}{}
	img := r.evaluate(p, node)
	delete(p.inProgress, id)

	if img != nil {
		p.cache[id] = img
	}
	return img
}

func (r *Resolver) evaluate(p *Pass, n *models.Node) *image.RGBA {
	kind := ParseKind(n.Type)
	metrics.RecordNodeEvaluation(kind.String())

	switch kind {
	case KindMediaInput:
		return r.evalMedia(p, n)
	case KindExposureAdjust:
		return r.evalExposure(p, n)
	case KindContrastAdjust:
		return r.evalContrast(p, n)
	case KindSaturationAdjust:
		return r.evalSaturation(p, n)
	case KindPreviewDisplay:
		return r.resolveInput(p, n)
	case KindResize:
		return r.evalResize(p, n)
	case KindCrop:
		return r.evalCrop(p, n)
	case KindBlend:
		return r.evalBlend(p, n)
	case KindUnknown:
		logging.Ctx(p.ctx).Debug().Str("node_id", n.ID).Str("type", n.Type).Msg("Unknown node type")
		return nil
	}
	return nil
}

// resolveInput resolves the node's main input.
func (r *Resolver) resolveInput(p *Pass, n *models.Node, exclude ...string) *image.RGBA {
	id := InputNodeID(n.Inputs, exclude...)
	if id == "" {
		return nil
	}
	return r.ResolveNode(p, id)
}

// InputNodeID picks the node id feeding the main input of a node: the first
// of primary, video, image and input that holds a string, else the first
// string in sorted slot order. The first string found decides, so an empty
// reference means "not connected" rather than "look further". Slots named in
// exclude are skipped by the sorted fallback. The ":<outputSlot>" suffix is
// dropped.
func InputNodeID(inputs map[string]any, exclude ...string) string {
	for _, slot := range inputPriority {
		if ref, ok := inputs[slot].(string); ok {
			return refNodeID(ref)
		}
	}

	for _, slot := range slices.Sorted(maps.Keys(inputs)) {
		if slices.Contains(exclude, slot) {
			continue
		}
		if ref, ok := inputs[slot].(string); ok {
			return refNodeID(ref)
		}
	}
	return ""
}

func refNodeID(ref string) string {
	id, _, _ := strings.Cut(ref, ":")
	return id
}
