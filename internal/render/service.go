// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

// Package render produces preview frames: resolve the graph, decide on a
// proxy, downscale, stamp the diagnostic overlay and encode as PNG.
package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/nodevision/internal/config"
	"github.com/tomtom215/nodevision/internal/graph"
	"github.com/tomtom215/nodevision/internal/imaging"
	"github.com/tomtom215/nodevision/internal/latency"
	"github.com/tomtom215/nodevision/internal/logging"
	"github.com/tomtom215/nodevision/internal/metrics"
	"github.com/tomtom215/nodevision/internal/models"
	"github.com/tomtom215/nodevision/internal/overlay"
	"github.com/tomtom215/nodevision/internal/proxy"
)

// ErrNoProject is returned when a request carries no project.
var ErrNoProject = errors.New("render: no project")

// Request is one preview render.
type Request struct {
	Project *models.ProjectGraph
	// ForceProxy overrides the proxy decision when set.
	ForceProxy *bool
}

// Result holds the rendered preview and what was decided along the way.
type Result struct {
	PNG          []byte
	Width        int
	Height       int
	SourceWidth  int
	SourceHeight int
	Decision     proxy.Decision
	GeneratedAt  time.Time
}

// Service renders previews. It is safe for concurrent use.
type Service struct {
	resolver *graph.Resolver
	engine   *proxy.Engine
	overlay  *overlay.Renderer
	now      func() time.Time
}

// NewService wires a service from explicit components.
func NewService(resolver *graph.Resolver, engine *proxy.Engine, renderer *overlay.Renderer) *Service {
	return &Service{
		resolver: resolver,
		engine:   engine,
		overlay:  renderer,
		now:      time.Now,
	}
}

// NewServiceFromConfig builds the resolver, the proxy engine (reading
// history from cfg.BenchLogPath) and the overlay renderer.
func NewServiceFromConfig(cfg config.PreviewConfig) *Service {
	return NewService(
		graph.NewResolver(cfg),
		proxy.NewEngine(latency.NewHistory(cfg.BenchLogPath), cfg.DefaultProxyScale),
		overlay.NewRenderer(),
	)
}

// Render produces the preview for req. The only failure after a project is
// supplied is PNG encoding.
func (s *Service) Render(ctx context.Context, req Request) (*Result, error) {
	if req.Project == nil {
		return nil, ErrNoProject
	}
	start := time.Now()
	defer func() { metrics.RecordPreviewRender(time.Since(start)) }()

	src := s.resolver.Resolve(ctx, req.Project)
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()

	decision := s.engine.Decide(req.Project, sw, sh, req.ForceProxy)

	frame := src
	if decision.Enabled {
		if pw, ph := imaging.ScaleSize(sw, sh, decision.Scale); pw != sw || ph != sh {
			frame = imaging.Resize(src, pw, ph)
		}
	}

	at := s.now().UTC()
	stamped := s.overlay.Stamp(frame, overlay.Info{
		SourceWidth:  sw,
		SourceHeight: sh,
		Decision:     decision,
		FPS:          req.Project.ProjectFps,
		At:           at,
	})

	data, err := imaging.EncodePNG(stamped)
	if err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}

	res := &Result{
		PNG:          data,
		Width:        stamped.Bounds().Dx(),
		Height:       stamped.Bounds().Dy(),
		SourceWidth:  sw,
		SourceHeight: sh,
		Decision:     decision,
		GeneratedAt:  at,
	}
	logging.Ctx(ctx).Debug().
		Int("width", res.Width).
		Int("height", res.Height).
		Bool("proxy", decision.Enabled).
		Str("reason", string(decision.Reason)).
		Dur("duration", time.Since(start)).
		Msg("Preview rendered")
	return res, nil
}
