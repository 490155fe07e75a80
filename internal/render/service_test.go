// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package render

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/nodevision/internal/config"
	"github.com/tomtom215/nodevision/internal/models"
	"github.com/tomtom215/nodevision/internal/proxy"
)

func newTestService(t *testing.T, benchLog string) *Service {
	t.Helper()
	dir := t.TempDir()
	if benchLog != "" {
		if err := os.WriteFile(filepath.Join(dir, "bench.log"), []byte(benchLog), 0o644); err != nil {
			t.Fatalf("write bench log: %v", err)
		}
	}
	s := NewServiceFromConfig(config.PreviewConfig{
		ProjectRoot:       dir,
		BenchLogPath:      filepath.Join(dir, "bench.log"),
		PlaceholderWidth:  1920,
		PlaceholderHeight: 1080,
		DefaultProxyScale: 0.5,
	})
	s.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }
	return s
}

func previewProject(width, height int, meta map[string]any) *models.ProjectGraph {
	if meta == nil {
		meta = map[string]any{}
	}
	return &models.ProjectGraph{
		SchemaVersion:   "1.0.7",
		MediaColorSpace: "Rec.709",
		ProjectFps:      30,
		Nodes: []models.Node{
			{ID: "n1", Type: "MediaInput", Params: map[string]any{
				"placeholderWidth":  width,
				"placeholderHeight": height,
			}},
			{ID: "n2", Type: "ExposureAdjust", Params: map[string]any{"exposure": 0.5},
				Inputs: map[string]any{"video": "n1:video"}},
			{ID: "n3", Type: "PreviewDisplay", Inputs: map[string]any{"primary": "n2:video"}},
		},
		Metadata: meta,
	}
}

func boolPtr(b bool) *bool { return &b }

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		width       int
		height      int
		meta        map[string]any
		force       *bool
		benchLog    string
		wantWidth   int
		wantHeight  int
		wantEnabled bool
		wantReason  proxy.Reason
	}{
		{"1080p auto", 1280, 720, nil, nil, "", 1280, 720, false, proxy.ReasonAuto},
		{"client force on", 1280, 720, map[string]any{"previewProxy": map[string]any{"scale": 0.25}}, boolPtr(true), "", 320, 180, true, proxy.ReasonClientForceOn},
		{"client force off at QHD", 2560, 1440, nil, boolPtr(false), "", 2560, 1440, false, proxy.ReasonClientForceOff},
		{"QHD safeguard", 2560, 1440, nil, nil, "", 1280, 720, true, proxy.ReasonResolutionQHD},
		{"historical delay", 1280, 720, nil, nil, "PREVIEW_DELAY,1280x720,400\nPREVIEW_DELAY,1280x720_proxy,200\n", 640, 360, true, proxy.ReasonHistoricalDelay},
		{"metadata scale 1 keeps size", 640, 480, map[string]any{"previewProxy": map[string]any{"enabled": true, "scale": 1.0}}, nil, "", 640, 480, true, proxy.ReasonProjectMetadataOn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestService(t, tt.benchLog)
			res, err := s.Render(context.Background(), Request{
				Project:    previewProject(tt.width, tt.height, tt.meta),
				ForceProxy: tt.force,
			})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if res.Width != tt.wantWidth || res.Height != tt.wantHeight {
				t.Errorf("output = %dx%d, want %dx%d", res.Width, res.Height, tt.wantWidth, tt.wantHeight)
			}
			if w, h := decodeSize(t, res.PNG); w != res.Width || h != res.Height {
				t.Errorf("png = %dx%d, result says %dx%d", w, h, res.Width, res.Height)
			}
			if res.SourceWidth != tt.width || res.SourceHeight != tt.height {
				t.Errorf("source = %dx%d, want %dx%d", res.SourceWidth, res.SourceHeight, tt.width, tt.height)
			}
			if res.Decision.Enabled != tt.wantEnabled || res.Decision.Reason != tt.wantReason {
				t.Errorf("decision = %+v, want enabled=%v reason=%s", res.Decision, tt.wantEnabled, tt.wantReason)
			}
		})
	}
}

func TestRender_HistoricalAverageReported(t *testing.T) {
	t.Parallel()

	s := newTestService(t, "PREVIEW_DELAY,1280x720,100\nPREVIEW_DELAY,1280x720,140\n")
	res, err := s.Render(context.Background(), Request{Project: previewProject(1280, 720, nil)})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if res.Decision.AverageDelayMs == nil || *res.Decision.AverageDelayMs != 120 {
		t.Errorf("AverageDelayMs = %v, want 120", res.Decision.AverageDelayMs)
	}
	if res.Decision.TargetDelayMs != 150 {
		t.Errorf("TargetDelayMs = %v, want 150", res.Decision.TargetDelayMs)
	}
	if want := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC); !res.GeneratedAt.Equal(want) {
		t.Errorf("GeneratedAt = %v, want %v", res.GeneratedAt, want)
	}
}

func TestRender_EmptyGraphUsesFallback(t *testing.T) {
	t.Parallel()

	s := newTestService(t, "")
	res, err := s.Render(context.Background(), Request{Project: &models.ProjectGraph{}})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if res.SourceWidth != 1920 || res.SourceHeight != 1080 {
		t.Errorf("source = %dx%d, want 1920x1080", res.SourceWidth, res.SourceHeight)
	}
}

func TestRender_NoProject(t *testing.T) {
	t.Parallel()

	s := newTestService(t, "")
	if _, err := s.Render(context.Background(), Request{}); !errors.Is(err, ErrNoProject) {
		t.Errorf("Render() error = %v, want ErrNoProject", err)
	}
}
