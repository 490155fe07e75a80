// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

// Package overlay stamps the diagnostic info panel onto rendered previews.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/tomtom215/nodevision/internal/imaging"
	"github.com/tomtom215/nodevision/internal/logging"
	"github.com/tomtom215/nodevision/internal/proxy"
)

// Panel geometry in pixels.
const (
	LineHeight     = 18
	Padding        = 12
	MinPanelHeight = 96
	TextX          = 16
)

var (
	panelFill = color.NRGBA{R: 20, G: 26, B: 46, A: 180}
	textColor = color.RGBA{R: 0xf5, G: 0xf7, B: 0xff, A: 0xff}
)

var reasonLabels = map[proxy.Reason]string{
	proxy.ReasonClientForceOn:      "Renderer override (ON)",
	proxy.ReasonClientForceOff:     "Renderer override (OFF)",
	proxy.ReasonProjectMetadataOn:  "Project setting (enabled)",
	proxy.ReasonProjectMetadataOff: "Project setting (disabled)",
	proxy.ReasonResolution4K:       "Auto: ≥4K safeguard",
	proxy.ReasonResolutionQHD:      "Auto: ≥1440p safeguard",
	proxy.ReasonHistoricalDelay:    "Auto: latency exceeded",
	proxy.ReasonAuto:               "Auto baseline",
}

// ReasonLabel returns the human readable text for a decision reason.
// Unknown reasons are returned verbatim.
func ReasonLabel(r proxy.Reason) string {
	if label, ok := reasonLabels[r]; ok {
		return label
	}
	return string(r)
}

// Info is what the panel reports about one render.
type Info struct {
	SourceWidth  int
	SourceHeight int
	Decision     proxy.Decision
	// FPS is printed with at least one decimal: 30.0, 29.97.
	FPS float64
	At  time.Time
}

// Lines returns the panel text, top to bottom.
func Lines(info Info) []string {
	state := "OFF"
	if info.Decision.Enabled {
		state = "ON"
	}
	lines := []string{
		"NodeVision Preview",
		fmt.Sprintf("Source: %dx%d", info.SourceWidth, info.SourceHeight),
		fmt.Sprintf("Proxy: %s (%.2fx)", state, info.Decision.Scale),
		"Reason: " + ReasonLabel(info.Decision.Reason),
	}
	if info.Decision.TargetDelayMs > 0 {
		lines = append(lines, fmt.Sprintf("Target Delay: %.0fms", info.Decision.TargetDelayMs))
	}
	if avg := info.Decision.AverageDelayMs; avg != nil {
		lines = append(lines, fmt.Sprintf("Avg Delay: %.1fms", *avg))
	}
	lines = append(lines,
		"FPS: "+formatFPS(info.FPS),
		info.At.UTC().Format("2006-01-02 15:04:05")+"Z",
	)
	return lines
}

func formatFPS(fps float64) string {
	s := strconv.FormatFloat(fps, 'f', -1, 64)
	if math.IsNaN(fps) || math.IsInf(fps, 0) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// PanelHeight is the panel height for n lines on an image of height imgH.
func PanelHeight(n, imgH int) int {
	return min(imgH, max(MinPanelHeight, LineHeight*n+2*Padding))
}

// Renderer draws the panel.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Stamp returns a copy of img with the panel drawn across the bottom.
// Pixels above the panel are left untouched. img itself is not modified.
func (r *Renderer) Stamp(img image.Image, info Info) *image.RGBA {
	out := imaging.ToRGB(img)
	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	if w == 0 || h == 0 {
		return out
	}

	lines := Lines(info)
	panelH := PanelHeight(len(lines), h)
	top := h - panelH

	region := image.Rect(0, top, w, h)
	strip, ok := imaging.Crop(out, region)
	if !ok {
		return out
	}
	canvas := imaging.NewCanvas(strip)
	if err := canvas.FillRect(0, 0, float64(w), float64(panelH), panelFill); err != nil {
		logging.Warn().Err(err).Msg("Overlay panel fill failed, returning frame without overlay")
		return out
	}
	y := float64(Padding)
	for _, line := range lines {
		canvas.Text(line, TextX, y, textColor)
		y += LineHeight
	}

	xdraw.Draw(out, region, canvas.Image(), image.Point{}, xdraw.Src)
	return out
}
