// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package imaging

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// LabelSize is the font size used for banner and overlay text.
const LabelSize = 13.0

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

func labelFace() (text.Face, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("load label font: %w", fontErr)
	}
	return fontSource.Face(LabelSize), nil
}

// Canvas draws filled rectangles and text onto a copy of an image.
type Canvas struct {
	dc     *gg.Context
	ascent float64
}

// NewCanvas prepares a canvas over a copy of img. Text drawing is a no-op
// when the bundled font cannot be parsed; rectangles still work.
func NewCanvas(img image.Image) *Canvas {
	dc := gg.NewContextForImage(img)
	c := &Canvas{dc: dc}
	if face, err := labelFace(); err == nil {
		dc.SetFont(face)
		c.ascent = face.Metrics().Ascent
	}
	return c
}

// FillRect fills the rectangle with c, blending when c is translucent.
func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) error {
	c.dc.SetRGBA(
		float64(col.R)/255,
		float64(col.G)/255,
		float64(col.B)/255,
		float64(col.A)/255,
	)
	c.dc.DrawRectangle(x, y, w, h)
	if err := c.dc.Fill(); err != nil {
		return fmt.Errorf("fill rect: %w", err)
	}
	return nil
}

// Text draws s with its top-left corner at (x, top).
func (c *Canvas) Text(s string, x, top float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawString(s, x, top+c.ascent)
}

// Image returns the canvas contents as an opaque RGBA frame.
func (c *Canvas) Image() *image.RGBA {
	return ToRGB(c.dc.Image())
}
