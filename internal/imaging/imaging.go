// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

// Package imaging holds the raster primitives used by the preview pipeline.
//
// Every function returns a fresh *image.RGBA with an origin of (0,0) and fully
// opaque pixels, so callers can treat results as plain RGB frames. Inputs are
// never modified.
//
// Decoding goes through github.com/gogpu/gg (PNG, JPEG and, with the
// golang.org/x/image decoders registered here, WebP, BMP and TIFF). Drawing
// of panels and text uses a gg.Context, see Canvas.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/gogpu/gg"

	// Extra decoders picked up by gg's content sniffing.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned for zero-area images.
var ErrEmptyImage = errors.New("imaging: empty image")

// Load decodes the image file at path into an opaque RGBA frame.
// Alpha is discarded, not composited.
func Load(path string) (*image.RGBA, error) {
	buf, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	img := buf.ToStdImage()
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("load %s: %w", path, ErrEmptyImage)
	}
	return ToRGB(img), nil
}

// ToRGB copies src into a new opaque RGBA image anchored at (0,0).
func ToRGB(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	switch s := src.(type) {
	case *image.RGBA:
		for y := 0; y < b.Dy(); y++ {
			si := s.PixOffset(b.Min.X, b.Min.Y+y)
			di := dst.PixOffset(0, y)
			for x := 0; x < b.Dx(); x++ {
				r, g, bl, a := s.Pix[si+0], s.Pix[si+1], s.Pix[si+2], s.Pix[si+3]
				if a != 0xff && a != 0 {
					r = uint8(uint32(r) * 0xff / uint32(a))
					g = uint8(uint32(g) * 0xff / uint32(a))
					bl = uint8(uint32(bl) * 0xff / uint32(a))
				}
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = bl
				dst.Pix[di+3] = 0xff
				si += 4
				di += 4
			}
		}
	case *image.NRGBA:
		for y := 0; y < b.Dy(); y++ {
			si := s.PixOffset(b.Min.X, b.Min.Y+y)
			di := dst.PixOffset(0, y)
			for x := 0; x < b.Dx(); x++ {
				dst.Pix[di+0] = s.Pix[si+0]
				dst.Pix[di+1] = s.Pix[si+1]
				dst.Pix[di+2] = s.Pix[si+2]
				dst.Pix[di+3] = 0xff
				si += 4
				di += 4
			}
		}
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i+0] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = 0xff
			}
		}
	}
	return dst
}

// Solid returns a width x height image filled with c (alpha forced to 255).
func Solid(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	c.A = 0xff
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// VerticalGradient fills each row with row(t), t running from 0 at the top
// row to 1 at the bottom row.
func VerticalGradient(width, height int, row func(t float64) color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	denom := float64(max(height-1, 1))
	for y := 0; y < height; y++ {
		c := row(float64(y) / denom)
		off := y * img.Stride
		for x := 0; x < width; x++ {
			i := off + x*4
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = 0xff
		}
	}
	return img
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
