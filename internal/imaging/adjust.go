// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package imaging

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// Color enhancement follows the classic "interpolate against a degenerate
// image" model: out = degenerate + factor*(src - degenerate), clamped to
// [0,255]. A factor of 1 returns the input unchanged.

// Luma weights (ITU-R 601-2).
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Brightness scales every channel by factor (degenerate image is black).
func Brightness(src *image.RGBA, factor float64) *image.RGBA {
	return mapPixels(src, func(r, g, b float64) (float64, float64, float64) {
		return r * factor, g * factor, b * factor
	})
}

// Contrast pushes channels away from (factor > 1) or towards (factor < 1) the
// mean luminance of the whole image. Factor 0 yields a flat gray frame.
func Contrast(src *image.RGBA, factor float64) *image.RGBA {
	mean := math.Floor(MeanLuma(src) + 0.5)
	return mapPixels(src, func(r, g, b float64) (float64, float64, float64) {
		return mean + factor*(r-mean), mean + factor*(g-mean), mean + factor*(b-mean)
	})
}

// Saturation interpolates each pixel against its own luminance.
// Factor 0 yields grayscale.
func Saturation(src *image.RGBA, factor float64) *image.RGBA {
	return mapPixels(src, func(r, g, b float64) (float64, float64, float64) {
		l := math.Floor(lumaR*r + lumaG*g + lumaB*b + 0.5)
		return l + factor*(r-l), l + factor*(g-l), l + factor*(b-l)
	})
}

// Blend draws b over a at the given opacity, which for opaque frames is
// a*(1-alpha) + b*alpha. b is resized to a's dimensions first when they
// differ. An alpha of 0 returns a copy of a.
func Blend(a, b *image.RGBA, alpha float64) *image.RGBA {
	if alpha <= 0 || math.IsNaN(alpha) {
		return ToRGB(a)
	}
	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	if b.Bounds().Dx() != w || b.Bounds().Dy() != h {
		b = Resize(b, w, h)
	}

	dc := gg.NewContextForImage(a)
	defer func() { _ = dc.Close() }()
	// gg reads Opacity 0 as fully opaque; alpha is positive here.
	dc.DrawImageEx(gg.ImageBufFromImage(b), gg.DrawImageOptions{
		DstWidth:      float64(w),
		DstHeight:     float64(h),
		Interpolation: gg.InterpNearest,
		Opacity:       min(alpha, 1),
		BlendMode:     gg.BlendNormal,
	})
	return ToRGB(dc.Image())
}

// MeanLuma returns the average luminance of img in [0,255].
func MeanLuma(img *image.RGBA) float64 {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return 0
	}
	var sum float64
	for y := 0; y < h; y++ {
		i := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		for x := 0; x < w; x++ {
			r, g, b := float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])
			sum += math.Floor(lumaR*r + lumaG*g + lumaB*b + 0.5)
			i += 4
		}
	}
	return sum / float64(w*h)
}

func mapPixels(src *image.RGBA, fn func(r, g, b float64) (float64, float64, float64)) *image.RGBA {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		si := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		di := dst.PixOffset(0, y)
		for x := 0; x < w; x++ {
			r, g, b := fn(float64(src.Pix[si]), float64(src.Pix[si+1]), float64(src.Pix[si+2]))
			dst.Pix[di+0] = clamp8(r)
			dst.Pix[di+1] = clamp8(g)
			dst.Pix[di+2] = clamp8(b)
			dst.Pix[di+3] = 0xff
			si += 4
			di += 4
		}
	}
	return dst
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
