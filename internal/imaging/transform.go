// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package imaging

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Resize scales src to exactly width x height with Catmull-Rom filtering.
// Sizes below 1 are raised to 1.
func Resize(src image.Image, width, height int) *image.RGBA {
	width, height = max(width, 1), max(height, 1)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		xdraw.Copy(dst, image.Point{}, src, b, xdraw.Src, nil)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// FitSize returns the largest size with the aspect ratio of srcW x srcH that
// fits inside boxW x boxH. Results are rounded and at least 1.
func FitSize(srcW, srcH, boxW, boxH int) (width, height int) {
	if srcW < 1 || srcH < 1 {
		return max(boxW, 1), max(boxH, 1)
	}
	scale := math.Min(float64(boxW)/float64(srcW), float64(boxH)/float64(srcH))
	width = max(int(math.Round(float64(srcW)*scale)), 1)
	height = max(int(math.Round(float64(srcH)*scale)), 1)
	return width, height
}

// ScaleSize multiplies both dimensions by scale, rounding and flooring at 1.
func ScaleSize(width, height int, scale float64) (int, int) {
	return max(int(math.Round(float64(width)*scale)), 1),
		max(int(math.Round(float64(height)*scale)), 1)
}

// Crop copies the part of src inside r, with r in src-relative coordinates
// (origin at the top-left pixel). It reports false when r does not overlap src.
func Crop(src image.Image, r image.Rectangle) (*image.RGBA, bool) {
	b := src.Bounds()
	abs := r.Add(b.Min).Intersect(b)
	if abs.Empty() {
		return nil, false
	}
	dst := image.NewRGBA(image.Rect(0, 0, abs.Dx(), abs.Dy()))
	xdraw.Copy(dst, image.Point{}, src, abs, xdraw.Src, nil)
	return dst, true
}
