// Package view implements the world-to-screen mapping for the puzzled
// editor: a zoomable, pannable viewport over the lattice world, clamped to
// the world bounds.
//
// The viewport is represented by its world-space center and a zoom scalar.
// Zoom is screen pixels per world unit, so the visible world extent is the
// canvas pixel size divided by zoom. Center+extent (rather than
// top-left+extent) keeps clamping symmetric and makes zoom-about-center
// trivial.
package view

import "math"

// Limits bounds the zoom scalar. Zoom requests outside the range are clamped.
type Limits struct {
	MinZoom float64
	MaxZoom float64
}

// zoomStep is the multiplicative factor applied by ZoomIn and ZoomOut.
const zoomStep = 1.2

// Viewport maps a world-space rectangle onto the canvas pixel rectangle.
// It owns its four numeric fields exclusively; canvas pixel dimensions are
// derived from the hosting surface on resize and are not persisted.
//
// The zero value is not usable; use New.
type Viewport struct {
	fullW, fullH float64 // world bounds including border margin
	limits       Limits

	cx, cy   float64 // world-space center
	zoom     float64 // screen pixels per world unit
	pxW, pxH float64 // canvas pixel dimensions

	centered bool // center has been set at least once
}

// New creates a viewport over a world of the given full extent, with the
// initial zoom clamped into lim. The center is unset until the first Resize,
// which aligns the world top-left with the screen top-left.
func New(fullW, fullH, zoom float64, lim Limits) *Viewport {
	v := &Viewport{fullW: fullW, fullH: fullH, limits: lim}
	v.zoom = v.clampZoom(zoom)
	return v
}

// Resize records new canvas pixel dimensions and re-clamps the center.
// On the first call the center defaults to (w/2, h/2), placing the world's
// top-left corner at the screen's top-left corner.
func (v *Viewport) Resize(pxW, pxH float64) {
	v.pxW, v.pxH = pxW, pxH
	if !v.centered {
		v.cx, v.cy = v.W()/2, v.H()/2
		v.centered = true
	}
	v.clamp()
}

// W returns the visible world width.
func (v *Viewport) W() float64 { return v.pxW / v.zoom }

// H returns the visible world height.
func (v *Viewport) H() float64 { return v.pxH / v.zoom }

// Zoom returns the current zoom scalar (screen pixels per world unit).
func (v *Viewport) Zoom() float64 { return v.zoom }

// Center returns the world-space center of the viewport.
func (v *Viewport) Center() (cx, cy float64) { return v.cx, v.cy }

// PixelSize returns the canvas pixel dimensions from the last Resize.
func (v *Viewport) PixelSize() (pxW, pxH float64) { return v.pxW, v.pxH }

// PixelsPerWorld returns the screen-pixel length of one world unit.
func (v *Viewport) PixelsPerWorld() float64 { return v.zoom }

// Pan moves the center by a world-space delta, clamping each axis
// independently.
func (v *Viewport) Pan(dx, dy float64) {
	v.cx += dx
	v.cy += dy
	v.clamp()
}

// SetCenter moves the center to a world-space position, clamping. Restoring
// a persisted viewport and drag-panning from a gesture origin both land here.
func (v *Viewport) SetCenter(cx, cy float64) {
	v.cx, v.cy = cx, cy
	v.centered = true
	v.clamp()
}

// ZoomTo sets the zoom scalar, clamped into the configured limits, and
// re-clamps the center for the new extent.
func (v *Viewport) ZoomTo(zoom float64) {
	v.zoom = v.clampZoom(zoom)
	v.clamp()
}

// ZoomIn magnifies by one step.
func (v *Viewport) ZoomIn() { v.ZoomTo(v.zoom * zoomStep) }

// ZoomOut widens by one step.
func (v *Viewport) ZoomOut() { v.ZoomTo(v.zoom / zoomStep) }

// PanStep returns the world-space distance a single keyboard pan moves:
// 6% of the smaller visible extent, floored at 10 world units.
func (v *Viewport) PanStep() float64 {
	return math.Max(10, 0.06*math.Min(v.W(), v.H()))
}

// WorldToScreen maps a world-space point to canvas pixel coordinates.
func (v *Viewport) WorldToScreen(x, y float64) (sx, sy float64) {
	l := v.cx - v.W()/2
	t := v.cy - v.H()/2
	return (x - l) / v.W() * v.pxW, (y - t) / v.H() * v.pxH
}

// ScreenToWorld maps canvas pixel coordinates to a world-space point.
// It is the exact inverse of WorldToScreen up to floating-point rounding.
func (v *Viewport) ScreenToWorld(sx, sy float64) (x, y float64) {
	l := v.cx - v.W()/2
	t := v.cy - v.H()/2
	return l + sx/v.pxW*v.W(), t + sy/v.pxH*v.H()
}

func (v *Viewport) clampZoom(z float64) float64 {
	return math.Max(v.limits.MinZoom, math.Min(v.limits.MaxZoom, z))
}

// clamp keeps the visible rectangle inside the world bounds. When an axis
// extent exceeds the world, that axis is centered instead.
func (v *Viewport) clamp() {
	v.cx = clampAxis(v.cx, v.W(), v.fullW)
	v.cy = clampAxis(v.cy, v.H(), v.fullH)
}

func clampAxis(c, extent, full float64) float64 {
	if extent >= full {
		return full / 2
	}
	return math.Max(extent/2, math.Min(full-extent/2, c))
}
