// Package viewport maps raster pixels onto a rectangular region of the
// complex plane and derives new regions from zoom selections.
package viewport

import (
	"errors"
	"fmt"
	"math"
)

// Default bounds of the complex-plane square shown before any zoom.
const (
	DefaultReMin = -2.0
	DefaultReMax = 2.0
	DefaultImMin = -2.0
	DefaultImMax = 2.0
)

// MinSelection is the smallest selection edge, in pixels, accepted by Zoom.
const MinSelection = 1.0

// ErrDegenerateViewport reports a region with no area or an unusable raster.
var ErrDegenerateViewport = errors.New("degenerate viewport")

// Viewport is the region of the complex plane mapped onto a Width×Height
// raster. It is a value type: operations return new viewports.
type Viewport struct {
	ReMin, ReMax float64
	ImMin, ImMax float64
	Width        int
	Height       int
}

// SelectionRect is a rectangle in pixel space, origin at the top-left corner.
type SelectionRect struct {
	X, Y float64
	W, H float64
}

// Default returns the [-2,2]×[-2,2] square bound to a width×height raster.
func Default(width, height int) Viewport {
	return Viewport{
		ReMin:  DefaultReMin,
		ReMax:  DefaultReMax,
		ImMin:  DefaultImMin,
		ImMax:  DefaultImMax,
		Width:  width,
		Height: height,
	}
}

// Reset discards any zoom applied to v and returns the default bounds for
// the same raster.
func Reset(v Viewport) Viewport {
	return Default(v.Width, v.Height)
}

// Validate reports ErrDegenerateViewport when v cannot be evaluated.
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: raster %dx%d", ErrDegenerateViewport, v.Width, v.Height)
	}
	for _, f := range [...]float64{v.ReMin, v.ReMax, v.ImMin, v.ImMax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite bound", ErrDegenerateViewport)
		}
	}
	if !(v.ReMax > v.ReMin) {
		return fmt.Errorf("%w: real extent [%g, %g]", ErrDegenerateViewport, v.ReMin, v.ReMax)
	}
	if !(v.ImMax > v.ImMin) {
		return fmt.Errorf("%w: imaginary extent [%g, %g]", ErrDegenerateViewport, v.ImMin, v.ImMax)
	}
	return nil
}

// Steps returns the complex-plane distance between neighbouring pixels.
// The imaginary step is negative because screen y grows downwards.
func (v Viewport) Steps() (dRe, dIm float64) {
	return (v.ReMax - v.ReMin) / float64(v.Width), (v.ImMin - v.ImMax) / float64(v.Height)
}

// PixelToComplex maps the pixel (x, y) to the complex coordinate re + im·i.
func (v Viewport) PixelToComplex(x, y float64) (re, im float64) {
	dRe, dIm := v.Steps()
	return v.ReMin + x*dRe, v.ImMax + y*dIm
}

// Zoom maps the corners of rect through v and returns the region they span.
// The top edge becomes ImMax and the bottom edge ImMin. v is never modified;
// on error the caller keeps its current viewport.
func Zoom(rect SelectionRect, v Viewport) (Viewport, error) {
	if err := v.Validate(); err != nil {
		return v, err
	}
	if math.IsNaN(rect.X) || math.IsNaN(rect.Y) || !(rect.W >= MinSelection) || !(rect.H >= MinSelection) {
		return v, fmt.Errorf("%w: selection %gx%g is below %g pixel", ErrDegenerateViewport, rect.W, rect.H, MinSelection)
	}
	reMin, imMax := v.PixelToComplex(rect.X, rect.Y)
	reMax, imMin := v.PixelToComplex(rect.X+rect.W, rect.Y+rect.H)
	next := Viewport{
		ReMin:  reMin,
		ReMax:  reMax,
		ImMin:  imMin,
		ImMax:  imMax,
		Width:  v.Width,
		Height: v.Height,
	}
	if err := next.Validate(); err != nil {
		return v, fmt.Errorf("zoom: %w", err)
	}
	return next, nil
}
