// Package mandel renders the Mandelbrot set into a framebuffer.
//
// The frame is split into equal horizontal bands, one goroutine per band, and
// presented only after every band has been written.
package mandel

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidParams = errors.New("invalid render params")
	ErrFrameMismatch = errors.New("framebuffer size does not match render params")
	ErrWorkerFault   = errors.New("render worker fault")
)

// Viewport places the frame on the complex plane.
//
// Zoom is the plane distance covered by one pixel. PanX/PanY is the plane
// coordinate shown at the centre of the frame.
type Viewport struct {
	Zoom float64
	PanX float64
	PanY float64
}

// Valid reports whether the zoom is positive and every field is finite.
func (v Viewport) Valid() bool {
	if !(v.Zoom > 0) || math.IsInf(v.Zoom, 0) {
		return false
	}
	return !math.IsNaN(v.PanX) && !math.IsInf(v.PanX, 0) &&
		!math.IsNaN(v.PanY) && !math.IsInf(v.PanY, 0)
}

// RenderParams is an immutable snapshot for one RenderFrame call.
type RenderParams struct {
	Viewport      Viewport
	MaxIterations int
	Width         int
	Height        int
}

// Validate checks the params before a frame is scheduled.
func (p RenderParams) Validate() error {
	switch {
	case !p.Viewport.Valid():
		return fmt.Errorf("%w: viewport %+v", ErrInvalidParams, p.Viewport)
	case p.MaxIterations <= 0:
		return fmt.Errorf("%w: max iterations %d", ErrInvalidParams, p.MaxIterations)
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: frame %dx%d", ErrInvalidParams, p.Width, p.Height)
	}
	return nil
}

// MapPixelToPlane converts a pixel position to a point on the complex plane.
func MapPixelToPlane(px, py int, vp Viewport, width, height int) (re, im float64) {
	re = float64(px)*vp.Zoom - float64(width)/2*vp.Zoom + vp.PanX
	im = float64(py)*vp.Zoom - float64(height)/2*vp.Zoom + vp.PanY
	return re, im
}
