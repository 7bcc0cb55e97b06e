package app

import (
	"fmt"
	"math"
	"runtime"

	"mandelview/mandel"
)

// Config holds the viewer settings.
type Config struct {
	Width  int
	Height int

	Zoom          float64
	PanX          float64
	PanY          float64
	MaxIterations int

	// PanStep is how far one arrow press moves, in pixels.
	PanStep    float64
	ZoomFactor float64
	IterStep   int

	Workers         int
	Palette         string
	Region          string
	CountFromOrigin bool
}

// DefaultConfig returns the stock 640x480 view of the whole set.
func DefaultConfig() Config {
	return Config{
		Width:         640,
		Height:        480,
		Zoom:          0.004,
		MaxIterations: 50,
		PanStep:       40,
		ZoomFactor:    0.9,
		IterStep:      10,
		Workers:       runtime.GOMAXPROCS(0),
		Palette:       "cubic",
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	case !(mandel.Viewport{Zoom: c.Zoom, PanX: c.PanX, PanY: c.PanY}).Valid():
		return fmt.Errorf("config: invalid viewport zoom=%v pan=(%v, %v)", c.Zoom, c.PanX, c.PanY)
	case c.MaxIterations <= 0:
		return fmt.Errorf("config: iterations must be positive, got %d", c.MaxIterations)
	case !(c.PanStep > 0) || math.IsInf(c.PanStep, 0):
		return fmt.Errorf("config: invalid pan step %v", c.PanStep)
	case !(c.ZoomFactor > 0 && c.ZoomFactor < 1):
		return fmt.Errorf("config: zoom factor must be in (0, 1), got %v", c.ZoomFactor)
	case c.IterStep <= 0:
		return fmt.Errorf("config: iteration step must be positive, got %d", c.IterStep)
	case c.Workers < 0:
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if _, err := mandel.PaletteByName(c.Palette); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Region != "" {
		if _, err := mandel.RegionByName(c.Region); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// InitialState returns the first state shown on a width x height screen.
// A named region overrides Zoom and Pan.
func (c Config) InitialState(width, height int) State {
	s := State{
		Viewport:      mandel.Viewport{Zoom: c.Zoom, PanX: c.PanX, PanY: c.PanY},
		MaxIterations: c.MaxIterations,
	}
	if r, err := mandel.RegionByName(c.Region); err == nil {
		s.Viewport = r.Viewport(width, height)
	}
	return s
}

func (c Config) schedulerOptions(log mandel.Logger) []mandel.Option {
	palette, err := mandel.PaletteByName(c.Palette)
	if err != nil {
		palette = mandel.Cubic
	}
	opts := []mandel.Option{
		mandel.WithTargetWorkers(c.Workers),
		mandel.WithPalette(palette),
		mandel.WithLogger(log),
	}
	if c.CountFromOrigin {
		opts = append(opts, mandel.WithEvaluator(mandel.EvaluateFromOrigin))
	}
	return opts
}
