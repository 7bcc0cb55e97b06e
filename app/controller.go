package app

import (
	"math"

	"mandelview/hal"
	"mandelview/mandel"
)

// State is what one frame shows.
type State struct {
	Viewport      mandel.Viewport
	MaxIterations int
}

// Params returns the render parameters of s for a width x height frame.
func (s State) Params(width, height int) mandel.RenderParams {
	return mandel.RenderParams{
		Viewport:      s.Viewport,
		MaxIterations: s.MaxIterations,
		Width:         width,
		Height:        height,
	}
}

// Action tells the caller what to do after a key event.
type Action uint8

const (
	ActionNone Action = iota
	ActionRender
	ActionQuit
)

// Apply returns the state after ev. Only key presses count.
// An event that leaves the state unchanged yields ActionNone.
func (c Config) Apply(s State, ev hal.KeyEvent) (State, Action) {
	if !ev.Press {
		return s, ActionNone
	}

	next := s
	step := c.PanStep * s.Viewport.Zoom
	switch ev.Code {
	case hal.KeyUp:
		next.Viewport.PanY -= step
	case hal.KeyDown:
		next.Viewport.PanY += step
	case hal.KeyLeft:
		next.Viewport.PanX -= step
	case hal.KeyRight:
		next.Viewport.PanX += step
	case hal.KeyEscape:
		return s, ActionQuit
	case hal.KeyUnknown:
		switch ev.Rune {
		case 'z', 'Z':
			next.Viewport.Zoom *= c.ZoomFactor
		case 'x', 'X':
			next.Viewport.Zoom /= c.ZoomFactor
		case '+', '=':
			next.MaxIterations += c.IterStep
		case '-', '_':
			next.MaxIterations = max(next.MaxIterations-c.IterStep, c.IterStep)
		case 'q', 'Q':
			return s, ActionQuit
		default:
			return s, ActionNone
		}
	default:
		return s, ActionNone
	}

	// Zoom must stay in (0, +Inf); pans must stay finite.
	if !next.Viewport.Valid() || next.MaxIterations <= 0 || next.MaxIterations > math.MaxInt32 {
		return s, ActionNone
	}
	if next == s {
		return s, ActionNone
	}
	return next, ActionRender
}
