// Package app is the control layer of the viewer: it turns key events into
// viewport changes and keeps one background render in flight.
package app

import (
	"context"
	"fmt"
	"runtime/debug"

	"mandelview/hal"
	"mandelview/internal/buildinfo"
	"mandelview/internal/pending"
	"mandelview/mandel"
)

// ErrQuit is returned by the step function once the user asks to quit.
var ErrQuit = hal.ErrQuit

type viewer struct {
	cfg   Config
	log   hal.Logger
	fb    hal.Framebuffer
	kbd   hal.Keyboard
	sched *mandel.Scheduler

	state    State
	requests *pending.Slot[State]

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	crashed bool
}

// New starts the viewer with the default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

// NewWithConfig starts the render goroutine and returns the step function
// the host runner calls once per tick.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	if err := cfg.Validate(); err != nil {
		return func() error { return err }
	}
	fb := h.Display().Framebuffer()
	if fb == nil {
		return func() error { return fmt.Errorf("app: no framebuffer: %w", hal.ErrNotImplemented) }
	}

	v := &viewer{
		cfg:      cfg,
		log:      h.Logger(),
		fb:       fb,
		requests: pending.New[State](),
		done:     make(chan struct{}),
	}
	if in := h.Input(); in != nil {
		v.kbd = in.Keyboard()
	}
	v.sched = mandel.NewScheduler(cfg.schedulerOptions(v.log)...)
	v.ctx, v.cancel = context.WithCancel(context.Background())
	v.state = cfg.InitialState(fb.Width(), fb.Height())

	v.banner()
	go v.renderLoop()
	v.requests.Publish(v.state)
	return v.step
}

func (v *viewer) banner() {
	v.logf("mandelview %s: %dx%d %s, palette %s, target workers %d",
		buildinfo.Short(), v.fb.Width(), v.fb.Height(), v.fb.Format(), v.cfg.Palette, v.sched.TargetWorkers())
	v.logf("controls: arrows pan, z/x zoom in/out, +/- iterations, esc or q quits")
}

func (v *viewer) step() (err error) {
	if v.crashed {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			v.crash(r, debug.Stack())
			err = nil
		}
	}()

	if v.kbd == nil {
		return nil
	}
	dirty := false
	for {
		select {
		case ev := <-v.kbd.Events():
			next, act := v.cfg.Apply(v.state, ev)
			switch act {
			case ActionQuit:
				v.stop()
				return ErrQuit
			case ActionRender:
				v.state = next
				dirty = true
			}
		default:
			if dirty {
				v.requests.Publish(v.state)
			}
			return nil
		}
	}
}

// renderLoop renders the newest requested state until the viewer stops.
func (v *viewer) renderLoop() {
	defer close(v.done)
	w, h := v.fb.Width(), v.fb.Height()
	for {
		st, seq, err := v.requests.Take(v.ctx)
		if err != nil {
			return
		}
		stats, err := v.sched.RenderFrame(v.ctx, st.Params(w, h), v.fb)
		if err != nil {
			if v.ctx.Err() != nil {
				return
			}
			v.logf("frame %d: %v", seq, err)
			continue
		}
		v.logf("frame %d: zoom=%g pan=(%g, %g) iter=%d workers=%d band=%d elapsed=%s",
			seq, st.Viewport.Zoom, st.Viewport.PanX, st.Viewport.PanY, st.MaxIterations,
			stats.Workers, stats.BandHeight, stats.Elapsed)
	}
}

func (v *viewer) stop() {
	v.cancel()
	<-v.done
}

func (v *viewer) logf(format string, args ...any) {
	if v.log == nil {
		return
	}
	v.log.WriteLineString(fmt.Sprintf(format, args...))
}
