package mandel

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTargetWorkers is the worker count the band search aims for.
const DefaultTargetWorkers = 8

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
}

// Stats describes one completed frame.
type Stats struct {
	Workers    int
	BandHeight int
	Elapsed    time.Duration
}

// Scheduler renders whole frames by fanning bands out to goroutines.
type Scheduler struct {
	target  int
	palette Palette
	eval    Evaluator
	log     Logger
}

// Option configures the Scheduler.
type Option func(*Scheduler)

// WithTargetWorkers sets the worker count the band search aims for.
func WithTargetWorkers(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.target = n
		}
	}
}

// WithPalette sets the colour palette.
func WithPalette(p Palette) Option {
	return func(s *Scheduler) {
		if p != nil {
			s.palette = p
		}
	}
}

// WithEvaluator replaces the escape-time evaluator.
func WithEvaluator(e Evaluator) Option {
	return func(s *Scheduler) {
		if e != nil {
			s.eval = e
		}
	}
}

// WithLogger reports worker faults to l.
func WithLogger(l Logger) Option {
	return func(s *Scheduler) {
		s.log = l
	}
}

// NewScheduler creates a Scheduler with the given options.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		target:  DefaultTargetWorkers,
		palette: Cubic,
		eval:    Evaluate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TargetWorkers returns the configured target worker count.
func (s *Scheduler) TargetWorkers() int { return s.target }

// RenderFrame renders p into sink and presents it.
//
// It blocks until every band is written. If any band fails nothing is
// presented, so the last presented frame stays on screen.
func (s *Scheduler) RenderFrame(ctx context.Context, p RenderParams, sink Sink) (Stats, error) {
	if err := p.Validate(); err != nil {
		return Stats{}, err
	}
	if sink.Width() != p.Width || sink.Height() != p.Height {
		return Stats{}, fmt.Errorf("%w: sink %dx%d, params %dx%d",
			ErrFrameMismatch, sink.Width(), sink.Height(), p.Width, p.Height)
	}

	start := time.Now()
	bands := Partition(p.Height, s.target)

	g, gctx := errgroup.WithContext(ctx)
	for i, band := range bands {
		i, band := i, band // per-iteration copies (pre-Go 1.22 loop semantics)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					if s.log != nil {
						s.log.WriteLineString(fmt.Sprintf("mandel: worker %d (%s) panic: %v\n%s", i, band, r, debug.Stack()))
					}
					err = fmt.Errorf("%w: worker %d (%s): %v", ErrWorkerFault, i, band, r)
				}
			}()
			return RenderBand(gctx, band, p, sink, s.palette, s.eval)
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, fmt.Errorf("render frame: %w", err)
	}

	if err := sink.Present(); err != nil {
		return Stats{}, fmt.Errorf("present: %w", err)
	}

	return Stats{
		Workers:    len(bands),
		BandHeight: bands[0].Rows(),
		Elapsed:    time.Since(start),
	}, nil
}
