package mandel

import (
	"context"
	"errors"
	"testing"
)

type gridSink struct {
	w, h     int
	pix      []RGB
	written  []int
	presents int
}

func newGridSink(w, h int) *gridSink {
	return &gridSink{w: w, h: h, pix: make([]RGB, w*h), written: make([]int, w*h)}
}

func (s *gridSink) Width() int  { return s.w }
func (s *gridSink) Height() int { return s.h }

func (s *gridSink) WriteRGB(row, col int, r, g, b uint8) {
	i := row*s.w + col
	s.pix[i] = RGB{R: r, G: g, B: b}
	s.written[i]++
}

func (s *gridSink) Present() error {
	s.presents++
	return nil
}

func (s *gridSink) at(row, col int) RGB { return s.pix[row*s.w+col] }

type faultySink struct {
	*gridSink
	badRow int
}

func (s *faultySink) WriteRGB(row, col int, r, g, b uint8) {
	if row == s.badRow {
		panic("bad row")
	}
	s.gridSink.WriteRGB(row, col, r, g, b)
}

func TestRenderFrameScenarioCentreInSet(t *testing.T) {
	p := RenderParams{
		Viewport:      Viewport{Zoom: 0.004, PanX: -0.7, PanY: 0},
		MaxIterations: 20,
		Width:         1280,
		Height:        700,
	}
	sink := newGridSink(p.Width, p.Height)

	stats, err := NewScheduler().RenderFrame(context.Background(), p, sink)
	if err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}
	if sink.presents != 1 {
		t.Fatalf("presents = %d, want 1", sink.presents)
	}
	if stats.Workers*stats.BandHeight != p.Height {
		t.Fatalf("stats = %+v, bands do not cover %d rows", stats, p.Height)
	}

	// Plane origin: col = 0.7/0.004 + 640, row = 350.
	row, col := 350, 815
	re, im := MapPixelToPlane(col, row, p.Viewport, p.Width, p.Height)
	if got := Evaluate(re, im, p.MaxIterations); got != p.MaxIterations {
		t.Fatalf("Evaluate(%g, %g) = %d, want %d", re, im, got, p.MaxIterations)
	}
	if got := sink.at(row, col); got != (RGB{}) {
		t.Fatalf("pixel(%d,%d) = %+v, want black", row, col, got)
	}
}

func TestRenderFrameWritesEveryPixelOnce(t *testing.T) {
	p := RenderParams{
		Viewport:      Viewport{Zoom: 0.01, PanX: -0.5},
		MaxIterations: 30,
		Width:         96,
		Height:        70,
	}
	sink := newGridSink(p.Width, p.Height)
	if _, err := NewScheduler(WithTargetWorkers(6)).RenderFrame(context.Background(), p, sink); err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}
	for i, n := range sink.written {
		if n != 1 {
			t.Fatalf("pixel %d written %d times, want 1", i, n)
		}
	}
}

func TestRenderFrameIdempotent(t *testing.T) {
	p := RenderParams{
		Viewport:      Viewport{Zoom: 0.02, PanX: -0.6, PanY: 0.1},
		MaxIterations: 64,
		Width:         120,
		Height:        90,
	}
	s := NewScheduler(WithPalette(Ultra))

	a := newGridSink(p.Width, p.Height)
	b := newGridSink(p.Width, p.Height)
	if _, err := s.RenderFrame(context.Background(), p, a); err != nil {
		t.Fatalf("first RenderFrame() error = %v", err)
	}
	if _, err := s.RenderFrame(context.Background(), p, b); err != nil {
		t.Fatalf("second RenderFrame() error = %v", err)
	}
	for i := range a.pix {
		if a.pix[i] != b.pix[i] {
			t.Fatalf("pixel %d = %+v then %+v", i, a.pix[i], b.pix[i])
		}
	}
}

func TestRenderFrameIndependentOfWorkerCount(t *testing.T) {
	p := RenderParams{
		Viewport:      Viewport{Zoom: 0.015, PanX: -0.75},
		MaxIterations: 40,
		Width:         80,
		Height:        60,
	}
	ref := newGridSink(p.Width, p.Height)
	if _, err := NewScheduler(WithTargetWorkers(1)).RenderFrame(context.Background(), p, ref); err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}
	for _, target := range []int{2, 7, 13, 60, 200} {
		got := newGridSink(p.Width, p.Height)
		if _, err := NewScheduler(WithTargetWorkers(target)).RenderFrame(context.Background(), p, got); err != nil {
			t.Fatalf("RenderFrame(target=%d) error = %v", target, err)
		}
		for i := range ref.pix {
			if ref.pix[i] != got.pix[i] {
				t.Fatalf("target=%d pixel %d = %+v, want %+v", target, i, got.pix[i], ref.pix[i])
			}
		}
	}
}

func TestRenderFrameMoreIterationsKeepsEscapedColours(t *testing.T) {
	vp := Viewport{Zoom: 0.03, PanX: -0.6}
	const w, h = 100, 80

	low := newGridSink(w, h)
	high := newGridSink(w, h)
	s := NewScheduler()
	if _, err := s.RenderFrame(context.Background(), RenderParams{Viewport: vp, MaxIterations: 20, Width: w, Height: h}, low); err != nil {
		t.Fatalf("RenderFrame(20) error = %v", err)
	}
	if _, err := s.RenderFrame(context.Background(), RenderParams{Viewport: vp, MaxIterations: 30, Width: w, Height: h}, high); err != nil {
		t.Fatalf("RenderFrame(30) error = %v", err)
	}

	var escaped int
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			re, im := MapPixelToPlane(col, row, vp, w, h)
			n := Evaluate(re, im, 20)
			if n < 20 {
				escaped++
				if low.at(row, col) != high.at(row, col) {
					t.Fatalf("pixel(%d,%d) escaped at %d but colour changed %+v -> %+v",
						row, col, n, low.at(row, col), high.at(row, col))
				}
			}
		}
	}
	if escaped == 0 {
		t.Fatal("no escaping pixels in test frame")
	}
}

func TestRenderFrameRejectsMismatchedSink(t *testing.T) {
	p := RenderParams{Viewport: Viewport{Zoom: 0.01}, MaxIterations: 10, Width: 10, Height: 12}
	sink := newGridSink(10, 10)

	_, err := NewScheduler().RenderFrame(context.Background(), p, sink)
	if !errors.Is(err, ErrFrameMismatch) {
		t.Fatalf("RenderFrame() error = %v, want ErrFrameMismatch", err)
	}
	if sink.presents != 0 {
		t.Fatalf("presents = %d, want 0", sink.presents)
	}
}

func TestRenderFrameRejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name string
		p    RenderParams
	}{
		{"zero zoom", RenderParams{Viewport: Viewport{Zoom: 0}, MaxIterations: 10, Width: 4, Height: 4}},
		{"negative zoom", RenderParams{Viewport: Viewport{Zoom: -1}, MaxIterations: 10, Width: 4, Height: 4}},
		{"zero iterations", RenderParams{Viewport: Viewport{Zoom: 1}, MaxIterations: 0, Width: 4, Height: 4}},
		{"empty frame", RenderParams{Viewport: Viewport{Zoom: 1}, MaxIterations: 10, Width: 0, Height: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := newGridSink(tt.p.Width, tt.p.Height)
			_, err := NewScheduler().RenderFrame(context.Background(), tt.p, sink)
			if !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("RenderFrame() error = %v, want ErrInvalidParams", err)
			}
			if sink.presents != 0 {
				t.Fatalf("presents = %d, want 0", sink.presents)
			}
		})
	}
}

func TestRenderFrameWorkerFaultSkipsPresent(t *testing.T) {
	p := RenderParams{Viewport: Viewport{Zoom: 0.05, PanX: -0.5}, MaxIterations: 10, Width: 32, Height: 32}
	sink := &faultySink{gridSink: newGridSink(p.Width, p.Height), badRow: 17}

	_, err := NewScheduler(WithTargetWorkers(4)).RenderFrame(context.Background(), p, sink)
	if !errors.Is(err, ErrWorkerFault) {
		t.Fatalf("RenderFrame() error = %v, want ErrWorkerFault", err)
	}
	if sink.presents != 0 {
		t.Fatalf("presents = %d, want 0", sink.presents)
	}
}

func TestRenderFrameCancelled(t *testing.T) {
	p := RenderParams{Viewport: Viewport{Zoom: 0.05}, MaxIterations: 10, Width: 16, Height: 16}
	sink := newGridSink(p.Width, p.Height)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScheduler().RenderFrame(ctx, p, sink)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("RenderFrame() error = %v, want context.Canceled", err)
	}
	if sink.presents != 0 {
		t.Fatalf("presents = %d, want 0", sink.presents)
	}
}
