package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"mandelview/hal"
	"mandelview/mandel"
)

const defaultTargets = "1,2,4,8,16"

func main() {
	var (
		width   = flag.Int("width", 1280, "Frame width in pixels.")
		height  = flag.Int("height", 720, "Frame height in pixels.")
		iter    = flag.Int("iter", 200, "Iteration cap.")
		region  = flag.String("region", "seahorse", "Landmark to render: "+strings.Join(mandel.RegionNames(), "|")+".")
		palette = flag.String("palette", "cubic", "Palette: "+strings.Join(mandel.PaletteNames(), "|")+".")
		targets = flag.String("targets", defaultTargets, "Comma separated worker targets.")
		repeat  = flag.Int("repeat", 3, "Frames rendered per target; the fastest is reported.")
	)
	flag.Parse()

	ts, err := parseTargets(*targets)
	if err != nil {
		fatalf("targets: %v", err)
	}
	if *repeat <= 0 {
		fatalf("repeat must be positive, got %d", *repeat)
	}

	if err := run(os.Stdout, *width, *height, *iter, *region, *palette, ts, *repeat); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(w io.Writer, width, height, iter int, region, palette string, targets []int, repeat int) error {
	r, err := mandel.RegionByName(region)
	if err != nil {
		return err
	}
	p, err := mandel.PaletteByName(palette)
	if err != nil {
		return err
	}
	h, err := hal.New(hal.ScreenConfig{Width: width, Height: height})
	if err != nil {
		return err
	}
	fb := h.Display().Framebuffer()
	params := mandel.RenderParams{
		Viewport:      r.Viewport(width, height),
		MaxIterations: iter,
		Width:         width,
		Height:        height,
	}

	fmt.Fprintf(w, "%dx%d %s iter=%d\n", width, height, region, iter)
	fmt.Fprintf(w, "%8s %8s %8s %12s\n", "target", "workers", "band", "best")
	for _, target := range targets {
		s := mandel.NewScheduler(mandel.WithTargetWorkers(target), mandel.WithPalette(p), mandel.WithLogger(h.Logger()))
		var best mandel.Stats
		for i := 0; i < repeat; i++ {
			st, err := s.RenderFrame(context.Background(), params, fb)
			if err != nil {
				return fmt.Errorf("target %d: %w", target, err)
			}
			if i == 0 || st.Elapsed < best.Elapsed {
				best = st
			}
		}
		fmt.Fprintf(w, "%8d %8d %8d %12s\n", target, best.Workers, best.BandHeight, best.Elapsed.Round(time.Microsecond))
	}
	return nil
}

func parseTargets(s string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("target must be positive, got %d", n)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no targets in %q", s)
	}
	return out, nil
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
