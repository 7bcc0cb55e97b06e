package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"mandelview/app"
	"mandelview/hal"
	"mandelview/internal/stream"
	"mandelview/mandel"
)

func main() {
	cfg := app.DefaultConfig()
	var headless hal.HeadlessConfig
	var win hal.WindowConfig
	var format, serve string

	flag.IntVar(&cfg.Width, "width", cfg.Width, "Framebuffer width in pixels.")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Framebuffer height in pixels.")
	flag.Float64Var(&cfg.Zoom, "zoom", cfg.Zoom, "Plane units per pixel.")
	flag.Float64Var(&cfg.PanX, "pan-x", cfg.PanX, "Real part of the view centre.")
	flag.Float64Var(&cfg.PanY, "pan-y", cfg.PanY, "Imaginary part of the view centre.")
	flag.IntVar(&cfg.MaxIterations, "iter", cfg.MaxIterations, "Iteration cap.")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Target number of render workers.")
	flag.StringVar(&cfg.Palette, "palette", cfg.Palette, "Palette: "+strings.Join(mandel.PaletteNames(), "|")+".")
	flag.StringVar(&cfg.Region, "region", "", "Start at a landmark: "+strings.Join(mandel.RegionNames(), "|")+".")
	flag.BoolVar(&cfg.CountFromOrigin, "count-origin", false, "Count the z=0 step in escape counts.")
	flag.StringVar(&format, "format", hal.PixelFormatRGBA8888.String(), "Framebuffer pixel format: rgba8888|rgb565.")
	flag.IntVar(&win.Scale, "scale", 1, "Window scale factor.")
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&headless.Script, "script", "", `Keys fed one per tick in headless mode, e.g. "z z left wait quit".`)
	flag.StringVar(&serve, "serve", "", "Stream frames to a browser on this address, e.g. :8080.")
	flag.Parse()

	if err := run(cfg, format, win, headless, serve); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cfg app.Config, format string, win hal.WindowConfig, headless hal.HeadlessConfig, serve string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	pf, err := hal.ParsePixelFormat(format)
	if err != nil {
		return err
	}
	screen := hal.ScreenConfig{Width: cfg.Width, Height: cfg.Height, Format: pf}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	newApp := func(h hal.HAL) func() error {
		if serve != "" {
			startStream(ctx, h, serve)
		}
		return app.NewWithConfig(h, cfg)
	}

	if headless.Enabled {
		headless.Screen = screen
		err := hal.RunHeadless(ctx, newApp, headless)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	win.Screen = screen
	return hal.RunWindow(newApp, win)
}

func startStream(ctx context.Context, h hal.HAL, addr string) {
	log := h.Logger()
	src, ok := h.Display().Framebuffer().(hal.FrameSource)
	if !ok {
		log.WriteLineString("stream: framebuffer cannot be streamed")
		return
	}
	in, _ := h.Input().Keyboard().(hal.Injector)

	s := stream.New(src, in, log, stream.Options{Addr: addr})
	go func() {
		if err := s.ListenAndServe(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.WriteLineString(fmt.Sprintf("stream: %v", err))
		}
	}()
}
