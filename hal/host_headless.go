package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/shlex"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Screen  ScreenConfig
	Hz      int
	Ticks   uint64
	// Script is a shell-quoted list of key names fed one per tick.
	// The word "wait" skips a tick.
	Script string
}

// ParseScript splits a key script into events. A nil entry is a wait.
func ParseScript(script string) ([]*KeyEvent, error) {
	words, err := shlex.Split(script)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	events := make([]*KeyEvent, 0, len(words))
	for _, w := range words {
		if w == "wait" {
			events = append(events, nil)
			continue
		}
		ev, err := ParseKey(w)
		if err != nil {
			return nil, fmt.Errorf("script: %w", err)
		}
		events = append(events, &ev)
	}
	return events, nil
}

// RunHeadless runs the viewer without opening a window.
// It returns nil when the step function returns ErrQuit or the tick limit is hit.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	script, err := ParseScript(cfg.Script)
	if err != nil {
		return err
	}

	h, err := New(cfg.Screen)
	if err != nil {
		return err
	}
	host := h.(*hostHAL)
	step := newApp(host)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if len(script) > 0 {
				if ev := script[0]; ev != nil && !host.kbd.Inject(*ev) {
					return errors.New("headless: key queue full")
				}
				script = script[1:]
			}
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
