package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// ScreenConfig sizes the host framebuffer.
type ScreenConfig struct {
	Width  int
	Height int
	Format PixelFormat
}

func (c ScreenConfig) withDefaults() ScreenConfig {
	if c.Width == 0 {
		c.Width = 640
	}
	if c.Height == 0 {
		c.Height = 480
	}
	if c.Format == 0 {
		c.Format = PixelFormatRGBA8888
	}
	return c
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
}

// New returns a host HAL implementation that logs to stdout.
func New(sc ScreenConfig) (HAL, error) {
	return newHost(sc, os.Stdout)
}

func newHost(sc ScreenConfig, logOut io.Writer) (*hostHAL, error) {
	sc = sc.withDefaults()
	fb, err := newHostFramebuffer(sc.Width, sc.Height, sc.Format)
	if err != nil {
		return nil, err
	}
	return &hostHAL{
		logger: &hostLogger{w: logOut},
		fb:     fb,
		kbd:    newHostKeyboard(),
	}, nil
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
