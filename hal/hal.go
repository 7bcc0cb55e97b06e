package hal

import (
	"errors"
	"fmt"
	"strings"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// ErrQuit ends a runner loop without reporting a failure.
var ErrQuit = errors.New("quit")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb, little endian.
	PixelFormatRGB565 PixelFormat = iota + 1
	// PixelFormatRGBA8888 is 32bpp: r, g, b, 0xFF.
	PixelFormatRGBA8888
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB565:
		return "rgb565"
	case PixelFormatRGBA8888:
		return "rgba8888"
	default:
		return "unknown"
	}
}

// ParsePixelFormat parses "rgba8888" or "rgb565".
func ParsePixelFormat(s string) (PixelFormat, error) {
	switch strings.ToLower(s) {
	case "rgba8888", "rgba":
		return PixelFormatRGBA8888, nil
	case "rgb565":
		return PixelFormatRGB565, nil
	default:
		return 0, fmt.Errorf("unknown pixel format %q", s)
	}
}

// BytesPerPixel returns the pixel size, or 0 for an unknown format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGB565:
		return 2
	case PixelFormatRGBA8888:
		return 4
	default:
		return 0
	}
}

// Framebuffer is a pixel grid plus a "present" hook.
//
// WriteRGB and ClearRGB draw into a back buffer; Present makes the back
// buffer visible. WriteRGB may be called concurrently for distinct rows.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	ClearRGB(r, g, b uint8)
	WriteRGB(row, col int, r, g, b uint8)
	Present() error
}

// FrameSource exposes the last presented frame to viewers.
type FrameSource interface {
	Width() int
	Height() int
	PresentedSeq() uint64
	// SnapshotRGBA copies the front buffer into dst (4*Width*Height bytes)
	// and returns the sequence number of the copied frame.
	SnapshotRGBA(dst []byte) uint64
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
)

// KeyEvent is a keyboard event. Text keys carry Rune with Code KeyUnknown.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Injector feeds synthetic key events into a Keyboard.
type Injector interface {
	// Inject queues ev and reports false if the queue is full.
	Inject(ev KeyEvent) bool
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// HAL provides the only contact point between the viewer and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
}
