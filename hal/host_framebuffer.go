package hal

import (
	"fmt"
	"sync"
)

// hostFramebuffer is double buffered: renderers draw into back while
// viewers read front. Present copies back to front under mu.
type hostFramebuffer struct {
	width  int
	height int
	format PixelFormat
	bpp    int
	stride int

	back []byte

	mu    sync.Mutex
	front []byte
	seq   uint64
}

func newHostFramebuffer(width, height int, format PixelFormat) (*hostFramebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("framebuffer: invalid size %dx%d", width, height)
	}
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("framebuffer: unsupported pixel format %d", format)
	}
	stride := width * bpp
	return &hostFramebuffer{
		width:  width,
		height: height,
		format: format,
		bpp:    bpp,
		stride: stride,
		back:   make([]byte, stride*height),
		front:  make([]byte, stride*height),
	}, nil
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return f.format }

func (f *hostFramebuffer) WriteRGB(row, col int, r, g, b uint8) {
	if row < 0 || row >= f.height || col < 0 || col >= f.width {
		return
	}
	putPixel(f.back, row*f.stride+col*f.bpp, f.format, r, g, b)
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	if len(f.back) == 0 {
		return
	}
	putPixel(f.back, 0, f.format, r, g, b)
	for i := f.bpp; i < len(f.back); i *= 2 {
		copy(f.back[i:], f.back[:i])
	}
}

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(f.front, f.back)
	f.seq++
	return nil
}

func (f *hostFramebuffer) PresentedSeq() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seq
}

func (f *hostFramebuffer) SnapshotRGBA(dst []byte) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	toRGBA(dst, f.front, f.format)
	return f.seq
}
