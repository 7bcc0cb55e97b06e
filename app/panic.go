package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"mandelview/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var crashFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// crash stops rendering and replaces the picture with the panic report.
// The step function is a no-op afterwards.
func (v *viewer) crash(value any, stack []byte) {
	v.crashed = true
	v.logf("mandelview panic: %v", value)
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		v.logf("%s", line)
	}

	v.stop()

	lines := []string{
		"mandelview panic:",
		fmt.Sprintf("panic: %v", value),
		fmt.Sprintf("view: zoom=%g pan=(%g, %g) iter=%d",
			v.state.Viewport.Zoom, v.state.Viewport.PanX, v.state.Viewport.PanY, v.state.MaxIterations),
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}
	drawCrashScreen(v.fb, lines)
}

func drawCrashScreen(fb hal.Framebuffer, lines []string) {
	fb.ClearRGB(255, 255, 255)

	lineHeight := int16(crashFont.GetYAdvance())
	_, outboxWidth := tinyfont.LineWidth(crashFont, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 || lineHeight <= 0 {
		_ = fb.Present()
		return
	}

	d := crashDisplay{fb: fb}
	fg := color.RGBA{R: 0xB0, A: 255}
	cols := int16(fb.Width()) / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := lineHeight
	for _, line := range lines {
		for len(line) > 0 {
			if y > int16(fb.Height()) {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			tinyfont.WriteLine(d, crashFont, 0, y, chunk, fg)
			y += lineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

// crashDisplay lets tinyfont draw into a hal.Framebuffer.
type crashDisplay struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = crashDisplay{}

func (d crashDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d crashDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.fb.WriteRGB(int(y), int(x), c.R, c.G, c.B)
}

func (d crashDisplay) Display() error { return nil }

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
