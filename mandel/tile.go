package mandel

import "context"

// Sink is the framebuffer the renderer writes into.
//
// WriteRGB must be safe for concurrent calls on distinct rows.
type Sink interface {
	Width() int
	Height() int
	WriteRGB(row, col int, r, g, b uint8)
	Present() error
}

// RenderBand fills every pixel of band. It never touches rows outside it.
//
// ctx is checked between rows so a failed sibling can stop the frame early.
func RenderBand(ctx context.Context, band Band, p RenderParams, sink Sink, palette Palette, eval Evaluator) error {
	if eval == nil {
		eval = Evaluate
	}
	for row := band.First; row < band.Last; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for col := 0; col < p.Width; col++ {
			re, im := MapPixelToPlane(col, row, p.Viewport, p.Width, p.Height)
			n := eval(re, im, p.MaxIterations)
			c := MapColor(n, p.MaxIterations, palette)
			sink.WriteRGB(row, col, c.R, c.G, c.B)
		}
	}
	return nil
}
