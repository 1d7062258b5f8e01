package render

import (
	"github.com/keilerkonzept/sortvis/internal/event"
)

// FrameBuffer is a row-major grid of pixels.
type FrameBuffer struct {
	Width, Height int
	Pix           []Pixel
}

// NewFrameBuffer returns a width x height buffer filled with bg.
func NewFrameBuffer(width, height int, bg Pixel) *FrameBuffer {
	fb := &FrameBuffer{Width: width, Height: height, Pix: make([]Pixel, width*height)}
	fb.Fill(bg)
	return fb
}

func (fb *FrameBuffer) At(x, y int) Pixel { return fb.Pix[y*fb.Width+x] }

func (fb *FrameBuffer) Fill(p Pixel) {
	for i := range fb.Pix {
		fb.Pix[i] = p
	}
}

// CopyFrom overwrites fb with src; both must have the same size.
func (fb *FrameBuffer) CopyFrom(src *FrameBuffer) {
	copy(fb.Pix, src.Pix)
}

// Clone returns a deep copy.
func (fb *FrameBuffer) Clone() *FrameBuffer {
	out := &FrameBuffer{Width: fb.Width, Height: fb.Height, Pix: make([]Pixel, len(fb.Pix))}
	copy(out.Pix, fb.Pix)
	return out
}

// fillRect paints rows [y0, y1) of columns [x0, x1).
func (fb *FrameBuffer) fillRect(x0, x1, y0, y1 int, p Pixel) {
	for y := y0; y < y1; y++ {
		row := fb.Pix[y*fb.Width : (y+1)*fb.Width]
		for x := x0; x < x1; x++ {
			row[x] = p
		}
	}
}

// Painter repaints single bars of a frame buffer.
type Painter[T Number] struct {
	layout  Layout
	palette Palette
}

func NewPainter[T Number](layout Layout, palette Palette) Painter[T] {
	return Painter[T]{layout: layout, palette: palette}
}

// Paint redraws the whole column of the bar at u.Index: background above the
// bar, the bar in its color, background in the bottom margin strip.
func (p Painter[T]) Paint(fb *FrameBuffer, u event.Update[T]) {
	if u.Index < 0 || u.Index >= len(p.layout.Spans) {
		return
	}
	span := p.layout.Spans[u.Index]
	top := p.layout.Top(float64(u.Value))
	bottom := p.layout.Height - p.layout.Margin

	fb.fillRect(span.X0, span.X1, 0, top, p.palette.Background)
	fb.fillRect(span.X0, span.X1, bottom, p.layout.Height, p.palette.Background)
	fb.fillRect(span.X0, span.X1, top, bottom, p.palette.Pixel(u.Color))
}
