package strip

import "github.com/lixenwraith/lumen/render"

// Buffer is an in-memory sink with a back buffer written by SetPixel and a front
// buffer published by Show
type Buffer struct {
	back  []render.RGB
	front []render.RGB
	dim   Dimmer
	shows int
}

// NewBuffer creates a buffer sink of n pixels; nil dim selects DimLinear
func NewBuffer(n int, dim Dimmer) *Buffer {
	if dim == nil {
		dim = DimLinear
	}
	return &Buffer{
		back:  make([]render.RGB, n),
		front: make([]render.RGB, n),
		dim:   dim,
	}
}

func (b *Buffer) SetPixel(i int, c render.RGB, brightnessPct uint8) {
	if i < 0 || i >= len(b.back) {
		return
	}
	b.back[i] = b.dim(c, brightnessPct)
}

func (b *Buffer) Clear() {
	clear(b.back)
}

// Show publishes the back buffer
func (b *Buffer) Show() error {
	copy(b.front, b.back)
	b.shows++
	return nil
}

func (b *Buffer) Len() int {
	return len(b.back)
}

// Pixel returns the pending (not yet shown) color of pixel i
func (b *Buffer) Pixel(i int) render.RGB {
	if i < 0 || i >= len(b.back) {
		return render.RGBBlack
	}
	return b.back[i]
}

// Frame returns a copy of the last shown frame
func (b *Buffer) Frame() []render.RGB {
	out := make([]render.RGB, len(b.front))
	copy(out, b.front)
	return out
}

// Shows returns the number of Show calls
func (b *Buffer) Shows() int {
	return b.shows
}
