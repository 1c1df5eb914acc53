package strip

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/lumen/render"
)

// PixelGlyph is the cell drawn for each LED
const PixelGlyph = '█'

// Terminal previews a strip on a tcell screen, wrapping pixels across rows
type Terminal struct {
	screen tcell.Screen
	pixels []render.RGB
	dim    Dimmer

	originX, originY int
}

// NewTerminal creates a preview sink of n pixels; nil dim selects DimLinear
func NewTerminal(screen tcell.Screen, n int, dim Dimmer) *Terminal {
	if dim == nil {
		dim = DimLinear
	}
	return &Terminal{
		screen: screen,
		pixels: make([]render.RGB, n),
		dim:    dim,
	}
}

// SetOrigin moves the top-left cell of the strip
func (t *Terminal) SetOrigin(x, y int) {
	t.originX, t.originY = x, y
}

func (t *Terminal) SetPixel(i int, c render.RGB, brightnessPct uint8) {
	if i < 0 || i >= len(t.pixels) {
		return
	}
	t.pixels[i] = t.dim(c, brightnessPct)
}

func (t *Terminal) Clear() {
	clear(t.pixels)
}

func (t *Terminal) Len() int {
	return len(t.pixels)
}

// Columns returns how many pixels fit per row at the current screen width
func (t *Terminal) Columns() int {
	w, _ := t.screen.Size()
	return max(1, w-t.originX)
}

// Rows returns the number of rows the strip occupies
func (t *Terminal) Rows() int {
	cols := t.Columns()
	return (len(t.pixels) + cols - 1) / cols
}

// Draw writes the pixels into the screen's back buffer without flushing
func (t *Terminal) Draw() {
	cols := t.Columns()
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	for i, c := range t.pixels {
		x := t.originX + i%cols
		y := t.originY + i/cols
		style := base.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		t.screen.SetContent(x, y, PixelGlyph, nil, style)
	}
}

// Show draws and flushes the screen
func (t *Terminal) Show() error {
	t.Draw()
	t.screen.Show()
	return nil
}
