// Package strip defines the pixel sink boundary between the pattern engine and an output device
//
// A sink owns the pixel buffer, combines each pattern color with the global
// brightness using its Dimmer, and flushes on Show. Sinks are not safe for
// concurrent use; the render loop that owns the engine owns the sink.
package strip

import "github.com/lixenwraith/lumen/render"

// Sink receives per-pixel colors and transmits them to a device
type Sink interface {
	// SetPixel stores color c for pixel i, dimmed by brightnessPct (1-100)
	// Out of range indices are ignored
	SetPixel(i int, c render.RGB, brightnessPct uint8)
	// Clear sets the whole buffer to black without dimming
	Clear()
	// Show flushes the buffer to the device, may block
	Show() error
	// Len returns the configured pixel count
	Len() int
}

// Null discards everything; useful for headless benchmarks
type Null struct {
	n int
}

// NewNull creates a discarding sink of n pixels
func NewNull(n int) *Null {
	return &Null{n: n}
}

func (s *Null) SetPixel(int, render.RGB, uint8) {}
func (s *Null) Clear()                          {}
func (s *Null) Show() error                     { return nil }
func (s *Null) Len() int                        { return s.n }
