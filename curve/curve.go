// Package curve maps an 8-bit phase to an 8-bit intensity with integer-only easing functions
package curve

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/lumen/vmath"
)

// Curve selects the easing shape
type Curve uint8

const (
	Sine      Curve = iota // DC-centred full wave, 128 at phase 0
	Linear                 // Triangle, 0 at phase 0 and 255, peak at 128
	EaseInOut              // Quadratic rise to 128, mirrored fall
)

var curveNames = [...]string{
	Sine:      "sine",
	Linear:    "linear",
	EaseInOut: "ease-in-out",
}

func (c Curve) String() string {
	if int(c) < len(curveNames) {
		return curveNames[c]
	}
	return fmt.Sprintf("curve(%d)", uint8(c))
}

// Parse resolves a curve name, case-insensitive; underscores are accepted for dashes
func Parse(s string) (Curve, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	switch name {
	case "sine", "sin":
		return Sine, nil
	case "linear", "triangle":
		return Linear, nil
	case "ease-in-out", "easeinout", "quad":
		return EaseInOut, nil
	}
	return Sine, fmt.Errorf("unknown curve %q", s)
}

// Ease returns the intensity for phase; unknown curves fall back to Sine
func Ease(c Curve, phase uint8) uint8 {
	switch c {
	case Linear:
		return linear(phase)
	case EaseInOut:
		return easeInOut(phase)
	default:
		return vmath.Sin8(phase)
	}
}

// linear: p*255/128 rising, (255-p)*255/127 falling
func linear(p uint8) uint8 {
	if p <= 128 {
		v := uint16(p) * 255 / 128
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return uint8(uint16(255-p) * 255 / 127)
}

// easeInOut: p²/64 below 128, mirrored about 128 above; saturates at 255
func easeInOut(p uint8) uint8 {
	x := uint16(p)
	if p >= 128 {
		x = 256 - uint16(p)
	}
	v := x * x / 64
	if v > 255 {
		return 255
	}
	return uint8(v)
}
