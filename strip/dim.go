package strip

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/lumen/render"
	"github.com/lucasb-eyer/go-colorful"
)

// Dimmer combines a pattern color with the global brightness percentage
type Dimmer func(c render.RGB, brightnessPct uint8) render.RGB

// DimLinear multiplies each channel by pct/100 with truncation
func DimLinear(c render.RGB, brightnessPct uint8) render.RGB {
	return render.ScalePct(c, brightnessPct)
}

// DimGamma scales light output in linear space so perceived steps stay even
// sRGB -> linear, multiply, linear -> sRGB
func DimGamma(c render.RGB, brightnessPct uint8) render.RGB {
	if brightnessPct >= 100 || c.IsBlack() {
		return c
	}
	k := float64(brightnessPct) / 100
	col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	r, g, b := col.LinearRgb()
	out := colorful.LinearRgb(r*k, g*k, b*k).Clamped()
	r8, g8, b8 := out.RGB255()
	return render.RGB{R: r8, G: g8, B: b8}
}

// ParseDimmer resolves a dimmer policy name: "linear" or "gamma"
func ParseDimmer(s string) (Dimmer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return DimLinear, nil
	case "gamma":
		return DimGamma, nil
	}
	return nil, fmt.Errorf("unknown dimmer %q", s)
}
