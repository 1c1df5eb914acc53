package preset

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/lumen/pattern"
	"github.com/lixenwraith/lumen/render"
	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]render.RGB{
	"black": render.RGBBlack,
	"white": render.RGBWhite,
	"red":   render.RGBRed,
	"green": render.RGBGreen,
	"blue":  render.RGBBlue,
}

// ParseColor accepts "#rrggbb", "rrggbb", "#rgb" or a basic color name
func ParseColor(s string) (render.RGB, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[v]; ok {
		return c, nil
	}
	v = strings.TrimPrefix(v, "#")
	// Hex scanning accepts short trailing fields, so check shape first
	if (len(v) != 3 && len(v) != 6) || strings.Trim(v, "0123456789abcdef") != "" {
		return render.RGBBlack, fmt.Errorf("bad color %q", s)
	}
	col, err := colorful.Hex("#" + v)
	if err != nil {
		return render.RGBBlack, fmt.Errorf("bad color %q", s)
	}
	r, g, b := col.RGB255()
	return render.RGB{R: r, G: g, B: b}, nil
}

// FormatColor renders c as "#rrggbb"
func FormatColor(c render.RGB) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// Describe summarises a preset's pattern parameters on one line
func Describe(p Preset) string {
	switch v := p.Config.Pattern.(type) {
	case pattern.Rainbow:
		return fmt.Sprintf("%s: rainbow %drpm sat %d%% spread %d.%d", p.Name, v.SpeedRPM, v.SaturationPct, v.SpreadX10/10, v.SpreadX10%10)
	case pattern.Chase:
		return fmt.Sprintf("%s: chase %s %d/s tail %d gap %d x%d %s", p.Name, v.Direction, v.SpeedLEDsPerSec, v.TailLen, v.GapLen, v.Trains, FormatColor(v.FG))
	case pattern.Breathing:
		return fmt.Sprintf("%s: breathing %dbpm %s %d-%d %s", p.Name, v.SpeedBPM, v.Curve, v.MinBrightness, v.MaxBrightness, FormatColor(v.Color))
	case pattern.Sparkle:
		return fmt.Sprintf("%s: sparkle rate %d density %d%% fade %d %s", p.Name, v.Speed, v.DensityPct, v.FadeSpeed, v.ColorMode)
	default:
		return p.Name + ": off"
	}
}
