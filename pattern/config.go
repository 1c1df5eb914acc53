package pattern

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/lumen/curve"
	"github.com/lixenwraith/lumen/render"
)

// Knob limits applied at the point of use
const (
	MaxSpeed      = 20  // rpm / bpm / sparkle rate knob ceiling
	MaxPct        = 100 // saturation, density, brightness ceiling
	MinBrightness = 1   // global brightness floor, 0 is never live
)

// Kind identifies the active pattern variant
type Kind uint8

const (
	KindOff Kind = iota
	KindRainbow
	KindChase
	KindBreathing
	KindSparkle
)

var kindNames = [...]string{
	KindOff:       "off",
	KindRainbow:   "rainbow",
	KindChase:     "chase",
	KindBreathing: "breathing",
	KindSparkle:   "sparkle",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a pattern name, case-insensitive
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return KindOff, fmt.Errorf("unknown pattern %q", s)
}

// Pattern is the closed set of pattern variants: Off, Rainbow, Chase, Breathing, Sparkle
// Each variant carries only primitives and colors
type Pattern interface {
	Kind() Kind
	isPattern()
}

// Config is a complete engine configuration, replaced atomically via Engine.SetConfig
type Config struct {
	Pattern       Pattern
	BrightnessPct uint8 // Global dimming 1-100, applied by the sink
}

// DefaultConfig is the initial engine configuration
func DefaultConfig() Config {
	return Config{Pattern: Off{}, BrightnessPct: MaxPct}
}

// Kind returns the active variant; a nil pattern is Off
func (c Config) Kind() Kind {
	if c.Pattern == nil {
		return KindOff
	}
	return c.Pattern.Kind()
}

// ClampBrightness maps a requested global brightness into [1,100]
func ClampBrightness(pct uint8) uint8 {
	if pct < MinBrightness {
		return MinBrightness
	}
	if pct > MaxPct {
		return MaxPct
	}
	return pct
}

// normalized returns c with brightness clamped and nil pattern replaced by Off
func (c Config) normalized() Config {
	if c.Pattern == nil {
		c.Pattern = Off{}
	}
	c.BrightnessPct = ClampBrightness(c.BrightnessPct)
	return c
}

// Off renders every pixel black
type Off struct{}

// Rainbow sweeps the hue wheel along the strip
type Rainbow struct {
	SpeedRPM      uint8  // Wheel rotations per minute, 0-20
	SaturationPct uint8  // 0-100
	SpreadX10     uint16 // Hue wheels across the strip x10 (10 = one full wheel)
}

// Direction is the chase travel mode
type Direction uint8

const (
	Forward Direction = iota
	Reverse
	Bounce
)

var directionNames = [...]string{
	Forward: "forward",
	Reverse: "reverse",
	Bounce:  "bounce",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// ParseDirection resolves a direction name, case-insensitive
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d, n := range directionNames {
		if n == name {
			return Direction(d), nil
		}
	}
	return Forward, fmt.Errorf("unknown direction %q", s)
}

// Chase runs one or more lit pulses along the strip
type Chase struct {
	SpeedLEDsPerSec uint16
	TailLen         uint16 // Lit length, 0 treated as 1
	GapLen          uint16 // Unlit spacing between trains
	Trains          uint16 // Requested parallel pulses
	Direction       Direction
	FadeTail        bool
	FG              render.RGB
	BG              render.RGB
}

// Breathing pulses the whole strip between two brightness levels
type Breathing struct {
	SpeedBPM      uint8 // Breaths per minute 0-20, 0 holds full wave
	Color         render.RGB
	MinBrightness uint8 // Order independent with MaxBrightness
	MaxBrightness uint8
	Curve         curve.Curve
}

// ColorMode selects how a sparkle picks its color
type ColorMode uint8

const (
	Fixed ColorMode = iota
	RandomPerPixel
	RainbowByPosition
)

var colorModeNames = [...]string{
	Fixed:             "fixed",
	RandomPerPixel:    "random",
	RainbowByPosition: "rainbow",
}

func (m ColorMode) String() string {
	if int(m) < len(colorModeNames) {
		return colorModeNames[m]
	}
	return fmt.Sprintf("colormode(%d)", uint8(m))
}

// ParseColorMode resolves a sparkle color mode name, case-insensitive
func ParseColorMode(s string) (ColorMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range colorModeNames {
		if n == name {
			return ColorMode(m), nil
		}
	}
	return Fixed, fmt.Errorf("unknown color mode %q", s)
}

// Sparkle spawns randomly placed flashes that fade out
type Sparkle struct {
	Speed      uint8 // Spawn-rate knob 0-20
	Color      render.RGB
	DensityPct uint8 // Cap on concurrently lit pixels, 0-100
	FadeSpeed  uint8 // Decay per 25ms, 0 treated as 1
	ColorMode  ColorMode
	Background render.RGB
}

func (Off) Kind() Kind       { return KindOff }
func (Rainbow) Kind() Kind   { return KindRainbow }
func (Chase) Kind() Kind     { return KindChase }
func (Breathing) Kind() Kind { return KindBreathing }
func (Sparkle) Kind() Kind   { return KindSparkle }

func (Off) isPattern()       {}
func (Rainbow) isPattern()   {}
func (Chase) isPattern()     {}
func (Breathing) isPattern() {}
func (Sparkle) isPattern()   {}

// EffectiveTrains returns the number of simultaneous pulses drawn on a strip of n LEDs
// Bounce always runs a single pulse regardless of Trains
func (c Chase) EffectiveTrains(n int) int {
	if c.Direction == Bounce {
		return 1
	}
	period := c.tail() + int(c.GapLen)
	t := int(c.Trains)
	if limit := n / period; t > limit {
		t = limit
	}
	if t < 1 {
		t = 1
	}
	return t
}

func (c Chase) tail() int {
	if c.TailLen == 0 {
		return 1
	}
	return int(c.TailLen)
}
