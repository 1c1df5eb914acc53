// Package preset loads named pattern configurations from YAML
package preset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lixenwraith/lumen/curve"
	"github.com/lixenwraith/lumen/parameter"
	"github.com/lixenwraith/lumen/pattern"
	"github.com/lixenwraith/lumen/render"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var defaultYAML []byte

// ErrInvalid marks a preset file that decodes but fails validation
var ErrInvalid = errors.New("invalid preset")

// Preset is a named engine configuration
type Preset struct {
	Name   string
	Config pattern.Config
}

// file is the YAML document layout
type file struct {
	Presets []entry `yaml:"presets"`
}

// entry holds every variant's fields; pattern selects which apply
// Pointers distinguish omitted fields from explicit zero
type entry struct {
	Name       string `yaml:"name"`
	Pattern    string `yaml:"pattern"`
	Brightness *int   `yaml:"brightness"`

	Speed *int `yaml:"speed"`

	// Rainbow
	Saturation *int `yaml:"saturation"`
	SpreadX10  *int `yaml:"spread_x10"`

	// Chase
	Tail      *int    `yaml:"tail"`
	Gap       *int    `yaml:"gap"`
	Trains    *int    `yaml:"trains"`
	Direction *string `yaml:"direction"`
	FadeTail  *bool   `yaml:"fade_tail"`
	FG        *string `yaml:"fg"`
	BG        *string `yaml:"bg"`

	// Breathing and sparkle
	Color *string `yaml:"color"`
	Min   *int    `yaml:"min"`
	Max   *int    `yaml:"max"`
	Curve *string `yaml:"curve"`

	// Sparkle
	Density    *int    `yaml:"density"`
	Fade       *int    `yaml:"fade"`
	ColorMode  *string `yaml:"color_mode"`
	Background *string `yaml:"background"`
}

// Default returns the built-in presets
func Default() ([]Preset, error) {
	return Parse(defaultYAML)
}

// Load reads and parses a preset file
func Load(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}
	presets, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return presets, nil
}

// Parse decodes a preset document; unknown keys are rejected
func Parse(data []byte) ([]Preset, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty preset document: %w", ErrInvalid)
		}
		return nil, fmt.Errorf("failed to parse preset YAML: %w", err)
	}
	if len(f.Presets) == 0 {
		return nil, fmt.Errorf("presets cannot be empty: %w", ErrInvalid)
	}

	out := make([]Preset, 0, len(f.Presets))
	seen := make(map[string]bool, len(f.Presets))
	for i, e := range f.Presets {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("preset #%d: name cannot be empty: %w", i+1, ErrInvalid)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("preset %q: duplicate name: %w", name, ErrInvalid)
		}
		seen[key] = true

		cfg, err := e.config(name)
		if err != nil {
			return nil, err
		}
		out = append(out, Preset{Name: name, Config: cfg})
	}
	return out, nil
}

// Find returns the index of the preset named name, case-insensitive
func Find(presets []Preset, name string) (int, bool) {
	for i, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return i, true
		}
	}
	return -1, false
}

// Names lists preset names in file order
func Names(presets []Preset) []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

func (e entry) config(name string) (pattern.Config, error) {
	kind, err := pattern.ParseKind(e.Pattern)
	if err != nil {
		return pattern.Config{}, fmt.Errorf("preset %q: %v: %w", name, err, ErrInvalid)
	}

	r := fieldReader{preset: name}
	cfg := pattern.Config{
		BrightnessPct: r.u8("brightness", e.Brightness, parameter.DefaultBrightnessPct, pattern.MaxPct),
	}

	switch kind {
	case pattern.KindRainbow:
		cfg.Pattern = pattern.Rainbow{
			SpeedRPM:      r.u8("speed", e.Speed, 6, pattern.MaxSpeed),
			SaturationPct: r.u8("saturation", e.Saturation, 100, pattern.MaxPct),
			SpreadX10:     r.u16("spread_x10", e.SpreadX10, 10),
		}

	case pattern.KindChase:
		cfg.Pattern = pattern.Chase{
			SpeedLEDsPerSec: r.u16("speed", e.Speed, 10),
			TailLen:         r.u16("tail", e.Tail, 3),
			GapLen:          r.u16("gap", e.Gap, 0),
			Trains:          r.u16("trains", e.Trains, 1),
			Direction:       r.direction(e.Direction),
			FadeTail:        e.FadeTail != nil && *e.FadeTail,
			FG:              r.color("fg", e.FG, render.RGBWhite),
			BG:              r.color("bg", e.BG, render.RGBBlack),
		}

	case pattern.KindBreathing:
		cfg.Pattern = pattern.Breathing{
			SpeedBPM:      r.u8("speed", e.Speed, 12, pattern.MaxSpeed),
			Color:         r.color("color", e.Color, render.RGBWhite),
			MinBrightness: r.u8("min", e.Min, 0, 255),
			MaxBrightness: r.u8("max", e.Max, 255, 255),
			Curve:         r.curve(e.Curve),
		}

	case pattern.KindSparkle:
		cfg.Pattern = pattern.Sparkle{
			Speed:      r.u8("speed", e.Speed, 10, pattern.MaxSpeed),
			Color:      r.color("color", e.Color, render.RGBWhite),
			DensityPct: r.u8("density", e.Density, 20, pattern.MaxPct),
			FadeSpeed:  r.u8("fade", e.Fade, 4, 255),
			ColorMode:  r.colorMode(e.ColorMode),
			Background: r.color("background", e.Background, render.RGBBlack),
		}

	default:
		cfg.Pattern = pattern.Off{}
	}

	if r.err != nil {
		return pattern.Config{}, r.err
	}
	return cfg, nil
}

// fieldReader converts optional fields, keeping the first validation error
type fieldReader struct {
	preset string
	err    error
}

func (r *fieldReader) fail(field string, format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("preset %q: %s: %s: %w", r.preset, field, fmt.Sprintf(format, args...), ErrInvalid)
	}
}

func (r *fieldReader) u8(field string, v *int, def uint8, limit int) uint8 {
	if v == nil {
		return def
	}
	if *v < 0 || *v > limit {
		r.fail(field, "%d out of range 0-%d", *v, limit)
		return def
	}
	return uint8(*v)
}

func (r *fieldReader) u16(field string, v *int, def uint16) uint16 {
	if v == nil {
		return def
	}
	if *v < 0 || *v > 0xFFFF {
		r.fail(field, "%d out of range 0-65535", *v)
		return def
	}
	return uint16(*v)
}

func (r *fieldReader) color(field string, v *string, def render.RGB) render.RGB {
	if v == nil {
		return def
	}
	c, err := ParseColor(*v)
	if err != nil {
		r.fail(field, "%v", err)
		return def
	}
	return c
}

func (r *fieldReader) direction(v *string) pattern.Direction {
	if v == nil {
		return pattern.Forward
	}
	d, err := pattern.ParseDirection(*v)
	if err != nil {
		r.fail("direction", "%v", err)
	}
	return d
}

func (r *fieldReader) curve(v *string) curve.Curve {
	if v == nil {
		return curve.Sine
	}
	c, err := curve.Parse(*v)
	if err != nil {
		r.fail("curve", "%v", err)
	}
	return c
}

func (r *fieldReader) colorMode(v *string) pattern.ColorMode {
	if v == nil {
		return pattern.Fixed
	}
	m, err := pattern.ParseColorMode(*v)
	if err != nil {
		r.fail("color_mode", "%v", err)
	}
	return m
}
