package pattern

import (
	"github.com/lixenwraith/lumen/curve"
	"github.com/lixenwraith/lumen/render"
)

// breathingWave returns the eased wave for nowMs; bpm 0 holds the full wave
func breathingWave(p Breathing, nowMs uint32) uint8 {
	bpm := min(int(p.SpeedBPM), MaxSpeed)
	if bpm == 0 {
		return 255
	}
	period := uint64(60000 / bpm)
	phase := uint8(uint64(nowMs) % period * 256 / period)
	return curve.Ease(p.Curve, phase)
}

// renderBreathing sets every pixel to the same eased intensity; pure function of nowMs
func (e *Engine) renderBreathing(p Breathing, nowMs uint32) {
	lo, hi := p.MinBrightness, p.MaxBrightness
	if lo > hi {
		lo, hi = hi, lo
	}
	intensity := render.Lerp8(lo, hi, breathingWave(p, nowMs))
	e.fill(render.Scale(p.Color, intensity))
}
