package pattern

import "github.com/lixenwraith/lumen/render"

// rainbowHueOffset is floor(now*rpm*360/60000) mod 360
func rainbowHueOffset(nowMs uint32, rpm int) int {
	return int(uint64(nowMs) * uint64(rpm) * 360 / 60000 % 360)
}

// renderRainbow is a pure function of nowMs; no motion is integrated
func (e *Engine) renderRainbow(p Rainbow, nowMs uint32) {
	rpm := min(int(p.SpeedRPM), MaxSpeed)
	sat := min(int(p.SaturationPct), MaxPct)

	offset := rainbowHueOffset(nowMs, rpm)
	hueRange := 360 * int(p.SpreadX10) / 10
	n := e.ledCount

	for i := range e.frameBuf {
		hue := (offset + i*hueRange/n) % 360
		e.frameBuf[i] = render.HSV(hue, sat, 100)
	}
}
