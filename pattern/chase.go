package pattern

import (
	"github.com/lixenwraith/lumen/render"
	"github.com/lixenwraith/lumen/vmath"
)

// renderChase integrates head motion over elapsed wall time, then paints trains
func (e *Engine) renderChase(p Chase, nowMs uint32) {
	n := e.ledCount
	dt := e.advance(nowMs)
	delta := vmath.Rate(int64(p.SpeedLEDsPerSec), int64(dt), 1000)

	switch p.Direction {
	case Bounce:
		e.stepBounce(delta)
	case Reverse:
		e.st.chasePos = vmath.Mod(e.st.chasePos-delta, vmath.FromInt(n))
	default:
		e.st.chasePos = vmath.Mod(e.st.chasePos+delta, vmath.FromInt(n))
	}

	e.fill(p.BG)

	tail := p.tail()
	head := e.st.chasePos.Int()

	if p.Direction == Bounce {
		e.paintBounceTail(p, head, tail)
		return
	}

	trains := p.EffectiveTrains(n)
	// Tail beyond the strip length only revisits pixels already lit nearer the head
	reach := min(tail, n)
	step := 1
	if p.Direction == Reverse {
		step = -1
	}

	for k := 0; k < trains; k++ {
		h := (head + k*n/trains) % n
		// Far to near so the nearest head wins on overlap
		for d := reach - 1; d >= 0; d-- {
			i := (h - step*d) % n
			if i < 0 {
				i += n
			}
			e.frameBuf[i] = chaseColor(p, d, tail)
		}
	}
}

// stepBounce moves the head within [0, n-1] and flips direction on reaching either end
func (e *Engine) stepBounce(delta vmath.Q16) {
	if delta == 0 {
		return
	}
	limit := vmath.FromInt(e.ledCount - 1)
	pos := e.st.chasePos + vmath.Q16(e.st.chaseDir)*delta

	switch {
	case e.st.chaseDir > 0 && pos >= limit:
		pos = limit
		e.st.chaseDir = -1
	case e.st.chaseDir < 0 && pos <= 0:
		pos = 0
		e.st.chaseDir = 1
	}
	e.st.chasePos = pos
}

// paintBounceTail draws the single bouncing pulse trailing opposite its travel, without wrap
func (e *Engine) paintBounceTail(p Chase, head, tail int) {
	trail := -e.st.chaseDir
	for d := min(tail, e.ledCount) - 1; d >= 0; d-- {
		i := head + trail*d
		if i < 0 || i >= e.ledCount {
			continue
		}
		e.frameBuf[i] = chaseColor(p, d, tail)
	}
}

// chaseColor returns FG at trailing distance d, linearly faded toward the tail end if enabled
func chaseColor(p Chase, d, tail int) render.RGB {
	if !p.FadeTail {
		return p.FG
	}
	return render.Scale(p.FG, uint8(255*(tail-d)/tail))
}
