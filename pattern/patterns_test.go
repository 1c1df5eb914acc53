package pattern

import (
	"testing"

	"github.com/lixenwraith/lumen/curve"
	"github.com/lixenwraith/lumen/render"
	"github.com/lixenwraith/lumen/vmath"
)

func litCount(frame []render.RGB) int {
	n := 0
	for _, c := range frame {
		if !c.IsBlack() {
			n++
		}
	}
	return n
}

// --- Rainbow ---

func TestRainbowFirstPixelRedAtZero(t *testing.T) {
	e := newTestEngine(t, 12)
	e.SetConfig(Config{Pattern: Rainbow{SpeedRPM: 6, SaturationPct: 100, SpreadX10: 10}, BrightnessPct: 100})

	f := e.Render(0)
	if !f[0].Equal(render.RGB{R: 255, G: 0, B: 0}) {
		t.Errorf("Expected pixel 0 red, got %v", f[0])
	}
	// One full wheel over 12 pixels puts pixel 4 at 120 degrees
	if !f[4].Equal(render.RGB{R: 0, G: 255, B: 0}) {
		t.Errorf("Expected pixel 4 green, got %v", f[4])
	}
}

func TestRainbowPeriodic(t *testing.T) {
	e := newTestEngine(t, 30)
	e.SetConfig(Config{Pattern: Rainbow{SpeedRPM: 6, SaturationPct: 80, SpreadX10: 25}, BrightnessPct: 100})

	// rpm 6 turns the wheel once per 10s
	for _, now := range []uint32{0, 17, 4321, 9999, 250000} {
		a := copyFrame(e.Render(now))
		b := e.Render(now + 10000)
		if !framesEqual(a, b) {
			t.Errorf("Frame at %d differs from frame at %d", now, now+10000)
		}
	}
}

func TestRainbowIdempotent(t *testing.T) {
	e := newTestEngine(t, 16)
	e.SetConfig(Config{Pattern: Rainbow{SpeedRPM: 20, SaturationPct: 100, SpreadX10: 10}, BrightnessPct: 100})

	a := copyFrame(e.Render(777))
	e.Render(12)
	b := e.Render(777)
	if !framesEqual(a, b) {
		t.Error("Rainbow must be a pure function of time")
	}
}

func TestRainbowZeroSpreadIsUniform(t *testing.T) {
	e := newTestEngine(t, 9)
	e.SetConfig(Config{Pattern: Rainbow{SpeedRPM: 3, SaturationPct: 100, SpreadX10: 0}, BrightnessPct: 100})

	f := e.Render(5000)
	for i := range f {
		if !f[i].Equal(f[0]) {
			t.Fatalf("Pixel %d = %v, want uniform %v", i, f[i], f[0])
		}
	}
}

func TestRainbowHueOffset(t *testing.T) {
	tests := []struct {
		now  uint32
		rpm  int
		want int
	}{
		{0, 6, 0},
		{2500, 6, 90},
		{10000, 6, 0},
		{1000, 0, 0},
		{1<<32 - 1, 20, int(uint64(1<<32-1) * 20 * 360 / 60000 % 360)},
	}
	for _, tt := range tests {
		if got := rainbowHueOffset(tt.now, tt.rpm); got != tt.want {
			t.Errorf("rainbowHueOffset(%d, %d) = %d, want %d", tt.now, tt.rpm, got, tt.want)
		}
	}
}

// --- Chase ---

func TestChaseEndToEndForward(t *testing.T) {
	e := newTestEngine(t, 10)
	e.SetConfig(Config{Pattern: Chase{
		SpeedLEDsPerSec: 5,
		TailLen:         3,
		Trains:          1,
		Direction:       Forward,
		FG:              render.RGBWhite,
	}, BrightnessPct: 100})

	// 5 LEDs/s advances the head exactly one LED per 200ms
	for step := 0; step <= 25; step++ {
		now := uint32(step * 200)
		f := e.Render(now)
		head := step % 10

		if got := e.Snapshot().ChasePosition.Int(); got != head {
			t.Fatalf("t=%d: head at %d, want %d", now, got, head)
		}
		for d := 0; d < 3; d++ {
			i := (head - d + 10) % 10
			if !f[i].Equal(render.RGBWhite) {
				t.Errorf("t=%d: pixel %d (distance %d) = %v, want lit", now, i, d, f[i])
			}
		}
		if lead := (head + 1) % 10; !f[lead].IsBlack() {
			t.Errorf("t=%d: pixel ahead of head %d is lit", now, lead)
		}
		if litCount(f) != 3 {
			t.Errorf("t=%d: expected 3 lit pixels, got %d", now, litCount(f))
		}
	}
}

func TestChaseForwardStrictlyAdvances(t *testing.T) {
	const n = 10
	e := newTestEngine(t, n)
	e.SetConfig(Config{Pattern: Chase{SpeedLEDsPerSec: 7, TailLen: 2, Direction: Forward, FG: render.RGBWhite}, BrightnessPct: 100})

	span := vmath.FromInt(n)
	delta := vmath.Rate(7, 33, 1000)
	e.Render(0)
	prev := e.Snapshot().ChasePosition
	for now := uint32(33); now < 20000; now += 33 {
		e.Render(now)
		pos := e.Snapshot().ChasePosition
		moved := vmath.Mod(pos-prev, span)
		if moved <= 0 || moved != delta {
			t.Fatalf("t=%d: moved %d, want %d", now, moved, delta)
		}
		if pos < 0 || pos >= span {
			t.Fatalf("t=%d: position %d out of [0, %d)", now, pos, span)
		}
		prev = pos
	}
}

func TestChaseReverseMovesBackward(t *testing.T) {
	const n = 8
	e := newTestEngine(t, n)
	e.SetConfig(Config{Pattern: Chase{SpeedLEDsPerSec: 3, TailLen: 2, Direction: Reverse, FG: render.RGBWhite}, BrightnessPct: 100})

	span := vmath.FromInt(n)
	e.Render(0)
	prev := e.Snapshot().ChasePosition
	for now := uint32(50); now < 5000; now += 50 {
		f := e.Render(now)
		pos := e.Snapshot().ChasePosition
		if moved := vmath.Mod(prev-pos, span); moved <= 0 {
			t.Fatalf("t=%d: reverse chase did not move backward (%d -> %d)", now, prev, pos)
		}
		// Tail trails on the higher-index side
		head := pos.Int()
		if tail := (head + 1) % n; f[tail].IsBlack() {
			t.Fatalf("t=%d: expected tail at %d behind reverse head %d", now, tail, head)
		}
		prev = pos
	}
}

func TestChaseBounceStaysInBoundsAndFlipsAtEnds(t *testing.T) {
	const n = 10
	e := newTestEngine(t, n)
	e.SetConfig(Config{Pattern: Chase{
		SpeedLEDsPerSec: 7,
		TailLen:         3,
		Trains:          4,
		Direction:       Bounce,
		FG:              render.RGBWhite,
	}, BrightnessPct: 100})

	limit := vmath.FromInt(n - 1)
	e.Render(0)
	prev := e.Snapshot()
	flips := 0

	for now := uint32(37); now < 74000; now += 37 {
		f := e.Render(now)
		s := e.Snapshot()

		if s.ChasePosition < 0 || s.ChasePosition > limit {
			t.Fatalf("t=%d: position %d outside [0, %d]", now, s.ChasePosition, limit)
		}
		if s.ChaseDirection != 1 && s.ChaseDirection != -1 {
			t.Fatalf("t=%d: invalid direction %d", now, s.ChaseDirection)
		}

		if s.ChaseDirection != prev.ChaseDirection {
			flips++
			switch s.ChaseDirection {
			case -1:
				if s.ChasePosition != limit {
					t.Fatalf("t=%d: flipped to reverse at %d, want %d", now, s.ChasePosition, limit)
				}
			case 1:
				if s.ChasePosition != 0 {
					t.Fatalf("t=%d: flipped to forward at %d, want 0", now, s.ChasePosition)
				}
			}
		} else if s.ChasePosition == 0 || s.ChasePosition == limit {
			t.Fatalf("t=%d: reached boundary %d without flipping", now, s.ChasePosition)
		}

		// Trains is forced to 1 in bounce mode
		if lit := litCount(f); lit < 1 || lit > 3 {
			t.Fatalf("t=%d: expected 1-3 lit pixels for single bounce pulse, got %d", now, lit)
		}
		prev = s
	}

	if flips < 2 {
		t.Errorf("Expected the pulse to bounce several times, got %d flips", flips)
	}
}

func TestChaseZeroSpeedHolds(t *testing.T) {
	e := newTestEngine(t, 6)
	e.SetConfig(Config{Pattern: Chase{SpeedLEDsPerSec: 0, TailLen: 1, Direction: Bounce, FG: render.RGBWhite}, BrightnessPct: 100})

	for now := uint32(0); now < 3000; now += 100 {
		e.Render(now)
		s := e.Snapshot()
		if s.ChasePosition != 0 || s.ChaseDirection != 1 {
			t.Fatalf("t=%d: expected stationary head, got pos=%d dir=%d", now, s.ChasePosition, s.ChaseDirection)
		}
	}
}

func TestChaseFadeTailMonotonic(t *testing.T) {
	const n = 30
	e := newTestEngine(t, n)
	e.SetConfig(Config{Pattern: Chase{
		TailLen:   6,
		Direction: Forward,
		FadeTail:  true,
		FG:        render.RGB{R: 200, G: 200, B: 200},
	}, BrightnessPct: 100})

	f := e.Render(0)
	prev := uint8(255)
	for d := 0; d < 6; d++ {
		i := (0 - d + n) % n
		v := f[i].R
		if v == 0 {
			t.Errorf("Tail pixel at distance %d is dark", d)
		}
		if v > prev {
			t.Errorf("Tail brightness rises at distance %d: %d > %d", d, v, prev)
		}
		prev = v
	}
	if !f[0].Equal(render.RGB{R: 200, G: 200, B: 200}) {
		t.Errorf("Expected full FG at head, got %v", f[0])
	}
	if !f[n-6].IsBlack() {
		t.Errorf("Expected background past the tail, got %v", f[n-6])
	}
}

func TestChaseMultipleTrains(t *testing.T) {
	const n = 20
	e := newTestEngine(t, n)
	p := Chase{TailLen: 2, GapLen: 3, Trains: 3, Direction: Forward, FG: render.RGBWhite}
	e.SetConfig(Config{Pattern: p, BrightnessPct: 100})

	f := e.Render(0)
	for _, i := range []int{0, 19, 6, 5, 13, 12} {
		if f[i].IsBlack() {
			t.Errorf("Expected pixel %d lit", i)
		}
	}
	if litCount(f) != 6 {
		t.Errorf("Expected 6 lit pixels for 3 trains of 2, got %d", litCount(f))
	}
}

func TestChaseEffectiveTrains(t *testing.T) {
	tests := []struct {
		name string
		c    Chase
		n    int
		want int
	}{
		{"requested fits", Chase{TailLen: 2, GapLen: 3, Trains: 3}, 20, 3},
		{"clamped by spacing", Chase{TailLen: 2, GapLen: 3, Trains: 10}, 20, 4},
		{"zero trains", Chase{TailLen: 2, Trains: 0}, 20, 1},
		{"tail longer than strip", Chase{TailLen: 50, Trains: 3}, 20, 1},
		{"zero tail counts as one", Chase{TailLen: 0, GapLen: 0, Trains: 5}, 3, 3},
		{"bounce forces one", Chase{TailLen: 1, Trains: 4, Direction: Bounce}, 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.EffectiveTrains(tt.n); got != tt.want {
				t.Errorf("Expected %d trains, got %d", tt.want, got)
			}
		})
	}
}

func TestChaseIdempotentAtSameTime(t *testing.T) {
	e := newTestEngine(t, 12)
	e.SetConfig(Config{Pattern: Chase{SpeedLEDsPerSec: 9, TailLen: 4, Direction: Bounce, FadeTail: true, FG: render.RGBBlue}, BrightnessPct: 100})

	e.Render(0)
	a := copyFrame(e.Render(500))
	posA := e.Snapshot().ChasePosition
	b := e.Render(500)
	if e.Snapshot().ChasePosition != posA {
		t.Error("Second render at the same time moved the head")
	}
	if !framesEqual(a, b) {
		t.Error("Second render at the same time changed the frame")
	}
}

// --- Breathing ---

func TestBreathingLinearExtremes(t *testing.T) {
	e := newTestEngine(t, 5)
	e.SetConfig(Config{Pattern: Breathing{
		SpeedBPM:      1,
		Color:         render.RGBWhite,
		MinBrightness: 0,
		MaxBrightness: 255,
		Curve:         curve.Linear,
	}, BrightnessPct: 100})

	f := e.Render(0)
	if !f[0].IsBlack() {
		t.Errorf("Expected black at phase 0, got %v", f[0])
	}
	// bpm 1 reaches the peak at half of 60s
	f = e.Render(30000)
	if !f[2].Equal(render.RGBWhite) {
		t.Errorf("Expected white at peak, got %v", f[2])
	}
}

func TestBreathingMinMaxOrderIndependent(t *testing.T) {
	a := newTestEngine(t, 3)
	b := newTestEngine(t, 3)
	base := Breathing{SpeedBPM: 12, Color: render.RGB{R: 10, G: 200, B: 90}, Curve: curve.Sine}

	lo, hi := base, base
	lo.MinBrightness, lo.MaxBrightness = 40, 220
	hi.MinBrightness, hi.MaxBrightness = 220, 40
	a.SetConfig(Config{Pattern: lo, BrightnessPct: 100})
	b.SetConfig(Config{Pattern: hi, BrightnessPct: 100})

	for now := uint32(0); now < 10000; now += 123 {
		if !framesEqual(a.Render(now), b.Render(now)) {
			t.Fatalf("t=%d: swapped min/max changed the output", now)
		}
	}
}

func TestBreathingZeroSpeedHoldsMax(t *testing.T) {
	e := newTestEngine(t, 2)
	e.SetConfig(Config{Pattern: Breathing{Color: render.RGBRed, MinBrightness: 10, MaxBrightness: 255}, BrightnessPct: 100})

	for _, now := range []uint32{0, 1234, 99999} {
		if f := e.Render(now); !f[1].Equal(render.RGBRed) {
			t.Errorf("t=%d: expected steady red, got %v", now, f[1])
		}
	}
}

func TestBreathingWavePhase(t *testing.T) {
	p := Breathing{SpeedBPM: 1, Curve: curve.Sine}
	if got := breathingWave(p, 0); got != 128 {
		t.Errorf("Sine wave at 0 = %d, want 128", got)
	}
	// Quarter period lands on the sine peak
	if got := breathingWave(p, 15000); got != 255 {
		t.Errorf("Sine wave at quarter period = %d, want 255", got)
	}
	// Periodic in 60000/bpm
	if breathingWave(p, 7000) != breathingWave(p, 67000) {
		t.Error("Wave not periodic")
	}
}

// --- Sparkle ---

func TestSparkleDensityCap(t *testing.T) {
	const n = 50
	e := newTestEngine(t, n)
	e.SetConfig(Config{Pattern: Sparkle{Speed: 20, Color: render.RGBWhite, DensityPct: 20, FadeSpeed: 1}, BrightnessPct: 100})

	capacity := n * 20 / 100
	peak := 0
	for now := uint32(0); now <= 30000; now += 1000 {
		e.Render(now)
		active := e.Snapshot().ActiveSparkles
		if active > capacity {
			t.Fatalf("t=%d: %d active sparkles exceed cap %d", now, active, capacity)
		}
		peak = max(peak, active)
	}
	if peak != capacity {
		t.Errorf("Expected active count to reach the cap %d, peaked at %d", capacity, peak)
	}
}

func TestSparkleZeroDensityShowsBackground(t *testing.T) {
	bg := render.RGB{R: 0, G: 0, B: 10}
	e := newTestEngine(t, 40)
	e.SetConfig(Config{Pattern: Sparkle{Speed: 20, Color: render.RGBWhite, DensityPct: 0, FadeSpeed: 5, Background: bg}, BrightnessPct: 100})

	for now := uint32(0); now <= 20000; now += 250 {
		for i, c := range e.Render(now) {
			if !c.Equal(bg) {
				t.Fatalf("t=%d: pixel %d = %v, want background", now, i, c)
			}
		}
	}
}

func TestSparkleDecayBound(t *testing.T) {
	e := newTestEngine(t, 8)
	e.SetConfig(Config{Pattern: Sparkle{Speed: 0, Color: render.RGBRed, DensityPct: 100, FadeSpeed: 4}, BrightnessPct: 100})
	e.st.sparkle[3] = 255

	f := e.Render(0)
	if !f[3].Equal(render.RGBRed) {
		t.Fatalf("Expected full red sparkle, got %v", f[3])
	}

	// 4 per 25ms over 20ms frames decays 3.2 per frame: 255 needs exactly 80 frames
	const dtMs, frames = 20, 80
	for k := 1; k <= frames; k++ {
		e.Render(uint32(k * dtMs))
		b := e.st.sparkle[3]
		if k < frames && b == 0 {
			t.Fatalf("Sparkle extinguished early at frame %d", k)
		}
		if k == frames && b != 0 {
			t.Fatalf("Sparkle still at %d after %d frames", b, frames)
		}
	}
	if !e.frameBuf[3].IsBlack() {
		t.Errorf("Expected background after decay, got %v", e.frameBuf[3])
	}
}

func TestSparkleShortFramesStillDecay(t *testing.T) {
	e := newTestEngine(t, 4)
	e.SetConfig(Config{Pattern: Sparkle{Speed: 0, Color: render.RGBWhite, DensityPct: 100, FadeSpeed: 1}, BrightnessPct: 100})
	e.st.sparkle[0] = 10

	// 1 per 25ms at 5ms frames: each frame alone is below one step
	e.Render(0)
	for now := uint32(5); now <= 250; now += 5 {
		e.Render(now)
	}
	if got := e.st.sparkle[0]; got != 0 {
		t.Errorf("Expected sparkle gone after 250ms, got %d", got)
	}
}

func TestSparkleIdempotentAtSameTime(t *testing.T) {
	e := newTestEngine(t, 32)
	e.SetConfig(Config{Pattern: Sparkle{Speed: 15, Color: render.RGBGreen, DensityPct: 50, FadeSpeed: 2}, BrightnessPct: 100})

	for now := uint32(0); now <= 3000; now += 100 {
		e.Render(now)
	}
	before := e.Snapshot()
	buf := append([]uint8(nil), e.st.sparkle...)
	e.Render(3000)
	after := e.Snapshot()

	if after.RNGState != before.RNGState || after.ActiveSparkles != before.ActiveSparkles {
		t.Error("Render at the same time spawned sparkles")
	}
	for i := range buf {
		if buf[i] != e.st.sparkle[i] {
			t.Fatalf("Pixel %d brightness changed from %d to %d", i, buf[i], e.st.sparkle[i])
		}
	}
}

func TestSparkleColorModes(t *testing.T) {
	e := newTestEngine(t, 6)
	e.SetConfig(Config{Pattern: Sparkle{ColorMode: RainbowByPosition, DensityPct: 100, FadeSpeed: 1}, BrightnessPct: 100})
	for i := range e.st.sparkle {
		e.st.sparkle[i] = 255
	}
	f := e.Render(0)
	if !f[0].Equal(render.RGB{R: 255, G: 0, B: 0}) {
		t.Errorf("Expected red at position 0, got %v", f[0])
	}
	if !f[2].Equal(render.RGB{R: 0, G: 255, B: 0}) {
		t.Errorf("Expected green at position 2, got %v", f[2])
	}

	e.SetConfig(Config{Pattern: Sparkle{ColorMode: RandomPerPixel, DensityPct: 100, FadeSpeed: 1}, BrightnessPct: 100})
	for i := range e.st.sparkle {
		e.st.sparkle[i] = 255
	}
	f = e.Render(0)
	for i, c := range f {
		hi := max(c.R, c.G, c.B)
		lo := min(c.R, c.G, c.B)
		if hi != 255 || lo != 0 {
			t.Errorf("Pixel %d = %v, want fully saturated hue", i, c)
		}
	}
}

func TestSparkleDeterministicWithSeed(t *testing.T) {
	cfg := Config{Pattern: Sparkle{Speed: 20, Color: render.RGBWhite, DensityPct: 60, FadeSpeed: 3}, BrightnessPct: 100}

	a, _ := New(64, WithSeed(1234))
	b, _ := New(64, WithSeed(1234))
	a.SetConfig(cfg)
	b.SetConfig(cfg)

	for now := uint32(0); now <= 8000; now += 40 {
		if !framesEqual(a.Render(now), b.Render(now)) {
			t.Fatalf("t=%d: seeded engines diverged", now)
		}
	}
}
