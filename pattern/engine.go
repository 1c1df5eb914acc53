package pattern

import (
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/lumen/render"
	"github.com/lixenwraith/lumen/strip"
	"github.com/lixenwraith/lumen/vmath"
)

// MaxLEDs is the largest strip an engine will allocate buffers for
const MaxLEDs = 1 << 20

// instanceSeq gives every engine a distinct identity for default seeding
var instanceSeq atomic.Uint32

// Engine renders the configured pattern for a fixed-length strip
//
// Not reentrant: SetConfig and Render mutate motion state in place and must be
// called from one goroutine or under external synchronisation (see engine.Runner)
type Engine struct {
	ledCount int
	cfg      Config
	frameBuf []render.RGB
	closed   bool
	st       state
}

// state is the transient per-config motion and spawn bookkeeping
type state struct {
	frame      uint32
	lastStepMs uint32
	primed     bool // false until the first time-integrating render latches lastStepMs

	chasePos vmath.Q16 // LED offset of the lead head
	chaseDir int       // +1 or -1, Bounce only

	sparkle  []uint8 // Per-pixel brightness, len == ledCount
	spawnAcc vmath.Q16
	fadeAcc  uint32 // Sub-unit decay remainder in 1/25 steps

	rng vmath.Rand
}

// State is a read-only snapshot of engine bookkeeping
type State struct {
	Kind             Kind
	Frame            uint32
	LastStepMs       uint32
	ChasePosition    vmath.Q16
	ChaseDirection   int
	ActiveSparkles   int
	SpawnAccumulator vmath.Q16
	RNGState         uint32
}

type options struct {
	seed    uint32
	hasSeed bool
}

// Option configures engine construction
type Option func(*options)

// WithSeed fixes the sparkle RNG seed for reproducible sequences
func WithSeed(seed uint32) Option {
	return func(o *options) {
		o.seed = seed
		o.hasSeed = true
	}
}

// New creates an engine for ledCount pixels, initially Off
func New(ledCount int, opts ...Option) (*Engine, error) {
	if ledCount <= 0 {
		return nil, fmt.Errorf("led count %d: %w", ledCount, ErrInvalidArgument)
	}
	if ledCount > MaxLEDs {
		return nil, fmt.Errorf("led count %d exceeds %d: %w", ledCount, MaxLEDs, ErrOutOfMemory)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasSeed {
		// Instance identity mixed with strip length
		id := instanceSeq.Add(1)
		o.seed = vmath.Mix32(id*0x9E3779B9 ^ uint32(ledCount))
	}

	e := &Engine{
		ledCount: ledCount,
		cfg:      DefaultConfig(),
		frameBuf: make([]render.RGB, ledCount),
		st: state{
			sparkle:  make([]uint8, ledCount),
			chaseDir: 1,
			rng:      vmath.NewRand(o.seed),
		},
	}
	return e, nil
}

// Len returns the strip length fixed at construction
func (e *Engine) Len() int {
	return e.ledCount
}

// Config returns the active configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// SetConfig replaces the configuration and resets all motion state
// Frame, timers, chase position/direction and the sparkle buffer always restart,
// so switching patterns never shows stale motion
func (e *Engine) SetConfig(cfg Config) {
	e.cfg = cfg.normalized()
	e.reset()
}

// reset clears transient state; the RNG keeps its sequence
func (e *Engine) reset() {
	e.st.frame = 0
	e.st.lastStepMs = 0
	e.st.primed = false
	e.st.chasePos = 0
	e.st.chaseDir = 1
	clear(e.st.sparkle)
	e.st.spawnAcc = 0
	e.st.fadeAcc = 0
}

// Close releases pixel buffers; later renders are no-ops
func (e *Engine) Close() {
	e.closed = true
	e.frameBuf = nil
	e.st.sparkle = nil
}

// Snapshot returns a copy of the current bookkeeping
func (e *Engine) Snapshot() State {
	active := 0
	for _, b := range e.st.sparkle {
		if b != 0 {
			active++
		}
	}
	return State{
		Kind:             e.cfg.Kind(),
		Frame:            e.st.frame,
		LastStepMs:       e.st.lastStepMs,
		ChasePosition:    e.st.chasePos,
		ChaseDirection:   e.st.chaseDir,
		ActiveSparkles:   active,
		SpawnAccumulator: e.st.spawnAcc,
		RNGState:         e.st.rng.State(),
	}
}

// Render computes the frame for nowMs into an engine-owned buffer
// The slice is reused by the next call; returns nil after Close
func (e *Engine) Render(nowMs uint32) []render.RGB {
	if e == nil || e.closed {
		return nil
	}

	switch p := e.cfg.Pattern.(type) {
	case Rainbow:
		e.renderRainbow(p, nowMs)
	case Chase:
		e.renderChase(p, nowMs)
	case Breathing:
		e.renderBreathing(p, nowMs)
	case Sparkle:
		e.renderSparkle(p, nowMs)
	default:
		e.fill(render.RGBBlack)
	}

	e.st.frame++
	return e.frameBuf
}

// RenderTo renders nowMs and writes every pixel to sink with the global brightness
// A nil sink, a closed engine or a length mismatch leaves state and sink untouched
func (e *Engine) RenderTo(nowMs uint32, sink strip.Sink) error {
	if e == nil || e.closed {
		return fmt.Errorf("render: engine not available: %w", ErrInvalidArgument)
	}
	if sink == nil {
		return fmt.Errorf("render: nil sink: %w", ErrInvalidArgument)
	}
	if n := sink.Len(); n != e.ledCount {
		return fmt.Errorf("render: sink has %d pixels, engine %d: %w", n, e.ledCount, ErrInvalidArgument)
	}

	frame := e.Render(nowMs)
	pct := e.cfg.BrightnessPct
	for i, c := range frame {
		sink.SetPixel(i, c, pct)
	}
	return nil
}

// advance returns elapsed ms since the last integrating render
// First call after reset latches the timestamp and returns 0; a clock step backwards also yields 0
func (e *Engine) advance(nowMs uint32) uint32 {
	if !e.st.primed {
		e.st.primed = true
		e.st.lastStepMs = nowMs
		return 0
	}
	dt := nowMs - e.st.lastStepMs
	if int32(dt) < 0 {
		dt = 0
	}
	e.st.lastStepMs = nowMs
	return dt
}

func (e *Engine) fill(c render.RGB) {
	for i := range e.frameBuf {
		e.frameBuf[i] = c
	}
}
