package engine

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/lumen/core"
	"github.com/lixenwraith/lumen/parameter"
	"github.com/lixenwraith/lumen/pattern"
	"github.com/lixenwraith/lumen/status"
	"github.com/lixenwraith/lumen/strip"
)

// Frame describes one completed tick
type Frame struct {
	NowMs uint32
	State pattern.State
	Err   error // Render or Show failure, nil on success
}

// pauser is implemented by clocks that can freeze pattern time
type pauser interface {
	IsPaused() bool
}

// Runner drives an engine into a sink on a fixed frame interval
// All engine access goes through the runner's mutex, so SetConfig may be called from any goroutine
type Runner struct {
	mu      sync.Mutex
	eng     *pattern.Engine
	sink    strip.Sink
	clock   TimeProvider
	epoch   time.Time
	onFrame func(Frame)

	interval time.Duration

	// Control
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Cached metric pointers
	statusReg      *status.Registry
	statFrames     *atomic.Int64
	statRenderErrs *atomic.Int64
	statShowErrs   *atomic.Int64
	statNowMs      *atomic.Int64
	statFrameMs    *status.AtomicFloat
	statPattern    *status.AtomicString
}

// NewRunner wires an engine to a sink of the same length
// nil clock reads the system clock, interval <= 0 selects parameter.FrameInterval, nil reg allocates a registry
func NewRunner(eng *pattern.Engine, sink strip.Sink, clock TimeProvider, interval time.Duration, reg *status.Registry) (*Runner, error) {
	if eng == nil || sink == nil {
		return nil, fmt.Errorf("runner: engine and sink required: %w", pattern.ErrInvalidArgument)
	}
	if sink.Len() != eng.Len() {
		return nil, fmt.Errorf("runner: sink has %d pixels, engine %d: %w", sink.Len(), eng.Len(), pattern.ErrInvalidArgument)
	}
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if interval <= 0 {
		interval = parameter.FrameInterval
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	r := &Runner{
		eng:            eng,
		sink:           sink,
		clock:          clock,
		epoch:          clock.Now(),
		interval:       interval,
		stopChan:       make(chan struct{}),
		statusReg:      reg,
		statFrames:     reg.Ints.Get("runner.frames"),
		statRenderErrs: reg.Ints.Get("runner.render_errors"),
		statShowErrs:   reg.Ints.Get("runner.show_errors"),
		statNowMs:      reg.Ints.Get("runner.now_ms"),
		statFrameMs:    reg.Floats.Get("runner.frame_ms"),
		statPattern:    reg.Strings.Get("pattern"),
	}
	r.statPattern.Store(eng.Config().Kind().String())
	return r, nil
}

// Registry returns the registry the runner reports into
func (r *Runner) Registry() *status.Registry {
	return r.statusReg
}

// OnFrame installs a hook called after every tick outside the runner lock
func (r *Runner) OnFrame(fn func(Frame)) {
	r.mu.Lock()
	r.onFrame = fn
	r.mu.Unlock()
}

// SetConfig replaces the engine configuration, resetting its motion state
func (r *Runner) SetConfig(cfg pattern.Config) {
	r.mu.Lock()
	r.eng.SetConfig(cfg)
	kind := r.eng.Config().Kind()
	r.mu.Unlock()
	r.statPattern.Store(kind.String())
}

// Config returns the engine's active configuration
func (r *Runner) Config() pattern.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.eng.Config()
}

// Snapshot returns the engine bookkeeping as of the last tick
func (r *Runner) Snapshot() pattern.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.eng.Snapshot()
}

// NowMs returns the wrapping ms counter the next tick would render at
func (r *Runner) NowMs() uint32 {
	return MillisSince(r.epoch, r.clock.Now())
}

// Tick samples the clock once, renders into the sink and shows it
func (r *Runner) Tick() Frame {
	start := time.Now()

	r.mu.Lock()
	nowMs := MillisSince(r.epoch, r.clock.Now())
	err := r.eng.RenderTo(nowMs, r.sink)
	if err != nil {
		r.statRenderErrs.Add(1)
		log.Printf("runner: %v", err)
	} else if err = r.sink.Show(); err != nil {
		// Rate-limited, a dead output fails every frame
		if n := r.statShowErrs.Add(1); n == 1 || n%100 == 0 {
			log.Printf("runner: show failed (%d total): %v", n, err)
		}
	}
	st := r.eng.Snapshot()
	hook := r.onFrame
	r.mu.Unlock()

	r.statFrames.Add(1)
	r.statNowMs.Store(int64(nowMs))
	r.statFrameMs.Smooth(float64(time.Since(start).Microseconds())/1000, 0.1)

	f := Frame{NowMs: nowMs, State: st, Err: err}
	if hook != nil {
		hook(f)
	}
	return f
}

// Blank clears the sink and shows the dark frame
func (r *Runner) Blank() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink.Clear()
	return r.sink.Show()
}

// Start begins the frame loop
func (r *Runner) Start() {
	if r.running.CompareAndSwap(false, true) {
		r.wg.Add(1)
		core.Go(r.loop)
	}
}

// Stop halts the frame loop and waits for the in-flight tick
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		if r.running.CompareAndSwap(true, false) {
			close(r.stopChan)
			r.wg.Wait()
		}
	})
}

// IsRunning reports whether the frame loop is active
func (r *Runner) IsRunning() bool {
	return r.running.Load()
}

func (r *Runner) paused() bool {
	p, ok := r.clock.(pauser)
	return ok && p.IsPaused()
}

// loop ticks on wall-clock deadlines with drift correction
// Pattern time comes from the runner clock; scheduling always uses real time
func (r *Runner) loop() {
	defer r.wg.Done()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	next := time.Now()
	for {
		select {
		case <-r.stopChan:
			return
		default:
		}

		interval := r.interval
		if r.paused() {
			// Frozen time renders the same frame, refresh slower
			interval *= 2
		}

		now := time.Now()
		if !now.Before(next) {
			r.Tick()
			next = next.Add(interval)

			// Skip missed frames instead of bursting to catch up
			if now.Sub(next) > interval*2 {
				next = now.Add(interval)
			}
		}

		sleep := time.Until(next)
		if sleep <= 0 {
			continue
		}
		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-r.stopChan:
			return
		}
	}
}
