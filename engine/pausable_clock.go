package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock is a pattern clock that freezes while paused
// Animation time = base elapsed - total paused, so resuming continues where the strip stopped
type PausableClock struct {
	mu sync.RWMutex

	base      TimeProvider
	baseStart time.Time // Base reading at creation
	epoch     time.Time // Pattern time epoch returned at zero elapsed

	isPaused        atomic.Bool
	pauseStartTime  time.Time     // Base reading when the current pause began
	totalPausedTime time.Duration // Cumulative pause duration
}

// NewPausableClock creates a pausable clock over base; nil base reads the system clock
func NewPausableClock(base TimeProvider) *PausableClock {
	if base == nil {
		base = NewMonotonicTimeProvider()
	}
	now := base.Now()
	return &PausableClock{
		base:      base,
		baseStart: now,
		epoch:     now,
	}
}

// Now returns pattern time, frozen while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.epoch.Add(pc.pauseStartTime.Sub(pc.baseStart) - pc.totalPausedTime)
	}

	elapsed := pc.base.Now().Sub(pc.baseStart) - pc.totalPausedTime
	return pc.epoch.Add(elapsed)
}

// RealTime returns the base clock reading, unaffected by pause
func (pc *PausableClock) RealTime() time.Time {
	return pc.base.Now()
}

// Pause stops pattern time advancement
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.isPaused.Load() {
		return
	}
	pc.pauseStartTime = pc.base.Now()
	pc.isPaused.Store(true)
}

// Resume continues pattern time advancement
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.isPaused.Load() {
		return
	}
	pc.totalPausedTime += pc.base.Now().Sub(pc.pauseStartTime)
	pc.pauseStartTime = time.Time{}
	pc.isPaused.Store(false)
}

// Toggle flips the pause state and reports whether the clock is now paused
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// GetTotalPauseDuration returns cumulative pause time including any pause in progress
func (pc *PausableClock) GetTotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() && !pc.pauseStartTime.IsZero() {
		total += pc.base.Now().Sub(pc.pauseStartTime)
	}
	return total
}
