package engine

import "time"

// TimeProvider is the time source a Runner samples once per frame
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock with its monotonic component
// Used for the live strip, where wall clock jumps must not move patterns
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MillisSince converts elapsed time since epoch to the engine's wrapping ms counter
// Truncates to uint32, so the counter wraps after ~49.7 days like a hardware tick
func MillisSince(epoch, now time.Time) uint32 {
	return uint32(now.Sub(epoch).Milliseconds())
}
