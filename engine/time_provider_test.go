package engine

import (
	"sync"
	"testing"
	"time"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	if diff := t2.Sub(t1); diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}
}

func TestMockTimeProvider(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(startTime)

	if now := mock.Now(); !now.Equal(startTime) {
		t.Errorf("Expected initial time to be %v, got %v", startTime, now)
	}

	newTime := startTime.Add(24 * time.Hour)
	mock.SetTime(newTime)
	mock.Advance(30 * time.Minute)
	mock.Advance(15 * time.Minute)
	expected := newTime.Add(45 * time.Minute)
	if now := mock.Now(); !now.Equal(expected) {
		t.Errorf("Expected time to be %v after advances, got %v", expected, now)
	}
}

func TestMockTimeProviderConcurrency(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(startTime)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = mock.Now()
			}
		}()
	}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				mock.Advance(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	if now := mock.Now(); !now.Equal(startTime.Add(250 * time.Millisecond)) {
		t.Errorf("Expected 250ms advance, got %v", now.Sub(startTime))
	}
}

func TestMillisSinceWraps(t *testing.T) {
	epoch := time.Unix(1000, 0)
	tests := []struct {
		elapsed time.Duration
		want    uint32
	}{
		{0, 0},
		{1500 * time.Microsecond, 1},
		{time.Hour, 3600000},
		{(1<<32 + 5) * time.Millisecond, 5},
	}
	for _, tt := range tests {
		if got := MillisSince(epoch, epoch.Add(tt.elapsed)); got != tt.want {
			t.Errorf("MillisSince(+%v) = %d, want %d", tt.elapsed, got, tt.want)
		}
	}
}

func TestPausableClockFreezesTime(t *testing.T) {
	base := NewMockTimeProvider(time.Unix(0, 0))
	pc := NewPausableClock(base)
	start := pc.Now()

	base.Advance(100 * time.Millisecond)
	if got := pc.Now().Sub(start); got != 100*time.Millisecond {
		t.Errorf("Expected 100ms elapsed, got %v", got)
	}

	pc.Pause()
	pc.Pause() // idempotent
	base.Advance(500 * time.Millisecond)
	if got := pc.Now().Sub(start); got != 100*time.Millisecond {
		t.Errorf("Expected frozen at 100ms while paused, got %v", got)
	}
	if got := pc.GetTotalPauseDuration(); got != 500*time.Millisecond {
		t.Errorf("Expected 500ms pause in progress, got %v", got)
	}

	pc.Resume()
	pc.Resume() // idempotent
	base.Advance(100 * time.Millisecond)
	if got := pc.Now().Sub(start); got != 200*time.Millisecond {
		t.Errorf("Expected 200ms after resume, got %v", got)
	}
	if !pc.RealTime().Equal(time.Unix(0, 0).Add(700 * time.Millisecond)) {
		t.Errorf("RealTime should follow the base clock, got %v", pc.RealTime())
	}
}

func TestPausableClockToggle(t *testing.T) {
	pc := NewPausableClock(NewMockTimeProvider(time.Unix(0, 0)))
	if !pc.Toggle() || !pc.IsPaused() {
		t.Error("Expected first toggle to pause")
	}
	if pc.Toggle() || pc.IsPaused() {
		t.Error("Expected second toggle to resume")
	}
}

func TestTimeProviderInterface(t *testing.T) {
	var _ TimeProvider = &MonotonicTimeProvider{}
	var _ TimeProvider = &MockTimeProvider{}
	var _ TimeProvider = &PausableClock{}
}
