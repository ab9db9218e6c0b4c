package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/spatial-shell/device/devicetest"
)

func TestPausableClock_ExcludesPauses(t *testing.T) {
	real := devicetest.NewClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(real)

	real.Advance(100 * time.Millisecond)
	if got := pc.Elapsed(); got != 100*time.Millisecond {
		t.Fatalf("Expected 100ms elapsed, got %v", got)
	}

	pc.Pause()
	real.Advance(time.Second)
	if got := pc.Elapsed(); got != 100*time.Millisecond {
		t.Errorf("Expected elapsed frozen at 100ms while paused, got %v", got)
	}
	if got := pc.TotalPauseDuration(); got != time.Second {
		t.Errorf("Expected 1s pause in progress, got %v", got)
	}

	pc.Resume()
	real.Advance(50 * time.Millisecond)
	if got := pc.Elapsed(); got != 150*time.Millisecond {
		t.Errorf("Expected 150ms elapsed after resume, got %v", got)
	}
	if got := pc.TotalPauseDuration(); got != time.Second {
		t.Errorf("Expected 1s total pause, got %v", got)
	}
}

func TestPausableClock_RepeatedCalls(t *testing.T) {
	real := devicetest.NewClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(real)

	pc.Resume() // not paused, no-op
	pc.Pause()
	real.Advance(time.Second)
	pc.Pause() // already paused, pause start unchanged
	real.Advance(time.Second)
	pc.Resume()

	if got := pc.TotalPauseDuration(); got != 2*time.Second {
		t.Errorf("Expected 2s pause, got %v", got)
	}
	if pc.IsPaused() {
		t.Error("Expected clock running")
	}
}
