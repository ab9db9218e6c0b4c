package engine

import (
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/spatial-shell/device"
	"github.com/lixenwraith/spatial-shell/parameter"
	"github.com/lixenwraith/spatial-shell/status"
)

// Shell owns the per-frame tick: systems run in priority order, then cooperative tasks advance
// All mutation happens on the goroutine calling Tick/Step
type Shell struct {
	systems []System
	runner  *Runner
	clock   *PausableClock

	lastElapsed time.Duration
	maxDelta    time.Duration

	statTicks *atomic.Int64
	log       *slog.Logger
}

// ShellOption configures a Shell
type ShellOption func(*Shell)

// WithClock sets the real-time source for Step
func WithClock(c device.Clock) ShellOption {
	return func(s *Shell) { s.clock = NewPausableClock(c) }
}

// WithStatus publishes the tick counter to reg
func WithStatus(reg *status.Registry) ShellOption {
	return func(s *Shell) { s.statTicks = reg.Ints.Get(status.KeyEngineTicks) }
}

// WithLogger sets the shell logger
func WithLogger(l *slog.Logger) ShellOption {
	return func(s *Shell) { s.log = l }
}

// NewShell creates a shell with its task runner already registered
func NewShell(opts ...ShellOption) *Shell {
	s := &Shell{
		runner:   NewRunner(),
		maxDelta: parameter.MaxTickDelta,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = NewPausableClock(nil)
	}
	if s.statTicks == nil {
		s.statTicks = new(atomic.Int64)
	}
	s.AddSystem(s.runner)
	return s
}

// Runner returns the shared task runner
func (s *Shell) Runner() *Runner {
	return s.runner
}

// Clock returns the shell's pausable clock
func (s *Shell) Clock() *PausableClock {
	return s.clock
}

// AddSystem inserts sys keeping priority order; equal priorities keep insertion order
func (s *Shell) AddSystem(sys System) {
	s.systems = append(s.systems, sys)
	sort.SliceStable(s.systems, func(i, j int) bool {
		return s.systems[i].Priority() < s.systems[j].Priority()
	})
	s.log.Debug("system added", "name", sys.Name(), "priority", sys.Priority())
}

// Systems returns system names in tick order
func (s *Shell) Systems() []string {
	names := make([]string, len(s.systems))
	for i, sys := range s.systems {
		names[i] = sys.Name()
	}
	return names
}

// Tick runs one frame with an explicit delta
func (s *Shell) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	if dt > s.maxDelta {
		dt = s.maxDelta
	}
	for _, sys := range s.systems {
		sys.Update(dt)
	}
	s.statTicks.Add(1)
}

// Step runs one frame with the delta measured on the pausable clock
// Returns the delta used; no frame runs while paused
func (s *Shell) Step() time.Duration {
	if s.clock.IsPaused() {
		return 0
	}
	now := s.clock.Elapsed()
	dt := now - s.lastElapsed
	s.lastElapsed = now
	s.Tick(dt)
	return dt
}

// Pause freezes shell time
func (s *Shell) Pause() {
	s.clock.Pause()
}

// Resume continues shell time without a catch-up frame
func (s *Shell) Resume() {
	s.clock.Resume()
	s.lastElapsed = s.clock.Elapsed()
}
