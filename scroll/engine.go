// Package scroll converts continuous controller displacement into a one-dimensional wrapping scroll value
// A gesture arms until the controller travels past a scale-aware threshold, then locks its direction
// for the rest of the session
package scroll

import (
	"log/slog"
	"math"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lixenwraith/spatial-shell/device"
	"github.com/lixenwraith/spatial-shell/parameter"
	"github.com/lixenwraith/spatial-shell/status"
	"github.com/lixenwraith/spatial-shell/vmath"
)

// Config tunes lock-in and the arming cue
type Config struct {
	LockInDistance   float64            `koanf:"lock_in_distance"`
	ArmingPulseRate  float64            `koanf:"arming_pulse_rate"`
	ArmingPulseLevel float64            `koanf:"arming_pulse_level"`
	ArmingPulse      device.HapticPulse `koanf:"arming_pulse"`
}

// DefaultConfig returns the parameter defaults
func DefaultConfig() Config {
	return Config{
		LockInDistance:   parameter.ScrollLockInDistance,
		ArmingPulseRate:  parameter.ScrollArmingPulseRate,
		ArmingPulseLevel: parameter.ScrollArmingPulseLevel,
		ArmingPulse: device.HapticPulse{
			Duration:  parameter.ScrollArmingPulseDuration,
			Intensity: parameter.ScrollArmingPulseIntensity,
		},
	}
}

// Engine owns every caller's scroll session
// Callers must be comparable; sessions of distinct callers never interact
type Engine struct {
	haptics device.Haptics
	scale   device.ViewerScaler
	rays    device.RaySettings
	clock   device.Clock
	cfg     Config

	epochSeconds float64

	sessions map[any]*Session
	active   []any // Callers in session creation order

	statSessions *atomic.Int64
	statLockIns  *atomic.Int64
	log          *slog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithClock sets the real-time source for the arming pulse
func WithClock(c device.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithStatus publishes session and lock-in counters to reg
func WithStatus(reg *status.Registry) Option {
	return func(e *Engine) {
		e.statSessions = reg.Ints.Get(status.KeyScrollSessions)
		e.statLockIns = reg.Ints.Get(status.KeyScrollLockIns)
	}
}

// WithLogger sets the engine logger
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates a scroll engine; a nil scale means viewer scale 1
func NewEngine(haptics device.Haptics, scale device.ViewerScaler, rays device.RaySettings, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		haptics:      haptics,
		scale:        scale,
		rays:         rays,
		clock:        device.SystemClock{},
		cfg:          cfg,
		sessions:     make(map[any]*Session),
		active:       make([]any, 0, 2),
		statSessions: new(atomic.Int64),
		statLockIns:  new(atomic.Int64),
		log:          slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.scale == nil {
		e.scale = device.FixedScale(1)
	}
	e.epochSeconds = unixSeconds(e.clock)
	return e
}

// PerformScroll advances caller's gesture to currentPosition, creating the session on first use
// An existing session only takes the new current position; its origin, wrap and counts stay fixed
func (e *Engine) PerformScroll(
	caller any,
	node device.Node,
	ray device.RayID,
	startPosition, currentPosition vmath.Vec3,
	wrapLength float64,
	itemCount, maxItemCount int,
	centerVisuals bool,
) *Session {
	s, ok := e.sessions[caller]
	if ok {
		s.current = currentPosition
	} else {
		s = &Session{
			id:            uuid.New(),
			caller:        caller,
			node:          node,
			ray:           ray,
			start:         startPosition,
			current:       currentPosition,
			wrapLength:    wrapLength,
			itemCount:     itemCount,
			maxItemCount:  maxItemCount,
			centerVisuals: centerVisuals,
			forward:       true,
		}
		if e.rays != nil {
			e.rays.AddRayVisibilitySettings(node, caller, false, false)
		}
		e.sessions[caller] = s
		e.active = append(e.active, caller)
		e.statSessions.Store(int64(len(e.sessions)))
		e.log.Debug("scroll session started", "session", s.id, "node", node, "items", itemCount, "wrap", wrapLength)
	}

	e.process(s)
	return s
}

// EndScroll releases caller's ray suppression and discards its session; no-op without a session
func (e *Engine) EndScroll(caller any) {
	s, ok := e.sessions[caller]
	if !ok {
		return
	}
	if e.rays != nil {
		e.rays.RemoveRayVisibilitySettings(s.node, caller)
	}
	delete(e.sessions, caller)
	if i := slices.Index(e.active, caller); i >= 0 {
		e.active = slices.Delete(e.active, i, i+1)
	}
	e.statSessions.Store(int64(len(e.sessions)))
	e.log.Debug("scroll session ended", "session", s.id, "node", s.node, "locked", s.resolved, "position", s.position)
}

// EndAll ends every session in creation order, e.g. on shell teardown
func (e *Engine) EndAll() {
	for len(e.active) > 0 {
		e.EndScroll(e.active[0])
	}
}

// Session returns caller's live session
func (e *Engine) Session(caller any) (*Session, bool) {
	s, ok := e.sessions[caller]
	return s, ok
}

// Active returns the number of live sessions
func (e *Engine) Active() int {
	return len(e.active)
}

func (e *Engine) process(s *Session) {
	scale := e.scale.ViewerScale()
	displacement := vmath.V3Sub(s.current, s.start)

	if !s.resolved {
		threshold := e.cfg.LockInDistance * scale
		magnitude := vmath.V3Mag(displacement)

		if magnitude <= threshold {
			if threshold > 0 {
				s.dragDistance = vmath.Clamp01(magnitude / threshold)
			}
			e.armingPulse(s)
			return
		}

		s.direction = displacement
		s.resolved = true
		s.dragDistance = 1
		e.statLockIns.Add(1)
		e.log.Debug("scroll direction locked", "session", s.id, "direction", s.direction, "distance", magnitude)
	}

	// Backward of the origin the doubled axis is used instead of a negated one,
	// so the projection keeps the locked direction's sense on both sides
	s.forward = vmath.V3Dot(displacement, s.direction) >= 0
	axis := s.direction
	if !s.forward {
		axis = vmath.V3Add(s.direction, s.direction)
	}

	projected := vmath.V3ScalarProject(displacement, axis) / scale
	s.position = LoopingPosition(projected*itemRatio(s.itemCount, s.maxItemCount), s.wrapLength)
}

// armingPulse plays the on/off "still arming" cue, phased on real time so it is frame-rate independent
func (e *Engine) armingPulse(s *Session) {
	if e.haptics == nil {
		return
	}
	t := unixSeconds(e.clock) - e.epochSeconds
	if math.Sin(t*e.cfg.ArmingPulseRate) > e.cfg.ArmingPulseLevel {
		e.haptics.Pulse(s.node, &e.cfg.ArmingPulse, 1, 1)
	}
}

// LoopingPosition wraps a signed projected distance into [0,1)
// Floored modulo keeps the value continuous and increasing across the origin
func LoopingPosition(projected, wrapLength float64) float64 {
	if wrapLength <= 0 || math.IsNaN(projected) || math.IsInf(projected, 0) {
		return 0
	}
	return vmath.FloorMod(projected, wrapLength) / wrapLength
}

// itemRatio scales travel so each item spans the same distance regardless of item count
func itemRatio(itemCount, maxItemCount int) float64 {
	if itemCount <= 0 || maxItemCount <= 0 {
		return 1
	}
	return float64(maxItemCount) / float64(itemCount)
}

func unixSeconds(c device.Clock) float64 {
	return float64(c.Now().UnixNano()) / 1e9
}
