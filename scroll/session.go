package scroll

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/spatial-shell/device"
	"github.com/lixenwraith/spatial-shell/vmath"
)

// Session is one caller's in-progress spatial scroll
// Owned by the Engine; callers read it and never mutate it
type Session struct {
	id     uuid.UUID
	caller any
	node   device.Node
	ray    device.RayID

	start, current vmath.Vec3

	wrapLength              float64
	itemCount, maxItemCount int
	centerVisuals           bool

	// Lock-in: set once, never replaced for the session's lifetime
	direction vmath.Vec3
	resolved  bool

	position     float64 // normalized looping position in [0,1)
	dragDistance float64 // pre-activation drag fraction in [0,1]
	forward      bool
}

// ID correlates the session in logs
func (s *Session) ID() uuid.UUID { return s.id }

// Caller returns the owning caller
func (s *Session) Caller() any { return s.caller }

// Node returns the controller driving the gesture
func (s *Session) Node() device.Node { return s.node }

// Ray returns the pointer ray of the controller
func (s *Session) Ray() device.RayID { return s.ray }

// StartPosition returns the gesture origin
func (s *Session) StartPosition() vmath.Vec3 { return s.start }

// CurrentPosition returns the latest controller position
func (s *Session) CurrentPosition() vmath.Vec3 { return s.current }

// WrapLength returns the scroll repeat period
func (s *Session) WrapLength() float64 { return s.wrapLength }

// ItemCount returns the number of items being scrolled
func (s *Session) ItemCount() int { return s.itemCount }

// MaxItemCount returns the item cap
func (s *Session) MaxItemCount() int { return s.maxItemCount }

// CenterVisuals reports whether scroll visuals should be centred on the origin
func (s *Session) CenterVisuals() bool { return s.centerVisuals }

// Direction returns the locked gesture direction; ok is false before lock-in
func (s *Session) Direction() (dir vmath.Vec3, ok bool) {
	return s.direction, s.resolved
}

// PassedMinDragActivationThreshold reports whether the direction has locked in
func (s *Session) PassedMinDragActivationThreshold() bool {
	return s.resolved
}

// NormalizedLoopingPosition returns the scroll value in [0,1)
func (s *Session) NormalizedLoopingPosition() float64 {
	return s.position
}

// DragDistance returns the pre-activation drag fraction in [0,1], 1 once locked in
func (s *Session) DragDistance() float64 {
	return s.dragDistance
}

// Forward reports whether the controller is on the locked direction's side of the origin
func (s *Session) Forward() bool {
	return s.forward
}
