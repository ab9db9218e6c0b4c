package input

import (
	"github.com/lixenwraith/spatial-shell/device"
	"github.com/lixenwraith/spatial-shell/vmath"
)

// ControlState is the per-tick edge state of a digital control
type ControlState struct {
	JustPressed  bool // Went down this tick
	Held         bool // Down this tick, including the press tick
	JustReleased bool // Went up this tick
}

// Frame is one controller's input snapshot for a tick
type Frame struct {
	Show   ControlState // Pinned menu show / scroll control
	Select ControlState // Confirm / select control

	// Anchor is the world position of the controller's menu origin
	Anchor vmath.Vec3
}

// Source is the host input polling collaborator
type Source interface {
	Poll(node device.Node) Frame
}

// Latch derives edges from a raw held signal sampled once per tick
type Latch struct {
	prev bool
}

// Update samples the raw state and returns this tick's edges
func (l *Latch) Update(down bool) ControlState {
	s := ControlState{
		JustPressed:  down && !l.prev,
		Held:         down,
		JustReleased: !down && l.prev,
	}
	l.prev = down
	return s
}

// Reset forgets the previous sample
func (l *Latch) Reset() {
	l.prev = false
}
