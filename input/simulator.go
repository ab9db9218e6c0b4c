package input

import (
	"github.com/lixenwraith/spatial-shell/device"
	"github.com/lixenwraith/spatial-shell/vmath"
)

// Simulator is a Source driven by explicit raw state, used by tests and the terminal sandbox
// Raw controls are sampled once per Poll, so Poll must be called exactly once per node per tick
type Simulator struct {
	hands map[device.Node]*simulatedHand
}

type simulatedHand struct {
	show, sel bool
	anchor    vmath.Vec3

	showLatch, selLatch Latch
}

// NewSimulator creates a simulator with left and right hands at the origin
func NewSimulator() *Simulator {
	return &Simulator{
		hands: map[device.Node]*simulatedHand{
			device.NodeLeftHand:  {},
			device.NodeRightHand: {},
		},
	}
}

func (s *Simulator) hand(node device.Node) *simulatedHand {
	h, ok := s.hands[node]
	if !ok {
		h = &simulatedHand{}
		s.hands[node] = h
	}
	return h
}

// SetShow sets the raw show control
func (s *Simulator) SetShow(node device.Node, down bool) {
	s.hand(node).show = down
}

// SetSelect sets the raw select control
func (s *Simulator) SetSelect(node device.Node, down bool) {
	s.hand(node).sel = down
}

// SetAnchor places the controller's menu origin
func (s *Simulator) SetAnchor(node device.Node, pos vmath.Vec3) {
	s.hand(node).anchor = pos
}

// MoveAnchor offsets the controller's menu origin
func (s *Simulator) MoveAnchor(node device.Node, delta vmath.Vec3) {
	h := s.hand(node)
	h.anchor = vmath.V3Add(h.anchor, delta)
}

// Anchor returns the controller's menu origin
func (s *Simulator) Anchor(node device.Node) vmath.Vec3 {
	return s.hand(node).anchor
}

// Show returns the raw show control
func (s *Simulator) Show(node device.Node) bool {
	return s.hand(node).show
}

// Poll samples the raw state into a frame with edges
func (s *Simulator) Poll(node device.Node) Frame {
	h := s.hand(node)
	return Frame{
		Show:   h.showLatch.Update(h.show),
		Select: h.selLatch.Update(h.sel),
		Anchor: h.anchor,
	}
}
