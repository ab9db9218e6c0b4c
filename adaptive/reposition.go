package adaptive

import (
	"time"

	"github.com/lixenwraith/spatial-shell/device"
	"github.com/lixenwraith/spatial-shell/engine"
	"github.com/lixenwraith/spatial-shell/vmath"
)

// repositionTask moves one element to its rest position in front of the head
// A reset snaps on its first step without a haptic cue
type repositionTask struct {
	c     *Controller
	el    *Element
	reset bool

	started  bool
	from, to vmath.Vec3
	elapsed  time.Duration
}

func (t *repositionTask) Advance(dt time.Duration) engine.Status {
	head, ok := t.c.headPose()

	if !t.started {
		t.started = true
		t.from = t.el.Pose.Position
		t.to = t.from
		if ok {
			t.to = head.PointAhead(t.el.RestDistance * t.c.scale.ViewerScale())
		}
		if t.reset || !ok {
			return t.finish(head, ok)
		}
		if t.c.haptics != nil {
			t.c.haptics.Pulse(device.NodeNone, &t.c.cfg.MovingPulse, 1, 1)
		}
		t.el.beingMoved = true
	}

	t.elapsed += dt
	duration := t.c.cfg.RepositionDuration
	if t.elapsed >= duration {
		return t.finish(head, ok)
	}

	// Ease-in/ease-out, squared for a slow start
	shaped := vmath.SmoothInOut(float64(t.elapsed) / float64(duration))
	shaped *= shaped
	t.el.Pose.Position = vmath.V3Lerp(t.from, t.to, shaped)
	if ok {
		t.faceHead(head)
	}
	return engine.Continue
}

func (t *repositionTask) finish(head vmath.Pose, ok bool) engine.Status {
	t.el.Pose.Position = t.to
	if ok {
		t.faceHead(head)
	}
	t.el.beingMoved = false
	t.el.ResetAdaptivePosition = false
	t.el.task = nil
	return engine.Done
}

// faceHead orients the element along the head-to-element direction so its front faces the user
func (t *repositionTask) faceHead(head vmath.Pose) {
	t.el.Pose.Rotation = vmath.QuatLookRotation(vmath.V3Sub(t.el.Pose.Position, head.Position), vmath.V3Up)
}
