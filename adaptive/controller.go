// Package adaptive keeps registered floating panels inside the user's field of view,
// animating them back in front of the head when they drift out of a viewing cone or distance band
package adaptive

import (
	"log/slog"
	"slices"
	"sync/atomic"
	"time"
	"weak"

	"github.com/lixenwraith/spatial-shell/device"
	"github.com/lixenwraith/spatial-shell/engine"
	"github.com/lixenwraith/spatial-shell/gaze"
	"github.com/lixenwraith/spatial-shell/parameter"
	"github.com/lixenwraith/spatial-shell/status"
	"github.com/lixenwraith/spatial-shell/vmath"
)

// Config tunes repositioning
type Config struct {
	RepositionDuration time.Duration      `koanf:"reposition_duration"`
	MovingPulse        device.HapticPulse `koanf:"moving_pulse"`
	Anchor             string             `koanf:"anchor"`
	Element            ElementConfig      `koanf:"element"`
}

// DefaultConfig returns the parameter defaults
func DefaultConfig() Config {
	return Config{
		RepositionDuration: parameter.RepositionDuration,
		MovingPulse: device.HapticPulse{
			Duration:  parameter.RepositionPulseDuration,
			Intensity: parameter.RepositionPulseIntensity,
			FadeIn:    true,
			FadeOut:   true,
		},
		Anchor:  parameter.AdaptiveAnchorName,
		Element: DefaultElementConfig(),
	}
}

// Controller reconciles registered elements once per tick
type Controller struct {
	head    device.HeadTracker
	gaze    *gaze.Detector
	haptics device.Haptics
	scale   device.ViewerScaler
	runner  *engine.Runner
	cfg     Config

	// Weak registration list in registration order
	elements []weak.Pointer[Element]

	statElements    *atomic.Int64
	statRepositions *atomic.Int64
	log             *slog.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithStatus publishes element and reposition counters to reg
func WithStatus(reg *status.Registry) Option {
	return func(c *Controller) {
		c.statElements = reg.Ints.Get(status.KeyAdaptiveElements)
		c.statRepositions = reg.Ints.Get(status.KeyAdaptiveReposition)
	}
}

// WithLogger sets the controller logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// NewController creates a controller; reposition tasks are scheduled on runner
func NewController(
	head device.HeadTracker,
	detector *gaze.Detector,
	haptics device.Haptics,
	scale device.ViewerScaler,
	runner *engine.Runner,
	cfg Config,
	opts ...Option,
) *Controller {
	c := &Controller{
		head:            head,
		gaze:            detector,
		haptics:         haptics,
		scale:           scale,
		runner:          runner,
		cfg:             cfg,
		statElements:    new(atomic.Int64),
		statRepositions: new(atomic.Int64),
		log:             slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.scale == nil {
		c.scale = device.FixedScale(1)
	}
	return c
}

func (c *Controller) Name() string  { return "adaptive" }
func (c *Controller) Priority() int { return parameter.PriorityAdaptive }

// Register places el at its rest distance in front of the head, parents it under the shared anchor
// with zero rotation and starts tracking it; already registered elements are ignored
func (c *Controller) Register(el *Element) {
	if el == nil || c.indexOf(el) >= 0 {
		return
	}

	if head, ok := c.headPose(); ok {
		el.Pose.Position = head.PointAhead(el.RestDistance * c.scale.ViewerScale())
	}
	el.Anchor = c.cfg.Anchor
	el.Pose.Rotation = vmath.QuatIdentity

	c.elements = append(c.elements, weak.Make(el))
	c.statElements.Store(int64(len(c.elements)))
	c.log.Debug("adaptive element registered", "element", el.Name, "position", el.Pose.Position)
}

// Deregister stops tracking el; its pose and any running task are left to the caller
func (c *Controller) Deregister(el *Element) {
	if i := c.indexOf(el); i >= 0 {
		c.elements = slices.Delete(c.elements, i, i+1)
		c.statElements.Store(int64(len(c.elements)))
		c.log.Debug("adaptive element deregistered", "element", el.Name)
	}
}

// Len returns the number of live registrations
func (c *Controller) Len() int {
	n := 0
	for _, wp := range c.elements {
		if wp.Value() != nil {
			n++
		}
	}
	return n
}

// Update reconciles every registered element in registration order
// Only one reset request is serviced per tick
func (c *Controller) Update(dt time.Duration) {
	head, ok := c.headPose()
	if !ok {
		return
	}
	c.prune()

	scale := c.scale.ViewerScale()
	for _, wp := range c.elements {
		el := wp.Value()
		if el == nil {
			continue
		}

		if el.ResetAdaptivePosition {
			c.reposition(el, true)
			return
		}

		el.inFocus = !c.gaze.IsAbove(el.Pose.Position, el.AllowedGazeDivergence)

		if !el.AdaptivePositionEnabled || el.task.Running() {
			continue
		}

		if c.shouldMove(el, head, scale) {
			c.reposition(el, false)
		}
	}
}

// shouldMove decides whether an idle element needs to come back into view
// The minimum distance is always honored so the head never passes through a panel
func (c *Controller) shouldMove(el *Element, head vmath.Pose, scale float64) bool {
	if el.RepositionIfOutOfFocus && c.gaze.IsAboveDivergenceThreshold(el.Pose.Position, el.AllowedGazeDivergence, false) {
		return true
	}

	distance := vmath.V3Distance(head.Position, el.Pose.Position) / scale
	if distance > el.AllowedMaxDistance && (!el.OnlyMoveWhenOutOfFocus || !el.inFocus) {
		return true
	}
	return distance < el.AllowedMinDistance
}

func (c *Controller) reposition(el *Element, reset bool) {
	if !reset {
		c.statRepositions.Add(1)
	}
	c.log.Debug("adaptive reposition", "element", el.Name, "reset", reset, "in_focus", el.inFocus)
	c.runner.Restart(&el.task, &repositionTask{c: c, el: el, reset: reset})
}

func (c *Controller) indexOf(el *Element) int {
	return slices.IndexFunc(c.elements, func(wp weak.Pointer[Element]) bool {
		return wp.Value() == el
	})
}

// prune drops registrations whose element has been collected
func (c *Controller) prune() {
	n := len(c.elements)
	c.elements = slices.DeleteFunc(c.elements, func(wp weak.Pointer[Element]) bool {
		return wp.Value() == nil
	})
	if len(c.elements) != n {
		c.statElements.Store(int64(len(c.elements)))
	}
}

func (c *Controller) headPose() (vmath.Pose, bool) {
	if c.head == nil {
		return vmath.Pose{}, false
	}
	return c.head.HeadPose()
}
