// Package pinned drives the per-hand pinned tool menu: a bounded ring of tool slots
// selected with a spatial scroll gesture while the show control is held
package pinned

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/spatial-shell/device"
	"github.com/lixenwraith/spatial-shell/input"
	"github.com/lixenwraith/spatial-shell/parameter"
	"github.com/lixenwraith/spatial-shell/scroll"
	"github.com/lixenwraith/spatial-shell/status"
	"github.com/lixenwraith/spatial-shell/vmath"
)

// Config tunes one pinned menu
type Config struct {
	MaxButtonCount      int                `koanf:"max_button_count"`
	AllowToggleDuration time.Duration      `koanf:"allow_toggle_duration"`
	ScrollWrapLength    float64            `koanf:"scroll_wrap_length"`
	ClickPulse          device.HapticPulse `koanf:"click_pulse"`
}

// DefaultConfig returns the parameter defaults
func DefaultConfig() Config {
	return Config{
		MaxButtonCount:      parameter.MenuMaxButtonCount,
		AllowToggleDuration: parameter.MenuAllowToggleDuration,
		ScrollWrapLength:    parameter.MenuScrollWrapLength,
		ClickPulse: device.HapticPulse{
			Duration:  parameter.MenuClickPulseDuration,
			Intensity: parameter.MenuClickPulseIntensity,
		},
	}
}

// Controller runs the gesture state machine for one hand's menu
type Controller struct {
	node    device.Node
	ray     device.RayID
	menu    *Menu
	source  input.Source
	scroll  *scroll.Engine
	rays    device.RayController
	tools   device.ToolSelector
	haptics device.Haptics
	clock   device.Clock
	cfg     Config

	state     State
	lock      *device.RayLock
	engaged   bool
	start     vmath.Vec3
	pressedAt time.Time

	statState   *status.AtomicString
	statSlot    *atomic.Int64
	statCommits *atomic.Int64
	statCycles  *atomic.Int64
	log         *slog.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithClock sets the time source of the quick-toggle window
func WithClock(c device.Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithRay sets the pointer ray the scroll session reports
func WithRay(id device.RayID) Option {
	return func(ctl *Controller) { ctl.ray = id }
}

// WithStatus publishes per-hand state, slot, commit and cycle metrics to reg
func WithStatus(reg *status.Registry) Option {
	return func(ctl *Controller) {
		node := ctl.node.String()
		ctl.statState = reg.Strings.Get(status.MenuKey(node, "state"))
		ctl.statSlot = reg.Ints.Get(status.MenuKey(node, "slot"))
		ctl.statCommits = reg.Ints.Get(status.MenuKey(node, "commits"))
		ctl.statCycles = reg.Ints.Get(status.MenuKey(node, "cycles"))
	}
}

// WithLogger sets the controller logger
func WithLogger(l *slog.Logger) Option {
	return func(ctl *Controller) { ctl.log = l }
}

// NewController creates the menu controller for node
func NewController(
	node device.Node,
	menu *Menu,
	source input.Source,
	scroller *scroll.Engine,
	rays device.RayController,
	tools device.ToolSelector,
	haptics device.Haptics,
	cfg Config,
	opts ...Option,
) *Controller {
	c := &Controller{
		node:        node,
		menu:        menu,
		source:      source,
		scroll:      scroller,
		rays:        rays,
		tools:       tools,
		haptics:     haptics,
		clock:       device.SystemClock{},
		cfg:         cfg,
		statState:   new(status.AtomicString),
		statSlot:    new(atomic.Int64),
		statCommits: new(atomic.Int64),
		statCycles:  new(atomic.Int64),
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.statState.Store(c.state.String())
	return c
}

func (c *Controller) Name() string  { return "pinned-" + c.node.String() }
func (c *Controller) Priority() int { return parameter.PriorityMenu }

// State returns the current gesture phase
func (c *Controller) State() State {
	return c.state
}

// Menu returns the controlled menu
func (c *Controller) Menu() *Menu {
	return c.menu
}

// Node returns the controlled hand
func (c *Controller) Node() device.Node {
	return c.node
}

// Update polls input, feeds the scroll engine and applies one transition
func (c *Controller) Update(dt time.Duration) {
	frame := c.source.Poll(c.node)

	in := Input{
		Enabled:     c.menu.Len() > parameter.MenuActiveToolOrder+1,
		Show:        frame.Show,
		Select:      frame.Select,
		ButtonCount: c.menu.ToolCount(),
	}
	if c.state != Idle {
		in.WithinGrace = c.clock.Now().Sub(c.pressedAt) <= c.cfg.AllowToggleDuration
	}

	// A gesture that ends this tick, by any path, leaves no lock behind
	defer func() {
		if c.state == Idle {
			c.releaseGesture()
		}
	}()

	if Scrollable(c.state, in) {
		s := c.scroll.PerformScroll(c, c.node, c.ray, c.start, frame.Anchor,
			c.cfg.ScrollWrapLength, c.menu.Len(), c.cfg.MaxButtonCount, true)
		in.Sample = &Sample{
			Resolved: s.PassedMinDragActivationThreshold(),
			Position: s.NormalizedLoopingPosition(),
		}
	}

	next, effects := Step(c.state, in)
	for _, e := range effects {
		if !c.apply(e, frame) {
			next = Idle
			break
		}
	}
	c.setState(next)

	// Confirming is settled within the tick it is entered
	if c.state == Confirming {
		next, _ = Step(c.state, Input{})
		c.setState(next)
	}
}

// Close ends any gesture in flight, e.g. when the menu's hand is torn down
func (c *Controller) Close() {
	c.setState(Idle)
	c.releaseGesture()
}

func (c *Controller) apply(e Effect, frame input.Frame) bool {
	switch e.Kind {
	case EffectAcquire:
		lock, ok := device.AcquireRayLock(c.rays, c.node, c)
		if !ok {
			c.log.Debug("pinned menu ray lock refused", "node", c.node)
			return false
		}
		c.lock = lock
		c.engaged = true
		c.rays.SetDefaultRayVisible(c.node, false)
		c.start = frame.Anchor
		c.pressedAt = c.clock.Now()

	case EffectHighlight:
		c.menu.Highlight(e.Slot)
		c.statSlot.Store(int64(e.Slot))

	case EffectCommit:
		if b := c.menu.Highlighted(); b != nil {
			c.menu.activate(b)
			c.publish(b)
			c.statCommits.Add(1)
			c.log.Debug("pinned menu commit", "node", c.node, "tool", b.Tool, "slot", b.Order)
		}

	case EffectCycle:
		if b := c.menu.CycleNext(); b != nil {
			c.publish(b)
			c.statCycles.Add(1)
			c.log.Debug("pinned menu cycle", "node", c.node, "tool", b.Tool, "slot", b.Order)
		}

	case EffectPulse:
		if c.haptics != nil {
			c.haptics.Pulse(c.node, &c.cfg.ClickPulse, 1, 1)
		}

	case EffectRelease:
		c.releaseGesture()
	}
	return true
}

// releaseGesture undoes everything Acquire set up; safe to call repeatedly
func (c *Controller) releaseGesture() {
	if !c.engaged {
		return
	}
	c.engaged = false
	c.menu.ClearHighlight()
	c.statSlot.Store(0)
	c.scroll.EndScroll(c)
	c.lock.Release()
	c.lock = nil
	c.rays.SetDefaultRayVisible(c.node, true)
}

func (c *Controller) publish(b *Button) {
	if c.tools != nil {
		c.tools.SelectTool(c.node, b.Tool)
	}
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	c.log.Debug("pinned menu state", "node", c.node, "from", c.state, "to", s)
	c.state = s
	c.statState.Store(s.String())
}
