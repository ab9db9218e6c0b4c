package main

import (
	"log/slog"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spatial-shell/adaptive"
	"github.com/lixenwraith/spatial-shell/config"
	"github.com/lixenwraith/spatial-shell/device"
	"github.com/lixenwraith/spatial-shell/device/sim"
	"github.com/lixenwraith/spatial-shell/engine"
	"github.com/lixenwraith/spatial-shell/gaze"
	"github.com/lixenwraith/spatial-shell/haptics"
	"github.com/lixenwraith/spatial-shell/input"
	"github.com/lixenwraith/spatial-shell/pinned"
	"github.com/lixenwraith/spatial-shell/scroll"
	"github.com/lixenwraith/spatial-shell/status"
	"github.com/lixenwraith/spatial-shell/vmath"
)

const (
	menuHand = device.NodeRightHand

	headHeight = 1.6
	yawStep    = 5.0
	pitchStep  = 5.0
	pitchLimit = 80.0
	handStep   = 0.01
	minScale   = 0.25
	maxScale   = 8.0
)

var (
	handRest     = vmath.Vec3{X: 0.2, Y: headHeight - 0.3, Z: 0.4}
	toolCatalog  = []string{"select", "paint", "measure", "annotate", "inspect", "sculpt", "erase", "light"}
	initialTools = 5
)

// sandbox simulates a headset: keyboard-driven head and right hand feeding the spatial core
// All mutation happens on the caller's goroutine between Step calls
type sandbox struct {
	cfg   *config.Config
	reg   *status.Registry
	shell *engine.Shell
	log   *slog.Logger

	head  *sim.Head
	scale *sim.Scale
	rays  *sim.Rays
	sim   *input.Simulator
	pulse *pulseMeter
	audio *haptics.AudioSink

	gaze     *gaze.Detector
	scroll   *scroll.Engine
	adaptive *adaptive.Controller
	menu     *pinned.Controller
	panels   []*adaptive.Element

	yaw, pitch float64
	show, sel  bool
	tool       string
	nextTool   int
	paused     bool
}

// pulseMeter counts pulses for the readout
type pulseMeter struct {
	count int
	last  device.HapticPulse
	node  device.Node
}

func (p *pulseMeter) Pulse(node device.Node, pulse *device.HapticPulse, _, _ float64) {
	p.count++
	p.node = node
	if pulse != nil {
		p.last = *pulse
	}
}

func newSandbox(cfg *config.Config, audio *haptics.AudioSink, log *slog.Logger) *sandbox {
	s := &sandbox{
		cfg:   cfg,
		reg:   status.NewRegistry(),
		log:   log,
		head:  sim.NewHead(),
		scale: &sim.Scale{Value: 1},
		rays:  sim.NewRays(),
		sim:   input.NewSimulator(),
		pulse: &pulseMeter{},
		audio: audio,
	}

	var sink device.Haptics = haptics.Mute{}
	if audio != nil {
		sink = audio
	}
	sink = haptics.Multiplexer{sink, s.pulse}

	s.shell = engine.NewShell(engine.WithStatus(s.reg), engine.WithLogger(log))

	s.gaze = gaze.NewDetector(s.head, cfg.Gaze, gaze.WithStatus(s.reg), gaze.WithLogger(log))
	s.scroll = scroll.NewEngine(sink, s.scale, s.rays, cfg.Scroll, scroll.WithStatus(s.reg), scroll.WithLogger(log))
	s.adaptive = adaptive.NewController(s.head, s.gaze, sink, s.scale, s.shell.Runner(), cfg.Adaptive,
		adaptive.WithStatus(s.reg), adaptive.WithLogger(log))

	menu := pinned.NewMenu(cfg.Menu.MaxButtonCount)
	for _, tool := range toolCatalog[:initialTools] {
		menu.SelectTool(tool, tool[:1])
	}
	s.nextTool = initialTools
	s.tool = menu.Active().Tool
	s.menu = pinned.NewController(menuHand, menu, s.sim, s.scroll, s.rays, s, sink, cfg.Menu,
		pinned.WithStatus(s.reg), pinned.WithLogger(log))

	s.shell.AddSystem(s.gaze)
	s.shell.AddSystem(s.adaptive)
	s.shell.AddSystem(s.menu)

	s.applyHead()
	s.sim.SetAnchor(menuHand, handRest)

	inspector := cfg.Adaptive.Element.NewElement("inspector")
	console := cfg.Adaptive.Element.NewElement("console")
	console.OnlyMoveWhenOutOfFocus = true
	console.RepositionIfOutOfFocus = false
	s.panels = []*adaptive.Element{inspector, console}
	for _, p := range s.panels {
		s.adaptive.Register(p)
	}
	// Console starts off to the side so it only comes back when too close or too far
	console.Pose.Position = vmath.V3Add(console.Pose.Position, vmath.Vec3{X: 0.5})

	return s
}

// SelectTool implements device.ToolSelector
func (s *sandbox) SelectTool(node device.Node, tool string) {
	s.tool = tool
	s.log.Info("tool selected", "node", node, "tool", tool)
}

// step advances the core by one real-time frame
func (s *sandbox) step() {
	s.shell.Step()
}

// close tears the session down: gestures, scroll sessions, moves in flight and gaze history
func (s *sandbox) close() {
	s.menu.Close()
	s.scroll.EndAll()
	s.shell.Runner().CancelAll()
	s.gaze.Reset()
}

func (s *sandbox) applyHead() {
	s.head.Pose = vmath.Pose{
		Position: vmath.Vec3{Y: headHeight},
		Rotation: vmath.QuatYawPitch(s.yaw, s.pitch),
	}
}

// handleKey applies one key event, returns false to quit
func (s *sandbox) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		s.turn(-yawStep, 0)
	case tcell.KeyRight:
		s.turn(yawStep, 0)
	case tcell.KeyUp:
		s.turn(0, -pitchStep)
	case tcell.KeyDown:
		s.turn(0, pitchStep)
	case tcell.KeyEnter:
		s.sel = !s.sel
		s.sim.SetSelect(menuHand, s.sel)
	case tcell.KeyRune:
		return s.handleRune(ev.Rune())
	}
	return true
}

func (s *sandbox) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		s.show = !s.show
		s.sim.SetShow(menuHand, s.show)
	case 'h':
		s.moveHand(vmath.Vec3{X: -handStep})
	case 'l':
		s.moveHand(vmath.Vec3{X: handStep})
	case 'j':
		s.moveHand(vmath.Vec3{Y: -handStep})
	case 'k':
		s.moveHand(vmath.Vec3{Y: handStep})
	case 'i':
		s.moveHand(vmath.Vec3{Z: handStep})
	case 'o':
		s.moveHand(vmath.Vec3{Z: -handStep})
	case '0':
		s.sim.SetAnchor(menuHand, handRest)
	case 'r':
		for _, p := range s.panels {
			p.ResetAdaptivePosition = true
		}
	case '+', '=':
		s.scale.Value = math.Min(maxScale, s.scale.Value*2)
	case '-':
		s.scale.Value = math.Max(minScale, s.scale.Value/2)
	case 't':
		s.addTool()
	case 'x':
		if b := s.menu.Menu().Active(); b != nil {
			s.menu.Menu().DeleteTool(b.Tool)
		}
	case 'm':
		if s.audio != nil {
			s.audio.ToggleMute()
		}
	case 'p':
		s.togglePause()
	}
	return true
}

func (s *sandbox) turn(dyaw, dpitch float64) {
	s.yaw = math.Mod(s.yaw+dyaw, 360)
	s.pitch = math.Max(-pitchLimit, math.Min(pitchLimit, s.pitch+dpitch))
	s.applyHead()
}

// moveHand offsets the hand in head-relative axes so "right" stays right after turning
func (s *sandbox) moveHand(delta vmath.Vec3) {
	world := vmath.QuatRotate(vmath.QuatYawPitch(s.yaw, 0), delta)
	s.sim.MoveAnchor(menuHand, vmath.V3Scale(world, s.scale.Value))
}

func (s *sandbox) addTool() {
	tool := toolCatalog[s.nextTool%len(toolCatalog)]
	s.nextTool++
	res, _ := s.menu.Menu().SelectTool(tool, tool[:1])
	s.log.Debug("tool added", "tool", tool, "result", res)
	if res != pinned.Refused {
		s.tool = tool
	}
}

func (s *sandbox) togglePause() {
	s.paused = !s.paused
	if s.paused {
		s.shell.Pause()
	} else {
		s.shell.Resume()
	}
}
