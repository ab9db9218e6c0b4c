package main

import (
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/spatial-shell/config"
	"github.com/lixenwraith/spatial-shell/pinned"
	"github.com/lixenwraith/spatial-shell/status"
	"github.com/lixenwraith/spatial-shell/vmath"
)

const frame = 11 * time.Millisecond

func newTestSandbox(t *testing.T) *sandbox {
	t.Helper()
	s := newSandbox(config.Default(), nil, slog.New(slog.DiscardHandler))
	t.Cleanup(s.close)
	return s
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func press(t *testing.T, s *sandbox, r rune) {
	t.Helper()
	require.True(t, s.handleKey(runeKey(r)), "key %q must not quit", r)
}

func tick(s *sandbox) {
	s.shell.Tick(frame)
}

func readScreen(screen tcell.Screen) string {
	width, height := screen.Size()
	var sb strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			sb.WriteRune(r)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestSandbox_Wiring(t *testing.T) {
	s := newTestSandbox(t)

	assert.Equal(t, []string{"gaze", "adaptive", "pinned-right", "tasks"}, s.shell.Systems())
	assert.Equal(t, 2, s.adaptive.Len())
	assert.Equal(t, initialTools, s.menu.Menu().ToolCount())
	assert.Equal(t, toolCatalog[initialTools-1], s.tool, "last added tool is active")
	assert.Equal(t, pinned.Idle, s.menu.State())
}

func TestSandbox_QuitKeys(t *testing.T) {
	s := newTestSandbox(t)

	assert.False(t, s.handleKey(key(tcell.KeyEscape)))
	assert.False(t, s.handleKey(key(tcell.KeyCtrlC)))
	assert.False(t, s.handleKey(runeKey('q')))
	assert.True(t, s.handleKey(runeKey('?')), "unbound keys are ignored")
}

func TestSandbox_ScrollCommitsTool(t *testing.T) {
	s := newTestSandbox(t)
	tick(s)

	press(t, s, ' ')
	tick(s)
	require.Equal(t, pinned.Arming, s.menu.State())
	assert.False(t, s.rays.DefaultRayVisible(menuHand), "default ray hidden while the menu is open")

	for range 5 {
		press(t, s, 'l')
	}
	tick(s)
	require.Equal(t, pinned.Scrolling, s.menu.State())

	// Travel is scaled by the max/current item ratio before wrapping
	menu := s.menu.Menu()
	ratio := float64(s.cfg.Menu.MaxButtonCount) / float64(menu.Len())
	position := math.Mod(0.05*ratio, s.cfg.Menu.ScrollWrapLength) / s.cfg.Menu.ScrollWrapLength
	slot := pinned.SlotForPosition(menu.ToolCount(), position)
	expected := menu.Buttons()[slot].Tool

	highlighted := menu.Highlighted()
	require.NotNil(t, highlighted)
	assert.Equal(t, expected, highlighted.Tool)

	press(t, s, ' ')
	tick(s)

	assert.Equal(t, pinned.Idle, s.menu.State())
	assert.Equal(t, expected, s.tool)
	assert.Equal(t, expected, menu.Active().Tool)
	assert.Nil(t, menu.Highlighted())
	assert.True(t, s.rays.DefaultRayVisible(menuHand))
	assert.Nil(t, s.rays.LockHolder(menuHand))
	assert.Equal(t, 0, s.scroll.Active())
	assert.Equal(t, int64(1), s.reg.Ints.Get(status.MenuKey("right", "commits")).Load())
	assert.Positive(t, s.pulse.count)
}

func TestSandbox_QuickToggleCycles(t *testing.T) {
	s := newTestSandbox(t)
	tick(s)
	buttons := s.menu.Menu().Buttons()

	press(t, s, ' ')
	tick(s)
	press(t, s, ' ')
	tick(s)

	assert.Equal(t, pinned.Idle, s.menu.State())
	assert.Equal(t, buttons[2].Tool, s.tool, "quick toggle advances to the next slot")
}

func TestSandbox_SelectPausesScroll(t *testing.T) {
	s := newTestSandbox(t)
	tick(s)

	press(t, s, ' ')
	tick(s)
	require.True(t, s.handleKey(key(tcell.KeyEnter)))
	for range 5 {
		press(t, s, 'l')
	}
	tick(s)

	assert.Equal(t, pinned.Arming, s.menu.State(), "select held keeps the gesture from locking in")
	assert.Nil(t, s.menu.Menu().Highlighted())
}

func TestSandbox_HandMovesInHeadFrame(t *testing.T) {
	s := newTestSandbox(t)

	for range 18 {
		require.True(t, s.handleKey(key(tcell.KeyRight)))
	}
	assert.InDelta(t, 90, s.yaw, 1e-9)

	before := s.sim.Anchor(menuHand)
	press(t, s, 'l')
	after := s.sim.Anchor(menuHand)

	delta := vmath.V3Sub(after, before)
	assert.InDelta(t, handStep, vmath.V3Mag(delta), 1e-9)
	assert.InDelta(t, 0, delta.Y, 1e-9)

	// Head-relative right after a quarter turn is perpendicular to world +X
	assert.InDelta(t, 0, delta.X, 1e-9)

	press(t, s, '0')
	assert.Equal(t, handRest, s.sim.Anchor(menuHand))
}

func TestSandbox_PitchIsClamped(t *testing.T) {
	s := newTestSandbox(t)

	for range 40 {
		s.handleKey(key(tcell.KeyDown))
	}
	assert.InDelta(t, pitchLimit, s.pitch, 1e-9)

	for range 40 {
		s.handleKey(key(tcell.KeyUp))
	}
	assert.InDelta(t, -pitchLimit, s.pitch, 1e-9)
}

func TestSandbox_ScaleBounds(t *testing.T) {
	s := newTestSandbox(t)

	for range 10 {
		press(t, s, '+')
	}
	assert.Equal(t, maxScale, s.scale.Value)

	for range 10 {
		press(t, s, '-')
	}
	assert.Equal(t, minScale, s.scale.Value)
}

func TestSandbox_ResetPanels(t *testing.T) {
	s := newTestSandbox(t)
	tick(s)

	press(t, s, 'r')
	for range len(s.panels) + 1 {
		tick(s)
	}

	ahead := s.head.Pose.PointAhead(s.cfg.Adaptive.Element.RestDistance * s.scale.Value)
	for _, p := range s.panels {
		assert.False(t, p.ResetAdaptivePosition, p.Name)
		assert.InDelta(t, 0, vmath.V3Distance(ahead, p.Pose.Position), 1e-6, p.Name)
	}
}

func TestSandbox_AddAndDeleteTools(t *testing.T) {
	s := newTestSandbox(t)
	menu := s.menu.Menu()

	press(t, s, 't')
	assert.Equal(t, initialTools+1, menu.ToolCount())
	assert.Equal(t, toolCatalog[initialTools], s.tool)
	assert.Equal(t, s.tool, menu.Active().Tool)

	press(t, s, 'x')
	assert.Equal(t, initialTools, menu.ToolCount())
	_, ok := menu.Button(toolCatalog[initialTools])
	assert.False(t, ok)
}

func TestSandbox_PauseFreezesFrames(t *testing.T) {
	s := newTestSandbox(t)

	press(t, s, 'p')
	require.True(t, s.paused)
	assert.Zero(t, s.shell.Step())

	press(t, s, 'p')
	assert.False(t, s.paused)
}

func TestSandbox_CloseResetsSession(t *testing.T) {
	s := newSandbox(config.Default(), nil, slog.New(slog.DiscardHandler))
	tick(s)

	// Sweep the head to build up angular velocity
	for range 6 {
		require.True(t, s.handleKey(key(tcell.KeyRight)))
		tick(s)
	}
	require.Positive(t, s.gaze.Velocity())

	press(t, s, ' ')
	tick(s)
	require.Equal(t, pinned.Arming, s.menu.State())

	s.close()

	assert.Zero(t, s.gaze.Velocity())
	assert.True(t, s.gaze.IsStable())
	assert.Equal(t, pinned.Idle, s.menu.State())
	assert.Nil(t, s.rays.LockHolder(menuHand))
	assert.Equal(t, 0, s.scroll.Active())
	assert.Zero(t, s.shell.Runner().Len())

	// The next frame starts from a fresh rotation cache
	tick(s)
	assert.Zero(t, s.gaze.Velocity())
}

func TestSandbox_Draw(t *testing.T) {
	s := newTestSandbox(t)
	tick(s)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(120, 50)

	s.draw(screen)
	text := readScreen(screen)

	assert.Contains(t, text, "spatial-sandbox")
	assert.Contains(t, text, "menu  idle")
	assert.Contains(t, text, "paused 0s")
	assert.Contains(t, text, "panel inspector")
	assert.Contains(t, text, "panel console")
	for _, tool := range toolCatalog[:initialTools] {
		assert.Contains(t, text, tool)
	}
	assert.Contains(t, text, "@", "radar marks the head")
}
