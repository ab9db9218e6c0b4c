package main

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spatial-shell/pinned"
	"github.com/lixenwraith/spatial-shell/vmath"
)

const (
	radarWidth  = 33
	radarHeight = 17
	radarRange  = 1.6 // Meters from the head to the radar edge, at viewer scale 1
)

var (
	styleText   = tcell.StyleDefault
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleActive = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleHot    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleWarn   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// draw renders the readout on the left and a top-down radar on the right
func (s *sandbox) draw(screen tcell.Screen) {
	screen.Clear()
	width, height := screen.Size()

	y := 0
	line := func(style tcell.Style, format string, args ...any) {
		if y < height {
			drawText(screen, 0, y, style, fmt.Sprintf(format, args...))
		}
		y++
	}

	title := "spatial-sandbox"
	if s.paused {
		title += "  [paused]"
	}
	if s.audio != nil && !s.audio.IsMuted() && s.audio.IsRunning() {
		title += "  [audio]"
	}
	line(styleTitle, "%s", title)
	clock := s.shell.Clock()
	line(styleDim, "time  %s  paused %s", clock.Elapsed().Truncate(time.Millisecond), clock.TotalPauseDuration().Truncate(time.Millisecond))
	line(styleText, "head  yaw %6.1f  pitch %6.1f  scale %.2f", s.yaw, s.pitch, s.scale.Value)
	line(styleText, "gaze  velocity %.3f  stable %s", s.gaze.Velocity(), yesNo(s.gaze.IsStable()))

	anchor := s.sim.Anchor(menuHand)
	line(styleText, "hand  (%.3f, %.3f, %.3f)  show %s  select %s", anchor.X, anchor.Y, anchor.Z, yesNo(s.show), yesNo(s.sel))
	line(styleText, "pulses %d  last %s %v @ %.2f", s.pulse.count, s.pulse.node, s.pulse.last.Duration, s.pulse.last.Intensity)
	y++

	state := s.menu.State()
	stateStyle := styleText
	if state != pinned.Idle {
		stateStyle = styleActive
	}
	line(stateStyle, "menu  %s  tool %s", state, s.tool)
	if session, ok := s.scroll.Session(s.menu); ok {
		line(styleText, "      drag %.2f  locked %s  position %.3f",
			session.DragDistance(), yesNo(session.PassedMinDragActivationThreshold()), session.NormalizedLoopingPosition())
	} else {
		line(styleDim, "      no scroll session")
	}
	for _, b := range s.menu.Menu().Buttons() {
		marker, style := "  ", styleText
		switch {
		case b.Highlighted:
			marker, style = "> ", styleHot
		case b.Active:
			marker, style = "* ", styleActive
		case b.Tool == pinned.MainMenuTool:
			style = styleDim
		}
		line(style, "%s[%2d] %s", marker, b.Order, b.Tool)
	}
	y++

	head := s.head.Pose
	for _, p := range s.panels {
		distance := vmath.V3Distance(head.Position, p.Pose.Position) / s.scale.Value
		style := styleText
		if !p.InFocus() {
			style = styleWarn
		}
		line(style, "panel %-10s dist %.2f  focus %-3s  moving %-3s",
			p.Name, distance, yesNo(p.InFocus()), yesNo(p.BeingMoved()))
	}
	y++

	for _, l := range s.reg.Lines() {
		line(styleDim, "%s", l)
	}
	y++
	line(styleDim, "arrows head  hjkl/io hand  0 recenter  space show  enter select")
	line(styleDim, "r reset panels  +/- scale  t add tool  x delete tool  m mute  p pause  q quit")

	if ox := width - radarWidth - 1; ox > 60 {
		s.drawRadar(screen, ox, 1)
	}
	screen.Show()
}

// drawRadar plots the head, its forward direction, the hand and the panels from above
func (s *sandbox) drawRadar(screen tcell.Screen, ox, oy int) {
	for row := 0; row < radarHeight; row++ {
		for col := 0; col < radarWidth; col++ {
			screen.SetContent(ox+col, oy+row, '·', nil, styleDim)
		}
	}

	head := s.head.Pose
	span := radarRange * s.scale.Value
	plot := func(p vmath.Vec3, r rune, style tcell.Style) {
		rel := vmath.V3Sub(p, head.Position)
		col := radarWidth/2 + int(math.Round(rel.X/span*float64(radarWidth/2)))
		row := radarHeight/2 - int(math.Round(rel.Z/span*float64(radarHeight/2)))
		if col >= 0 && col < radarWidth && row >= 0 && row < radarHeight {
			screen.SetContent(ox+col, oy+row, r, nil, style)
		}
	}

	plot(head.PointAhead(span*0.35), '^', styleActive)
	plot(s.sim.Anchor(menuHand), 'h', styleText)
	for _, p := range s.panels {
		style := styleTitle
		if !p.InFocus() {
			style = styleWarn
		}
		plot(p.Pose.Position, rune(p.Name[0]), style)
	}
	plot(head.Position, '@', styleTitle)
}
