// Package device declares the collaborators the spatial core consumes from the host application:
// haptics, viewer scale, head tracking, pointer rays and tool selection
// The core only issues requests through these interfaces; implementations live in the host
package device

import (
	"time"

	"github.com/lixenwraith/spatial-shell/vmath"
)

// Node identifies a tracked controller
type Node uint8

const (
	NodeNone Node = iota
	NodeLeftHand
	NodeRightHand
)

// String returns the node name used in logs and metric keys
func (n Node) String() string {
	switch n {
	case NodeLeftHand:
		return "left"
	case NodeRightHand:
		return "right"
	default:
		return "none"
	}
}

// RayID references the pointer ray attached to a controller
type RayID uint32

// HapticPulse is a fixed haptic cue definition
// Waveform synthesis belongs to the Haptics implementation
type HapticPulse struct {
	Duration  time.Duration `koanf:"duration"`
	Intensity float64       `koanf:"intensity"`
	FadeIn    bool          `koanf:"fade_in"`
	FadeOut   bool          `koanf:"fade_out"`
}

// Haptics plays pulses on a controller; NodeNone addresses every controller
type Haptics interface {
	Pulse(node Node, pulse *HapticPulse, durationScale, intensityScale float64)
}

// ViewerScaler reports the uniform scale of the user's viewpoint
type ViewerScaler interface {
	ViewerScale() float64
}

// HeadTracker reports the current head pose; ok is false until tracking is available
type HeadTracker interface {
	HeadPose() (pose vmath.Pose, ok bool)
}

// RayController toggles the default pointer ray and grants single-owner ray locks
// Exclusivity is enforced by the implementation: LockRay fails while another owner holds the ray
type RayController interface {
	SetDefaultRayVisible(node Node, visible bool)
	LockRay(node Node, owner any) bool
	UnlockRay(node Node, owner any) bool
}

// RaySettings stacks per-owner visibility overrides for a controller's ray and cone
type RaySettings interface {
	AddRayVisibilitySettings(node Node, owner any, rayVisible, coneVisible bool)
	RemoveRayVisibilitySettings(node Node, owner any)
}

// ToolSelector receives the tool committed by a pinned menu
type ToolSelector interface {
	SelectTool(node Node, tool string)
}

// Clock supplies real (wall) time, independent of frame or session time
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedScale is a constant ViewerScaler
type FixedScale float64

func (s FixedScale) ViewerScale() float64 {
	if s <= 0 {
		return 1
	}
	return float64(s)
}
