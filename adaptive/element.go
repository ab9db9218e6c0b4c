package adaptive

import (
	"github.com/lixenwraith/spatial-shell/engine"
	"github.com/lixenwraith/spatial-shell/parameter"
	"github.com/lixenwraith/spatial-shell/vmath"
)

// Element is a floating UI panel that opts into reactive repositioning
// The owning UI creates and tears it down; the Controller only holds a weak reference
type Element struct {
	Name string

	// Pose is the controlled world pose, written by the Controller while repositioning
	Pose vmath.Pose

	// Anchor is the shared parent the element is placed under on registration
	Anchor string

	RestDistance          float64 // Distance from the head at viewer scale 1
	AllowedGazeDivergence float64 // Degrees
	AllowedMinDistance    float64 // Viewer-scale normalized
	AllowedMaxDistance    float64 // Viewer-scale normalized

	AdaptivePositionEnabled bool
	RepositionIfOutOfFocus  bool
	OnlyMoveWhenOutOfFocus  bool

	// ResetAdaptivePosition requests a snap back in front of the head on the next tick
	ResetAdaptivePosition bool

	inFocus    bool
	beingMoved bool
	task       *engine.Handle
}

// ElementConfig holds the placement defaults for new elements
type ElementConfig struct {
	RestDistance          float64 `koanf:"rest_distance"`
	AllowedGazeDivergence float64 `koanf:"allowed_gaze_divergence"`
	AllowedMinDistance    float64 `koanf:"allowed_min_distance"`
	AllowedMaxDistance    float64 `koanf:"allowed_max_distance"`
}

// DefaultElementConfig returns the parameter defaults
func DefaultElementConfig() ElementConfig {
	return ElementConfig{
		RestDistance:          parameter.ElementRestDistance,
		AllowedGazeDivergence: parameter.ElementAllowedDivergence,
		AllowedMinDistance:    parameter.ElementAllowedMinDistance,
		AllowedMaxDistance:    parameter.ElementAllowedMaxDistance,
	}
}

// NewElement creates an element with parameter defaults that repositions when out of focus
func NewElement(name string) *Element {
	return DefaultElementConfig().NewElement(name)
}

// NewElement creates an element using c's placement that repositions when out of focus
func (c ElementConfig) NewElement(name string) *Element {
	return &Element{
		Name:                    name,
		Pose:                    vmath.NewPose(vmath.V3Zero),
		RestDistance:            c.RestDistance,
		AllowedGazeDivergence:   c.AllowedGazeDivergence,
		AllowedMinDistance:      c.AllowedMinDistance,
		AllowedMaxDistance:      c.AllowedMaxDistance,
		AdaptivePositionEnabled: true,
		RepositionIfOutOfFocus:  true,
		inFocus:                 true,
	}
}

// InFocus reports whether the element was within its divergence cone on the last reconciliation
func (e *Element) InFocus() bool {
	return e.inFocus
}

// BeingMoved reports whether a reposition animation is moving the element
func (e *Element) BeingMoved() bool {
	return e.beingMoved
}

// Repositioning reports whether a reposition task is scheduled for the element
func (e *Element) Repositioning() bool {
	return e.task.Running()
}
