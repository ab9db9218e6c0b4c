package parameter

import "time"

// Adaptive Positioning
const (
	// RepositionDuration is the travel time of an adaptive element back into view
	RepositionDuration = 750 * time.Millisecond

	// RepositionPulseDuration is the haptic cue played when a reposition starts
	RepositionPulseDuration = 100 * time.Millisecond

	// RepositionPulseIntensity is the amplitude of the reposition cue
	RepositionPulseIntensity = 0.2

	// AdaptiveAnchorName is the shared parent every registered element is placed under
	AdaptiveAnchorName = "adaptive-position-anchor"
)

// Adaptive element defaults, distances at viewer scale 1
const (
	ElementRestDistance       = 0.65
	ElementAllowedDivergence  = 45.0 // degrees
	ElementAllowedMinDistance = 0.25
	ElementAllowedMaxDistance = 1.25
)
