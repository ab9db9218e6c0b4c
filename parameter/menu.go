package parameter

import "time"

// Pinned Tool Menu
const (
	// MenuMaxButtonCount bounds the slots of one pinned menu, main-menu slot included
	MenuMaxButtonCount = 16

	// MenuMainMenuOrder is the reserved hidden slot
	MenuMainMenuOrder = 0

	// MenuActiveToolOrder is the slot reserved for the active tool
	MenuActiveToolOrder = 1

	// MenuAllowToggleDuration is the press/release window that cycles to the next tool without a gesture
	MenuAllowToggleDuration = 250 * time.Millisecond

	// MenuScrollWrapLength is the controller travel that scrolls once through every slot
	MenuScrollWrapLength = 0.325

	// MenuClickPulseDuration is the confirmation cue length
	MenuClickPulseDuration = 25 * time.Millisecond

	// MenuClickPulseIntensity is the confirmation cue amplitude
	MenuClickPulseIntensity = 0.3
)
