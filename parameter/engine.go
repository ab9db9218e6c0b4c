package parameter

import "time"

// Frame Loop
const (
	// TickInterval is the simulated headset frame interval (~90 Hz)
	TickInterval = 11 * time.Millisecond

	// MaxTickDelta caps the delta handed to systems after a stall (debugger, window drag)
	MaxTickDelta = 100 * time.Millisecond

	// SandboxRenderInterval is the terminal sandbox redraw interval (~30 FPS)
	SandboxRenderInterval = 33 * time.Millisecond
)

// System priorities, lower runs first within a tick
const (
	PriorityGaze     = 10
	PriorityAdaptive = 20
	PriorityMenu     = 30
	PriorityTasks    = 40
)
