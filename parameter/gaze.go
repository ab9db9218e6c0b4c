package parameter

// Gaze Divergence
const (
	// GazeStableThreshold is the smoothed angular velocity below which gaze counts as stable
	// Accumulator unit: squared degrees of head rotation per frame, integrated over seconds
	GazeStableThreshold = 0.1

	// GazeRecoverySpeed is the default per-second decay of the angular velocity accumulator
	GazeRecoverySpeed = 1.0

	// GazeMinRecoverySpeed floors configured recovery so the accumulator always drains
	GazeMinRecoverySpeed = 0.01

	// GazeVelocityMax clamps the accumulator
	GazeVelocityMax = 1.0
)
