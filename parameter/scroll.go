package parameter

import "time"

// Spatial Scroll
const (
	// ScrollLockInDistance is the controller travel at viewer scale 1 before a gesture direction locks
	ScrollLockInDistance = 0.0175

	// ScrollArmingPulseRate is the angular frequency (rad/s of wall time) of the arming on/off pulse
	ScrollArmingPulseRate = 20.0

	// ScrollArmingPulseLevel is the sine level above which the arming pulse is on
	ScrollArmingPulseLevel = 0.5

	// ScrollArmingPulseDuration is the length of a single arming pulse
	ScrollArmingPulseDuration = 10 * time.Millisecond

	// ScrollArmingPulseIntensity is the amplitude of a single arming pulse
	ScrollArmingPulseIntensity = 0.2
)
