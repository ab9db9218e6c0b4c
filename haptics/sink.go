package haptics

import (
	"github.com/lixenwraith/spatial-shell/device"
)

// Mute discards every pulse
type Mute struct{}

func (Mute) Pulse(device.Node, *device.HapticPulse, float64, float64) {}

// Multiplexer forwards each pulse to every sink in order, skipping nil sinks
type Multiplexer []device.Haptics

func (m Multiplexer) Pulse(node device.Node, pulse *device.HapticPulse, durationScale, intensityScale float64) {
	for _, sink := range m {
		if sink != nil {
			sink.Pulse(node, pulse, durationScale, intensityScale)
		}
	}
}
