package haptics

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/spatial-shell/device"
)

// Tone frequencies per hand, so left and right cues are distinguishable by ear
const (
	toneLeft  = 220.0
	toneRight = 330.0
	toneNone  = 440.0

	// Share of the pulse spent fading when a fade flag is set
	fadeFraction = 0.25
)

func toneFor(node device.Node) float64 {
	switch node {
	case device.NodeLeftHand:
		return toneLeft
	case device.NodeRightHand:
		return toneRight
	default:
		return toneNone
	}
}

// Render converts a pulse request into a finite audio cue
// Returns nil when the scaled pulse is silent or shorter than one sample
func Render(node device.Node, pulse *device.HapticPulse, durationScale, intensityScale float64, rate beep.SampleRate) beep.Streamer {
	if pulse == nil {
		return nil
	}
	duration := time.Duration(float64(pulse.Duration) * durationScale)
	intensity := math.Min(1, pulse.Intensity*intensityScale)
	total := rate.N(duration)
	if total <= 0 || intensity <= 0 {
		return nil
	}

	tone, err := generators.SineTone(rate, toneFor(node))
	if err != nil {
		return nil
	}

	var attack, release int
	if pulse.FadeIn {
		attack = int(float64(total) * fadeFraction)
	}
	if pulse.FadeOut {
		release = int(float64(total) * fadeFraction)
	}

	return newVolume(newFade(beep.Take(total, tone), total, attack, release), intensity)
}

// fade applies linear attack/release shaping to a finite stream
type fade struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newFade(s beep.Streamer, total, attack, release int) *fade {
	return &fade{
		streamer:       s,
		attackSamples:  attack,
		releaseSamples: release,
		totalSamples:   total,
	}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if f.position >= f.totalSamples {
			return i, false
		}

		vol := 1.0
		if f.attackSamples > 0 && f.position < f.attackSamples {
			vol = float64(f.position) / float64(f.attackSamples)
		}
		if f.releaseSamples > 0 {
			remaining := f.totalSamples - f.position
			if remaining < f.releaseSamples {
				vol = math.Min(vol, float64(remaining)/float64(f.releaseSamples))
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// newVolume scales amplitude; beep volume is logarithmic, so zero is mapped to silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
