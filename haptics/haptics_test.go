package haptics

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/spatial-shell/device"
	"github.com/lixenwraith/spatial-shell/device/devicetest"
)

// drain reads a finite streamer to completion
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer did not terminate")
	return nil
}

func peak(samples [][2]float64) float64 {
	p := 0.0
	for _, s := range samples {
		p = math.Max(p, math.Abs(s[0]))
	}
	return p
}

func TestRender_Length(t *testing.T) {
	pulse := &device.HapticPulse{Duration: 100 * time.Millisecond, Intensity: 0.5}

	samples := drain(t, Render(device.NodeRightHand, pulse, 1, 1, sampleRate))
	assert.Len(t, samples, sampleRate.N(100*time.Millisecond))

	scaled := drain(t, Render(device.NodeRightHand, pulse, 0.5, 1, sampleRate))
	assert.Len(t, scaled, sampleRate.N(50*time.Millisecond))
}

func TestRender_Intensity(t *testing.T) {
	pulse := &device.HapticPulse{Duration: 100 * time.Millisecond, Intensity: 0.5}

	samples := drain(t, Render(device.NodeLeftHand, pulse, 1, 1, sampleRate))
	assert.InDelta(t, 0.5, peak(samples), 0.01)

	clamped := drain(t, Render(device.NodeLeftHand, pulse, 1, 4, sampleRate))
	assert.InDelta(t, 1.0, peak(clamped), 0.01, "intensity is clamped to full scale")
}

func TestRender_Fades(t *testing.T) {
	flat := &device.HapticPulse{Duration: 100 * time.Millisecond, Intensity: 1}
	faded := &device.HapticPulse{Duration: 100 * time.Millisecond, Intensity: 1, FadeIn: true, FadeOut: true}

	a := drain(t, Render(device.NodeRightHand, flat, 1, 1, sampleRate))
	b := drain(t, Render(device.NodeRightHand, faded, 1, 1, sampleRate))
	require.Equal(t, len(a), len(b))

	edge := len(a) / 20
	assert.Greater(t, peak(a[:edge]), 0.9)
	assert.Less(t, peak(b[:edge]), 0.25, "fade in")
	assert.Less(t, peak(b[len(b)-edge:]), 0.25, "fade out")

	mid := len(b) / 2
	assert.InDelta(t, peak(a[mid-edge:mid+edge]), peak(b[mid-edge:mid+edge]), 1e-9, "sustain untouched")
}

func TestRender_Silent(t *testing.T) {
	pulse := &device.HapticPulse{Duration: 10 * time.Millisecond, Intensity: 0.3}

	assert.Nil(t, Render(device.NodeRightHand, nil, 1, 1, sampleRate))
	assert.Nil(t, Render(device.NodeRightHand, pulse, 0, 1, sampleRate))
	assert.Nil(t, Render(device.NodeRightHand, pulse, 1, 0, sampleRate))
	assert.Nil(t, Render(device.NodeRightHand, &device.HapticPulse{Intensity: 1}, 1, 1, sampleRate))
}

func TestAudioSink_DropsWhenStopped(t *testing.T) {
	sink := NewAudioSink(nil)
	require.NoError(t, sink.Init(false))
	assert.False(t, sink.IsRunning())

	sink.Pulse(device.NodeRightHand, &device.HapticPulse{Duration: time.Millisecond, Intensity: 1}, 1, 1)

	played, dropped := sink.Stats()
	assert.Zero(t, played)
	assert.EqualValues(t, 1, dropped)
	assert.NoError(t, sink.Stop(), "stop is idempotent before start")
}

func TestAudioSink_Mute(t *testing.T) {
	sink := NewAudioSink(nil)
	require.NoError(t, sink.Init(true))
	assert.True(t, sink.IsMuted())

	assert.True(t, sink.ToggleMute())
	assert.False(t, sink.IsMuted())
	assert.Equal(t, "haptics", sink.Name())
	assert.Empty(t, sink.Dependencies())
}

func TestMultiplexer(t *testing.T) {
	a, b := &devicetest.Haptics{}, &devicetest.Haptics{}
	mux := Multiplexer{a, nil, Mute{}, b}
	pulse := &device.HapticPulse{Duration: 25 * time.Millisecond, Intensity: 0.3}

	mux.Pulse(device.NodeLeftHand, pulse, 1, 0.5)

	for _, sink := range []*devicetest.Haptics{a, b} {
		require.Len(t, sink.Calls, 1)
		assert.Equal(t, devicetest.PulseCall{
			Node:           device.NodeLeftHand,
			Pulse:          *pulse,
			DurationScale:  1,
			IntensityScale: 0.5,
		}, sink.Calls[0])
	}
}

func TestMultiplexer_MockExpectations(t *testing.T) {
	m := &devicetest.MockHaptics{}
	pulse := &device.HapticPulse{Duration: 10 * time.Millisecond, Intensity: 0.2}
	m.On("Pulse", device.NodeRightHand, pulse, 1.0, 1.0).Once()

	Multiplexer{m}.Pulse(device.NodeRightHand, pulse, 1, 1)
	m.AssertExpectations(t)
}
