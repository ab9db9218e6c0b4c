// Package haptics provides desktop sinks for pulse requests: an audio preview
// through the system speaker, a mute sink and a fan-out multiplexer
package haptics

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/spatial-shell/device"
)

const (
	sampleRate     = beep.SampleRate(44100)
	speakerLatency = 100 * time.Millisecond
)

// AudioSink voices pulse requests as short tones so gestures can be previewed without controllers
// It is a service: pulses before Start, after Stop or while muted are counted and dropped
// A missing audio device disables the sink instead of failing Start
type AudioSink struct {
	mu       sync.Mutex
	mixer    *beep.Mixer
	rate     beep.SampleRate
	running  atomic.Bool
	muted    atomic.Bool
	disabled atomic.Bool

	played  atomic.Uint64
	dropped atomic.Uint64

	log *slog.Logger
}

// NewAudioSink creates a stopped sink
func NewAudioSink(log *slog.Logger) *AudioSink {
	if log == nil {
		log = slog.Default()
	}
	return &AudioSink{
		mixer: &beep.Mixer{},
		rate:  sampleRate,
		log:   log,
	}
}

// Name implements service.Service
func (a *AudioSink) Name() string { return "haptics" }

// Dependencies implements service.Service
func (a *AudioSink) Dependencies() []string { return nil }

// Init implements service.Service
// args[0]: bool initial mute state
func (a *AudioSink) Init(args ...any) error {
	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok {
			a.muted.Store(muted)
		}
	}
	return nil
}

// Start opens the speaker and begins mixing
func (a *AudioSink) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running.Load() || a.disabled.Load() {
		return nil
	}
	if err := speaker.Init(a.rate, a.rate.N(speakerLatency)); err != nil {
		a.disabled.Store(true)
		a.log.Warn("haptics audio unavailable, continuing silent", "error", fmt.Errorf("speaker init: %w", err))
		return nil
	}
	speaker.Play(a.mixer)
	a.running.Store(true)
	a.log.Debug("haptics audio started", "rate", int(a.rate))
	return nil
}

// Stop clears pending cues and closes the speaker
func (a *AudioSink) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.running.CompareAndSwap(true, false) {
		return nil
	}
	speaker.Lock()
	a.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	a.log.Debug("haptics audio stopped", "played", a.played.Load(), "dropped", a.dropped.Load())
	return nil
}

// Pulse implements device.Haptics
func (a *AudioSink) Pulse(node device.Node, pulse *device.HapticPulse, durationScale, intensityScale float64) {
	if !a.running.Load() || a.muted.Load() {
		a.dropped.Add(1)
		return
	}
	cue := Render(node, pulse, durationScale, intensityScale, a.rate)
	if cue == nil {
		return
	}

	speaker.Lock()
	a.mixer.Add(cue)
	speaker.Unlock()
	a.played.Add(1)
}

// ToggleMute flips the mute state, returns true if now audible
func (a *AudioSink) ToggleMute() bool {
	muted := !a.muted.Load()
	a.muted.Store(muted)
	return !muted
}

// IsMuted returns the mute state
func (a *AudioSink) IsMuted() bool {
	return a.muted.Load()
}

// IsDisabled reports whether no audio device could be opened
func (a *AudioSink) IsDisabled() bool {
	return a.disabled.Load()
}

// IsRunning reports whether the speaker is open
func (a *AudioSink) IsRunning() bool {
	return a.running.Load()
}

// Stats returns played and dropped cue counts
func (a *AudioSink) Stats() (played, dropped uint64) {
	return a.played.Load(), a.dropped.Load()
}
