// Package devicetest provides recording and mock collaborators for tests
// Simulated head, scale and rays live in device/sim
package devicetest

import (
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lixenwraith/spatial-shell/device"
)

// PulseCall is one recorded haptic request
type PulseCall struct {
	Node           device.Node
	Pulse          device.HapticPulse
	DurationScale  float64
	IntensityScale float64
}

// Haptics records every pulse request
type Haptics struct {
	Calls []PulseCall
}

func (h *Haptics) Pulse(node device.Node, pulse *device.HapticPulse, durationScale, intensityScale float64) {
	call := PulseCall{Node: node, DurationScale: durationScale, IntensityScale: intensityScale}
	if pulse != nil {
		call.Pulse = *pulse
	}
	h.Calls = append(h.Calls, call)
}

// Audible counts calls that would produce a non-zero pulse
func (h *Haptics) Audible() int {
	n := 0
	for _, c := range h.Calls {
		if c.DurationScale > 0 && c.IntensityScale > 0 {
			n++
		}
	}
	return n
}

// Reset clears recorded calls
func (h *Haptics) Reset() {
	h.Calls = h.Calls[:0]
}

// MockHaptics is a testify mock for expectation-style haptics assertions
type MockHaptics struct {
	mock.Mock
}

func (m *MockHaptics) Pulse(node device.Node, pulse *device.HapticPulse, durationScale, intensityScale float64) {
	m.Called(node, pulse, durationScale, intensityScale)
}

// MockToolSelector is a testify mock for tool commits
type MockToolSelector struct {
	mock.Mock
}

func (m *MockToolSelector) SelectTool(node device.Node, tool string) {
	m.Called(node, tool)
}

// Clock provides a controllable time source
type Clock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewClock creates a clock at startTime
func NewClock(startTime time.Time) *Clock {
	return &Clock{currentTime: startTime}
}

func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime
}

// Set sets the current time
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
}

// Advance moves the clock forward by d
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
}
