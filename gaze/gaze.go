// Package gaze estimates how far a target has drifted from the head's forward direction,
// smoothing out sweeping head motion so layout decisions are only made on a settled gaze
package gaze

import (
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/spatial-shell/device"
	"github.com/lixenwraith/spatial-shell/parameter"
	"github.com/lixenwraith/spatial-shell/status"
	"github.com/lixenwraith/spatial-shell/vmath"
)

// dotEpsilon absorbs rounding in the normalised dot product at the cone boundary
const dotEpsilon = 1e-9

// Config tunes the divergence estimate
type Config struct {
	StableThreshold float64 `koanf:"stable_threshold"`
	RecoverySpeed   float64 `koanf:"recovery_speed"`
}

// DefaultConfig returns the parameter defaults
func DefaultConfig() Config {
	return Config{
		StableThreshold: parameter.GazeStableThreshold,
		RecoverySpeed:   parameter.GazeRecoverySpeed,
	}
}

// Detector holds the gaze divergence state
// Mutated only from the tick goroutine
type Detector struct {
	head device.HeadTracker

	prevRotation    vmath.Quat
	hasPrevRotation bool
	velocity        float64

	stableThreshold float64
	recoverySpeed   float64

	statVelocity *status.AtomicFloat
	statStable   *atomic.Bool
	log          *slog.Logger
}

// Option configures a Detector
type Option func(*Detector)

// WithStatus publishes velocity and stability to reg
func WithStatus(reg *status.Registry) Option {
	return func(d *Detector) {
		d.statVelocity = reg.Floats.Get(status.KeyGazeVelocity)
		d.statStable = reg.Bools.Get(status.KeyGazeStable)
	}
}

// WithLogger sets the detector logger
func WithLogger(l *slog.Logger) Option {
	return func(d *Detector) { d.log = l }
}

// NewDetector creates a detector reading head pose from tracker
func NewDetector(tracker device.HeadTracker, cfg Config, opts ...Option) *Detector {
	d := &Detector{
		head:            tracker,
		prevRotation:    vmath.QuatIdentity,
		stableThreshold: cfg.StableThreshold,
		statVelocity:    new(status.AtomicFloat),
		statStable:      new(atomic.Bool),
		log:             slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.SetDivergenceRecoverySpeed(cfg.RecoverySpeed)
	d.statStable.Store(true)
	return d
}

func (d *Detector) Name() string  { return "gaze" }
func (d *Detector) Priority() int { return parameter.PriorityGaze }

// Update satisfies engine.System
func (d *Detector) Update(dt time.Duration) {
	d.Tick(dt)
}

// Tick integrates the squared angular delta of the head since the previous tick and decays the estimate
// Squaring suppresses small jitters relative to deliberate head swings
func (d *Detector) Tick(dt time.Duration) {
	pose, ok := d.headPose()
	if !ok {
		return
	}

	seconds := dt.Seconds()
	if d.hasPrevRotation {
		delta := vmath.QuatAngle(d.prevRotation, pose.Rotation)
		d.velocity += delta * delta * seconds
	}
	d.velocity -= seconds * d.recoverySpeed
	d.velocity = math.Max(0, math.Min(parameter.GazeVelocityMax, d.velocity))

	d.prevRotation = pose.Rotation
	d.hasPrevRotation = true

	d.statVelocity.Set(d.velocity)
	d.statStable.Store(d.IsStable())
}

// IsAbove is IsAboveDivergenceThreshold with stability ignored
func (d *Detector) IsAbove(target vmath.Vec3, thresholdDeg float64) bool {
	return d.IsAboveDivergenceThreshold(target, thresholdDeg, true)
}

// IsAboveDivergenceThreshold reports whether target lies outside the cone around head forward
// The test compares |dot(forward, dir to target)| against sin(threshold)
// With ignoreStability false, an unstable (sweeping) gaze never reports divergence
func (d *Detector) IsAboveDivergenceThreshold(target vmath.Vec3, thresholdDeg float64, ignoreStability bool) bool {
	pose, ok := d.headPose()
	if !ok {
		return false
	}
	if !ignoreStability && !d.IsStable() {
		return false
	}

	toTarget := vmath.V3Normalize(vmath.V3Sub(target, pose.Position))
	comparison := math.Abs(vmath.V3Dot(pose.Forward(), toTarget))
	return comparison < math.Sin(thresholdDeg*vmath.Deg2Rad)-dotEpsilon
}

// SetDivergenceRecoverySpeed sets the per-second decay, flooring non-positive rates
func (d *Detector) SetDivergenceRecoverySpeed(rate float64) {
	if rate <= 0 || math.IsNaN(rate) {
		d.log.Debug("gaze recovery speed floored", "requested", rate, "floor", parameter.GazeMinRecoverySpeed)
		rate = parameter.GazeMinRecoverySpeed
	}
	d.recoverySpeed = rate
}

// RecoverySpeed returns the effective decay rate
func (d *Detector) RecoverySpeed() float64 {
	return d.recoverySpeed
}

// Velocity returns the smoothed angular velocity estimate in [0,1]
func (d *Detector) Velocity() float64 {
	return d.velocity
}

// IsStable reports whether the estimate is under the stable threshold
func (d *Detector) IsStable() bool {
	return d.velocity < d.stableThreshold
}

// Reset clears the estimate and rotation cache, e.g. on session teardown
func (d *Detector) Reset() {
	d.velocity = 0
	d.prevRotation = vmath.QuatIdentity
	d.hasPrevRotation = false
	d.statVelocity.Set(0)
	d.statStable.Store(true)
}

func (d *Detector) headPose() (vmath.Pose, bool) {
	if d.head == nil {
		return vmath.Pose{}, false
	}
	return d.head.HeadPose()
}
