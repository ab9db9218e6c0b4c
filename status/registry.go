package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metric keys published by the spatial core
const (
	KeyScrollSessions     = "scroll.sessions"
	KeyScrollLockIns      = "scroll.lockins"
	KeyGazeVelocity       = "gaze.velocity"
	KeyGazeStable         = "gaze.stable"
	KeyAdaptiveElements   = "adaptive.elements"
	KeyAdaptiveReposition = "adaptive.repositions"
	KeyEngineTicks        = "engine.ticks"
)

// MenuKey returns a per-hand pinned menu metric key, e.g. "pinned.right.commits"
func MenuKey(node, metric string) string {
	return "pinned." + node + "." + metric
}

// Registry is the central metrics facade
// Components cache pointers at construction; Update loops write directly to atomics
// Readers (sandbox renderer) may run on another goroutine
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Lines renders every metric as "key=value" in sorted key order per type
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) {
		lines = append(lines, fmt.Sprintf("%s=%t", k, v.Load()))
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s=%d", k, v.Load()))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s=%.3f", k, v.Get()))
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		lines = append(lines, k+"="+v.Load())
	})
	return lines
}

// String joins Lines for logging
func (r *Registry) String() string {
	return strings.Join(r.Lines(), " ")
}
