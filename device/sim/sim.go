// Package sim provides simulated headset hardware for hosts without a headset:
// the terminal sandbox drives them from the keyboard, tests script them directly
package sim

import (
	"github.com/lixenwraith/spatial-shell/device"
	"github.com/lixenwraith/spatial-shell/vmath"
)

// visibility is one owner's ray override
type visibility struct {
	Ray, Cone bool
}

// Rays is the simulated ray pointer: default visibility, single-owner locks and stacked overrides
type Rays struct {
	locks          map[device.Node]any
	defaultVisible map[device.Node]bool
	settings       map[device.Node]map[any]visibility
}

// NewRays creates a ray collaborator with every default ray visible
func NewRays() *Rays {
	return &Rays{
		locks:          make(map[device.Node]any),
		defaultVisible: make(map[device.Node]bool),
		settings:       make(map[device.Node]map[any]visibility),
	}
}

func (r *Rays) SetDefaultRayVisible(node device.Node, visible bool) {
	r.defaultVisible[node] = visible
}

// DefaultRayVisible reports the default ray state, visible until hidden
func (r *Rays) DefaultRayVisible(node device.Node) bool {
	v, ok := r.defaultVisible[node]
	return !ok || v
}

func (r *Rays) LockRay(node device.Node, owner any) bool {
	if holder, ok := r.locks[node]; ok && holder != owner {
		return false
	}
	r.locks[node] = owner
	return true
}

func (r *Rays) UnlockRay(node device.Node, owner any) bool {
	if holder, ok := r.locks[node]; !ok || holder != owner {
		return false
	}
	delete(r.locks, node)
	return true
}

// LockHolder returns the current lock owner of node, nil when unlocked
func (r *Rays) LockHolder(node device.Node) any {
	return r.locks[node]
}

func (r *Rays) AddRayVisibilitySettings(node device.Node, owner any, rayVisible, coneVisible bool) {
	m, ok := r.settings[node]
	if !ok {
		m = make(map[any]visibility)
		r.settings[node] = m
	}
	m[owner] = visibility{Ray: rayVisible, Cone: coneVisible}
}

func (r *Rays) RemoveRayVisibilitySettings(node device.Node, owner any) {
	if m, ok := r.settings[node]; ok {
		delete(m, owner)
	}
}

// HasVisibilitySetting reports whether owner holds an override on node
func (r *Rays) HasVisibilitySetting(node device.Node, owner any) bool {
	_, ok := r.settings[node][owner]
	return ok
}

// SettingCount returns the number of overrides on node
func (r *Rays) SettingCount(node device.Node) int {
	return len(r.settings[node])
}

// Head is a tracker whose pose is set directly, e.g. from keyboard yaw and pitch
type Head struct {
	Pose    vmath.Pose
	Tracked bool
}

// NewHead creates a tracked head at the origin facing +Z
func NewHead() *Head {
	return &Head{Pose: vmath.NewPose(vmath.V3Zero), Tracked: true}
}

func (h *Head) HeadPose() (vmath.Pose, bool) {
	return h.Pose, h.Tracked
}

// Scale is a viewer scale set directly by the host
type Scale struct {
	Value float64
}

func (s *Scale) ViewerScale() float64 {
	return s.Value
}
