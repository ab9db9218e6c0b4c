package device_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/spatial-shell/device"
	"github.com/lixenwraith/spatial-shell/device/sim"
)

func TestAcquireRayLock_Exclusive(t *testing.T) {
	rays := sim.NewRays()
	a, b := new(int), new(int)

	lock, ok := device.AcquireRayLock(rays, device.NodeRightHand, a)
	require.True(t, ok)
	assert.True(t, lock.Held())
	assert.Equal(t, device.NodeRightHand, lock.Node())
	assert.Same(t, a, rays.LockHolder(device.NodeRightHand))

	other, ok := device.AcquireRayLock(rays, device.NodeRightHand, b)
	assert.False(t, ok, "second owner is refused")
	assert.Nil(t, other)

	left, ok := device.AcquireRayLock(rays, device.NodeLeftHand, b)
	require.True(t, ok, "locks are per node")
	left.Release()

	lock.Release()
	assert.False(t, lock.Held())
	assert.Nil(t, rays.LockHolder(device.NodeRightHand))

	again, ok := device.AcquireRayLock(rays, device.NodeRightHand, b)
	require.True(t, ok, "released ray can be taken by another owner")
	again.Release()
}

func TestRayLock_ReleaseIdempotent(t *testing.T) {
	rays := sim.NewRays()
	a, b := new(int), new(int)

	lock, ok := device.AcquireRayLock(rays, device.NodeLeftHand, a)
	require.True(t, ok)
	lock.Release()

	// b takes the ray; a stale release must not drop b's lock
	taken, ok := device.AcquireRayLock(rays, device.NodeLeftHand, b)
	require.True(t, ok)
	lock.Release()
	assert.Same(t, b, rays.LockHolder(device.NodeLeftHand))
	taken.Release()
}

func TestRayLock_NilSafe(t *testing.T) {
	var lock *device.RayLock

	assert.NotPanics(t, lock.Release)
	assert.False(t, lock.Held())
	assert.Equal(t, device.NodeNone, lock.Node())

	_, ok := device.AcquireRayLock(nil, device.NodeRightHand, new(int))
	assert.False(t, ok)
}

func TestNodeString(t *testing.T) {
	assert.Equal(t, "left", device.NodeLeftHand.String())
	assert.Equal(t, "right", device.NodeRightHand.String())
	assert.Equal(t, "none", device.NodeNone.String())
	assert.Equal(t, "none", device.Node(9).String())
}

func TestFixedScale(t *testing.T) {
	assert.Equal(t, 2.5, device.FixedScale(2.5).ViewerScale())
	assert.Equal(t, 1.0, device.FixedScale(0).ViewerScale())
	assert.Equal(t, 1.0, device.FixedScale(-3).ViewerScale())
}
