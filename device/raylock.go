package device

// RayLock is the guard for an exclusive ray lock
// Release is idempotent and nil-safe so every exit path can call it unconditionally
type RayLock struct {
	rays     RayController
	node     Node
	owner    any
	released bool
}

// AcquireRayLock requests the ray of node for owner
// Returns nil, false when the collaborator refuses (another owner holds it)
func AcquireRayLock(rays RayController, node Node, owner any) (*RayLock, bool) {
	if rays == nil || !rays.LockRay(node, owner) {
		return nil, false
	}
	return &RayLock{rays: rays, node: node, owner: owner}, true
}

// Held reports whether the lock is still owned
func (l *RayLock) Held() bool {
	return l != nil && !l.released
}

// Node returns the locked controller
func (l *RayLock) Node() Node {
	if l == nil {
		return NodeNone
	}
	return l.node
}

// Release returns the ray to the collaborator
func (l *RayLock) Release() {
	if l == nil || l.released {
		return
	}
	l.released = true
	l.rays.UnlockRay(l.node, l.owner)
}
