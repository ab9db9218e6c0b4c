package vmath

// Pose is a position and orientation in tracking space
type Pose struct {
	Position Vec3
	Rotation Quat
}

// NewPose creates a pose with identity rotation at position
func NewPose(position Vec3) Pose {
	return Pose{Position: position, Rotation: QuatIdentity}
}

// Forward returns the unit forward (+Z) axis of the pose
func (p Pose) Forward() Vec3 {
	return V3Normalize(QuatRotate(p.Rotation, V3Forward))
}

// Up returns the unit up (+Y) axis of the pose
func (p Pose) Up() Vec3 {
	return V3Normalize(QuatRotate(p.Rotation, V3Up))
}

// PointAhead returns the point distance units along the pose forward axis
func (p Pose) PointAhead(distance float64) Vec3 {
	return V3Add(p.Position, V3Scale(p.Forward(), distance))
}
