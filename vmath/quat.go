package vmath

import (
	"math"
)

// Quat is a rotation quaternion, X/Y/Z vector part, W scalar part
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the no-rotation quaternion
var QuatIdentity = Quat{0, 0, 0, 1}

// QuatAxisAngle builds a rotation of angleDeg degrees around axis
func QuatAxisAngle(axis Vec3, angleDeg float64) Quat {
	axis = V3Normalize(axis)
	half := angleDeg * Deg2Rad * 0.5
	s := math.Sin(half)
	return Quat{axis.X * s, axis.Y * s, axis.Z * s, math.Cos(half)}
}

// QuatYawPitch builds a head-style rotation: yaw around world up, then pitch around local right
func QuatYawPitch(yawDeg, pitchDeg float64) Quat {
	return QuatMul(QuatAxisAngle(V3Up, yawDeg), QuatAxisAngle(V3Right, pitchDeg))
}

// QuatMul composes rotations; the result applies b first, then a
func QuatMul(a, b Quat) Quat {
	return Quat{
		a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

func QuatDot(a, b Quat) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// QuatNormalize returns the unit quaternion; a degenerate input yields identity
func QuatNormalize(q Quat) Quat {
	mag := math.Sqrt(QuatDot(q, q))
	if mag < Epsilon {
		return QuatIdentity
	}
	inv := 1.0 / mag
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// QuatRotate applies q to v
// v' = v + w*t + u×t, t = 2(u×v)
func QuatRotate(q Quat, v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := V3Scale(V3Cross(u, v), 2)
	return V3Add(V3Add(v, V3Scale(t, q.W)), V3Cross(u, t))
}

// QuatAngle returns the angle in degrees between two rotations
func QuatAngle(a, b Quat) float64 {
	d := math.Abs(QuatDot(QuatNormalize(a), QuatNormalize(b)))
	if d >= 1 {
		return 0
	}
	return 2 * math.Acos(d) * Rad2Deg
}

// QuatLookRotation returns the rotation whose forward axis is forward and whose up axis is as close to up as possible
// Degenerate input (zero forward or forward parallel to up) falls back to identity / world-forward up
func QuatLookRotation(forward, up Vec3) Quat {
	f := V3Normalize(forward)
	if V3MagSq(f) == 0 {
		return QuatIdentity
	}
	r := V3Normalize(V3Cross(up, f))
	if V3MagSq(r) == 0 {
		// Looking straight up or down, borrow world forward as the reference
		r = V3Normalize(V3Cross(V3Forward, f))
		if V3MagSq(r) == 0 {
			r = V3Right
		}
	}
	u := V3Cross(f, r)

	// Rotation matrix columns: r, u, f
	m00, m01, m02 := r.X, u.X, f.X
	m10, m11, m12 := r.Y, u.Y, f.Y
	m20, m21, m22 := r.Z, u.Z, f.Z

	var q Quat
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		q = Quat{(m21 - m12) / s, (m02 - m20) / s, (m10 - m01) / s, 0.25 * s}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		q = Quat{0.25 * s, (m01 + m10) / s, (m02 + m20) / s, (m21 - m12) / s}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		q = Quat{(m01 + m10) / s, 0.25 * s, (m12 + m21) / s, (m02 - m20) / s}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		q = Quat{(m02 + m20) / s, (m12 + m21) / s, 0.25 * s, (m10 - m01) / s}
	}
	return QuatNormalize(q)
}
