package vmath

import (
	"math"
)

// Vec3 is a float64 3D vector in tracking space (metres, +Y up, +Z forward)
type Vec3 struct {
	X, Y, Z float64
}

var (
	V3Zero    = Vec3{}
	V3Up      = Vec3{0, 1, 0}
	V3Right   = Vec3{1, 0, 0}
	V3Forward = Vec3{0, 0, 1}
)

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func V3Neg(v Vec3) Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

func V3Dot(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func V3MagSq(v Vec3) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3Mag(v Vec3) float64 {
	return math.Sqrt(V3MagSq(v))
}

// V3Distance returns the Euclidean distance between two points
func V3Distance(a, b Vec3) float64 {
	return V3Mag(V3Sub(a, b))
}

// V3Normalize returns the unit vector, zero-safe
// One division, three multiplies
func V3Normalize(v Vec3) Vec3 {
	mag := V3Mag(v)
	if mag < Epsilon {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3ScalarProject returns the signed length of v along axis
// Axis magnitude is irrelevant; a zero axis yields 0
func V3ScalarProject(v, axis Vec3) float64 {
	mag := V3Mag(axis)
	if mag < Epsilon {
		return 0
	}
	return V3Dot(v, axis) / mag
}

// V3Project returns the vector projection of v onto axis
func V3Project(v, axis Vec3) Vec3 {
	magSq := V3MagSq(axis)
	if magSq < Epsilon*Epsilon {
		return Vec3{}
	}
	return V3Scale(axis, V3Dot(v, axis)/magSq)
}

// V3Lerp interpolates between a and b, t is not clamped
func V3Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// V3ApproxEqual compares component-wise within tolerance
func V3ApproxEqual(a, b Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}
