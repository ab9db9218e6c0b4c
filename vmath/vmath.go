package vmath

import (
	"math"
)

const (
	// Epsilon is the length below which a vector is treated as zero
	Epsilon = 1e-9

	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
)

// Clamp01 limits v to [0,1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp interpolates between a and b, t is not clamped
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// SmoothInOut is the cubic ease-in/ease-out (smoothstep) curve, t clamped to [0,1]
func SmoothInOut(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// FloorMod returns x mod m in [0, m) for positive m, including negative x
func FloorMod(x, m float64) float64 {
	if m <= 0 {
		return 0
	}
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	// math.Mod of tiny negatives can round up to exactly m
	if r >= m {
		r = 0
	}
	return r
}
