package common

import "math"

// FullSpin is one full turn in degrees.
const FullSpin = 360.0

// Gravity is the default world gravity along the Y axis in m/s².
const Gravity = -9.81

// Epsilon is the threshold below which a scalar factor counts as zero.
const Epsilon = 1e-6

func Lerp(a, b, t float64) float64 {
	return a + Clamp01(t)*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// ClampAngle wraps angle by at most one full turn and clamps it to [min, max].
// Limits at or beyond ±360 leave the angle unrestricted.
//
// A single wrap step is applied, so callers must not change an angle by more
// than one full turn between calls.
func ClampAngle(angle, min, max float64) float64 {
	if angle < -FullSpin {
		angle += FullSpin
	}
	if angle > FullSpin {
		angle -= FullSpin
	}
	return Clamp(angle, min, max)
}

// Repeat loops t so that it is never larger than length and never smaller than 0.
func Repeat(t, length float64) float64 {
	return Clamp(t-math.Floor(t/length)*length, 0, length)
}

// DeltaAngle returns the shortest signed difference from current to target in degrees.
func DeltaAngle(current, target float64) float64 {
	delta := Repeat(target-current, FullSpin)
	if delta > FullSpin/2 {
		delta -= FullSpin
	}
	return delta
}

// NormalizeAngle maps an angle in degrees into (-180, 180].
func NormalizeAngle(angle float64) float64 {
	return DeltaAngle(0, angle)
}
