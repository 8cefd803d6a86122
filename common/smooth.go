package common

import "math"

const (
	// MinSmoothTime is the smallest smooth time SmoothDamp honours. Anything
	// below it snaps to the target within a single tick at game frame rates.
	MinSmoothTime = 1e-4
	// MaxSmoothTime marks a channel that must not move toward its target.
	MaxSmoothTime = math.MaxFloat64
)

// SmoothDamp moves current toward target with a critically damped spring.
// velocity carries the spring state between calls and is updated in place.
//
// A smoothTime of MaxSmoothTime (or +Inf) freezes the value for this tick and
// leaves velocity untouched.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	if smoothTime >= MaxSmoothTime {
		return current
	}
	smoothTime = math.Max(MinSmoothTime, smoothTime)

	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	output := target + (change+temp)*exp

	// no overshoot
	if (target-current > 0) == (output > target) {
		output = target
		*velocity = 0
	}
	return output
}

// SmoothDampAngle is SmoothDamp for angles in degrees; it takes the short way
// around the circle.
func SmoothDampAngle(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	target = current + DeltaAngle(current, target)
	return SmoothDamp(current, target, velocity, smoothTime, dt)
}
