package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Right   = mgl64.Vec3{1, 0, 0}
	Forward = mgl64.Vec3{0, 0, 1}
)

// Euler builds a rotation from pitch (X) and yaw (Y) in degrees. Pitch is
// applied first, so a positive pitch tilts the forward axis downward.
func Euler(pitch, yaw float64) mgl64.Quat {
	qy := mgl64.QuatRotate(mgl64.DegToRad(yaw), Up)
	qx := mgl64.QuatRotate(mgl64.DegToRad(pitch), Right)
	return qy.Mul(qx)
}

// YawRotation is a rotation about the up axis by yaw degrees.
func YawRotation(yaw float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(yaw), Up)
}

// PitchYaw extracts pitch and yaw in degrees, each in (-180, 180], from the
// forward axis of q. Roll is discarded.
func PitchYaw(q mgl64.Quat) (pitch, yaw float64) {
	f := q.Rotate(Forward)
	yaw = mgl64.RadToDeg(math.Atan2(f.X(), f.Z()))
	pitch = mgl64.RadToDeg(math.Atan2(-f.Y(), math.Hypot(f.X(), f.Z())))
	return NormalizeAngle(pitch), NormalizeAngle(yaw)
}

// LookRotation returns the rotation whose forward axis points along dir with
// no roll. A zero dir yields the identity.
func LookRotation(dir mgl64.Vec3) mgl64.Quat {
	if dir.Len() < Epsilon {
		return mgl64.QuatIdent()
	}
	yaw := math.Atan2(dir.X(), dir.Z())
	pitch := math.Atan2(-dir.Y(), math.Hypot(dir.X(), dir.Z()))
	return Euler(mgl64.RadToDeg(pitch), mgl64.RadToDeg(yaw))
}

// SlerpTowards blends current toward target by a fixed weight in [0, 1] along
// the shortest arc. The weight is a per-call blend factor, not a decay rate,
// so convergence speed depends on how often it is called.
func SlerpTowards(current, target mgl64.Quat, weight float64) mgl64.Quat {
	weight = Clamp01(weight)
	if current.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	switch weight {
	case 0:
		return current
	case 1:
		return target.Normalize()
	}
	return mgl64.QuatSlerp(current, target, weight).Normalize()
}

// LerpVec3 linearly interpolates between a and b with t clamped to [0, 1].
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(Clamp01(t)))
}

// HeadingForward is the forward axis for a heading in degrees on the ground plane.
func HeadingForward(heading float64) mgl64.Vec3 {
	rad := mgl64.DegToRad(heading)
	return mgl64.Vec3{math.Sin(rad), 0, math.Cos(rad)}
}
