package camera

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/freelook/common"
)

// resetEpsilon absorbs accumulated float error in the reset fraction so a
// reset of duration d always finishes within ceil(d/dt) ticks.
const resetEpsilon = 1e-9

// Pivot is the point the rig orbits. It is read once per Resolve.
type Pivot interface {
	Position() mgl64.Vec3
}

// PivotFunc adapts a function to Pivot.
type PivotFunc func() mgl64.Vec3

func (f PivotFunc) Position() mgl64.Vec3 { return f() }

// StaticPivot is a pivot that never moves.
type StaticPivot mgl64.Vec3

func (p StaticPivot) Position() mgl64.Vec3 { return mgl64.Vec3(p) }

// Transform is a world-space position and rotation.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Input is one tick of rig input. Deltas are already scaled by speed and dt;
// see Config.Deltas.
type Input struct {
	YawDelta   float64
	PitchDelta float64
	ZoomDelta  float64
	Reset      bool
}

type State int

const (
	StateIdle State = iota
	StateResetting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResetting:
		return "resetting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// orbit is a yaw/pitch/distance triple.
type orbit struct {
	yaw      float64
	pitch    float64
	distance float64
}

func lerpOrbit(a, b orbit, t float64) orbit {
	return orbit{
		yaw:      common.Lerp(a.yaw, b.yaw, t),
		pitch:    common.Lerp(a.pitch, b.pitch, t),
		distance: common.Lerp(a.distance, b.distance, t),
	}
}

// Rig is a third-person free-look camera orbiting a pivot.
//
// Each tick the host calls SampleInput and Update during the update phase,
// then Resolve during the late phase once the pivot has moved.
type Rig struct {
	cfg   Config
	pivot Pivot

	transform Transform

	current orbit
	initial orbit

	state      State
	resetT     float64
	resetStart orbit
}

// NewRig builds a rig from its starting transform. The initial yaw, pitch and
// distance are captured from that transform relative to the pivot.
func NewRig(cfg Config, pivot Pivot, start Transform) (*Rig, error) {
	if pivot == nil {
		return nil, errors.New("camera: nil pivot")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if start.Rotation.Len() < common.Epsilon {
		start.Rotation = mgl64.QuatIdent()
	}
	pitch, yaw := common.PitchYaw(start.Rotation)
	r := &Rig{
		cfg:       cfg,
		pivot:     pivot,
		transform: start,
	}
	r.initial = r.clampOrbit(orbit{
		yaw:      yaw,
		pitch:    pitch,
		distance: pivot.Position().Sub(start.Position).Len(),
	})
	r.current = r.initial
	return r, nil
}

// NewRigWithOffset places the rig at pivot+offset looking at the pivot.
func NewRigWithOffset(cfg Config, pivot Pivot, offset mgl64.Vec3) (*Rig, error) {
	if pivot == nil {
		return nil, errors.New("camera: nil pivot")
	}
	return NewRig(cfg, pivot, Transform{
		Position: pivot.Position().Add(offset),
		Rotation: common.LookRotation(offset.Mul(-1)),
	})
}

func (r *Rig) clampOrbit(o orbit) orbit {
	return orbit{
		yaw:      common.ClampAngle(o.yaw, r.cfg.MinYaw, r.cfg.MaxYaw),
		pitch:    common.ClampAngle(o.pitch, r.cfg.MinPitch, r.cfg.MaxPitch),
		distance: common.Clamp(o.distance, r.cfg.MinDistance, r.cfg.MaxDistance),
	}
}

// SampleInput applies one tick of input. It is ignored while resetting, and a
// reset request starts the reset sequence without applying the deltas.
func (r *Rig) SampleInput(in Input) {
	if r.state == StateResetting {
		return
	}
	if in.Reset {
		r.state = StateResetting
		r.resetT = 0
		r.resetStart = r.current
		return
	}

	// zoom faster the farther away we are
	zoom := in.ZoomDelta * r.current.distance * r.cfg.ZoomNonlinearity

	r.current = r.clampOrbit(orbit{
		yaw:      r.current.yaw + in.YawDelta,
		pitch:    r.current.pitch + in.PitchDelta,
		distance: r.current.distance + zoom,
	})
}

// Update advances the reset sequence by dt seconds. It does nothing while idle.
func (r *Rig) Update(dt float64) {
	if r.state != StateResetting {
		return
	}
	r.resetT += dt / r.cfg.ResetDuration
	if r.resetT >= 1-resetEpsilon {
		r.current = r.initial
		r.resetT = 1
		r.state = StateIdle
		return
	}
	r.current = lerpOrbit(r.resetStart, r.initial, r.resetT)
}

// Resolve moves the rig toward its orbit position around the pivot and faces
// it. A zero-length tick leaves the transform untouched.
func (r *Rig) Resolve(dt float64) Transform {
	if dt <= 0 {
		return r.transform
	}

	pivot := r.pivot.Position()
	rotation := common.SlerpTowards(r.transform.Rotation, common.Euler(r.current.pitch, r.current.yaw), r.cfg.TurnSmoothing)
	desired := pivot.Add(rotation.Rotate(mgl64.Vec3{0, 0, -r.current.distance}))

	r.transform.Position = common.LerpVec3(r.transform.Position, desired, r.cfg.PositionSmoothing)
	r.transform.Rotation = common.LookRotation(pivot.Sub(r.transform.Position))
	return r.transform
}

// SetConfig swaps the tuning of a live rig. Current and initial values are
// clamped into the new ranges; an in-flight reset keeps running.
func (r *Rig) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.cfg = cfg
	r.current = r.clampOrbit(r.current)
	r.initial = r.clampOrbit(r.initial)
	r.resetStart = r.clampOrbit(r.resetStart)
	return nil
}

// SetPivot retargets the rig.
func (r *Rig) SetPivot(p Pivot) {
	if p == nil {
		return
	}
	r.pivot = p
}

func (r *Rig) Config() Config         { return r.cfg }
func (r *Rig) Transform() Transform   { return r.transform }
func (r *Rig) State() State           { return r.state }
func (r *Rig) Resetting() bool        { return r.state == StateResetting }
func (r *Rig) ResetProgress() float64 { return r.resetT }
func (r *Rig) Yaw() float64           { return r.current.yaw }
func (r *Rig) Pitch() float64         { return r.current.pitch }
func (r *Rig) Distance() float64      { return r.current.distance }

// Initial returns the yaw, pitch and distance captured at construction.
func (r *Rig) Initial() (yaw, pitch, distance float64) {
	return r.initial.yaw, r.initial.pitch, r.initial.distance
}

// ViewYaw is the yaw of the rig's actual, smoothed rotation. Movement relative
// to the view should use this rather than Yaw.
func (r *Rig) ViewYaw() float64 {
	_, yaw := common.PitchYaw(r.transform.Rotation)
	return yaw
}
