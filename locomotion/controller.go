package locomotion

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/freelook/common"
)

// Input is one tick of already-normalized player input. Move is the planar
// stick vector: X is strafe, Y is forward. Jump and Dash are button edges.
type Input struct {
	Move   mgl64.Vec2
	Sprint bool
	Jump   bool
	Dash   bool
}

// Body is the move-and-collide primitive the controller drives. Move applies
// a collision-resolved displacement and reports whether the body ended the
// move standing on something.
type Body interface {
	Move(displacement mgl64.Vec3) (grounded bool)
	Position() mgl64.Vec3
}

// GroundProbe reports whether a sphere overlaps any collider outside excludeMask.
type GroundProbe interface {
	CheckSphere(center mgl64.Vec3, radius float64, excludeMask uint) bool
}

// GroundProbeFunc adapts a function to GroundProbe.
type GroundProbeFunc func(center mgl64.Vec3, radius float64, excludeMask uint) bool

func (f GroundProbeFunc) CheckSphere(center mgl64.Vec3, radius float64, excludeMask uint) bool {
	return f(center, radius, excludeMask)
}

// AnimationSink receives the controller's signals every tick.
type AnimationSink interface {
	SetGrounded(grounded bool)
	DoJump()
	SetSpeeds(forward, vertical float64)
}

type discardSink struct{}

func (discardSink) SetGrounded(bool)           {}
func (discardSink) DoJump()                    {}
func (discardSink) SetSpeeds(float64, float64) {}

// Signals is the per-tick output handed to the animation sink.
type Signals struct {
	Grounded         bool
	JumpTriggered    bool
	ForwardVelocity  float64
	VerticalVelocity float64
}

// Controller integrates gravity, jump, dash and air control into a per-tick
// displacement for a character body.
type Controller struct {
	cfg   Config
	body  Body
	probe GroundProbe
	sink  AnimationSink

	verticalVelocity float64
	forwardVelocity  float64
	heading          float64

	// grounded is the probe result; bodyGrounded is what the last Move reported.
	grounded     bool
	bodyGrounded bool

	turnVelocity  float64
	speedVelocity float64

	signals Signals
}

// New wires a controller to its collaborators. sink may be nil.
func New(cfg Config, body Body, probe GroundProbe, sink AnimationSink) (*Controller, error) {
	if body == nil {
		return nil, errors.New("locomotion: nil body")
	}
	if probe == nil {
		return nil, errors.New("locomotion: nil ground probe")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = discardSink{}
	}
	return &Controller{
		cfg:   cfg,
		body:  body,
		probe: probe,
		sink:  sink,
	}, nil
}

// Tick advances the controller by dt seconds, moves the body and returns the
// displacement that was requested of it. cameraYaw in degrees makes movement
// relative to the view.
func (c *Controller) Tick(in Input, cameraYaw, dt float64) mgl64.Vec3 {
	move := in.Move
	magnitude := move.Len()
	if magnitude > 1 {
		move = move.Mul(1 / magnitude)
		magnitude = 1
	}

	if magnitude > 0 {
		// stick forward (0, 1) is a heading of 0°, hence atan2(x, y)
		target := mgl64.RadToDeg(math.Atan2(move.X(), move.Y())) + cameraYaw
		heading := common.SmoothDampAngle(c.heading, target, &c.turnVelocity, c.airSmoothTime(c.cfg.TurnSmoothTime, false), dt)
		c.heading = common.NormalizeAngle(heading)
	}

	g := c.cfg.Gravity * c.cfg.GravityModifier
	if c.verticalVelocity >= 0 {
		c.verticalVelocity += g * dt
	} else {
		c.verticalVelocity += g * c.cfg.FallingGravityMultiplier * dt
	}

	speed := c.cfg.WalkSpeed
	if in.Sprint {
		speed = c.cfg.SprintSpeed
	}
	c.forwardVelocity = common.SmoothDamp(c.forwardVelocity, speed*magnitude, &c.speedVelocity, c.airSmoothTime(c.cfg.SpeedSmoothTime, true), dt)
	if in.Dash {
		c.forwardVelocity = c.cfg.DashSpeed
	}

	velocity := common.HeadingForward(c.heading).Mul(c.forwardVelocity).Add(common.Up.Mul(c.verticalVelocity))
	displacement := velocity.Mul(dt)
	c.bodyGrounded = c.body.Move(displacement)

	c.grounded = c.probe.CheckSphere(c.body.Position().Add(c.cfg.GroundCheckOffset), c.cfg.GroundCheckRadius, c.cfg.GroundExcludeMask)
	if c.grounded && velocity.Y() < 0 {
		c.verticalVelocity = GroundedVelocity
	}

	jumped := false
	if c.grounded && in.Jump {
		c.verticalVelocity = c.cfg.JumpVelocity()
		jumped = true
	}

	c.signals = Signals{
		Grounded:         c.grounded,
		JumpTriggered:    jumped,
		ForwardVelocity:  c.forwardVelocity,
		VerticalVelocity: c.verticalVelocity,
	}
	c.sink.SetGrounded(c.grounded)
	if jumped {
		c.sink.DoJump()
	}
	c.sink.SetSpeeds(c.forwardVelocity, c.verticalVelocity)

	return displacement
}

// airSmoothTime scales a smooth time by air control while the body is
// airborne. With no air control the turn channel snaps (MinSmoothTime) and
// the speed channel freezes (MaxSmoothTime).
func (c *Controller) airSmoothTime(smoothTime float64, zeroControlIsMax bool) float64 {
	if c.bodyGrounded {
		return smoothTime
	}
	if math.Abs(c.cfg.AirControl) < common.Epsilon {
		if zeroControlIsMax {
			return common.MaxSmoothTime
		}
		return common.MinSmoothTime
	}
	return smoothTime / c.cfg.AirControl
}

// SetConfig swaps tuning on a live controller; velocities are kept.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// SetHeading turns the character instantly, e.g. on spawn.
func (c *Controller) SetHeading(heading float64) {
	c.heading = common.NormalizeAngle(heading)
	c.turnVelocity = 0
}

// Stop clears all velocities, e.g. after the body is teleported.
func (c *Controller) Stop() {
	c.verticalVelocity = 0
	c.forwardVelocity = 0
	c.turnVelocity = 0
	c.speedVelocity = 0
}

func (c *Controller) Config() Config            { return c.cfg }
func (c *Controller) Signals() Signals          { return c.signals }
func (c *Controller) Grounded() bool            { return c.grounded }
func (c *Controller) Heading() float64          { return c.heading }
func (c *Controller) VerticalVelocity() float64 { return c.verticalVelocity }
func (c *Controller) ForwardVelocity() float64  { return c.forwardVelocity }
func (c *Controller) Position() mgl64.Vec3      { return c.body.Position() }

// Rotation is the graphics orientation for the current heading.
func (c *Controller) Rotation() mgl64.Quat {
	return common.YawRotation(c.heading)
}
