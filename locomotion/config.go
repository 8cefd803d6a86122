package locomotion

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/freelook/common"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("locomotion: invalid config")

// GroundedVelocity is the vertical velocity a grounded, descending body is
// held at. It is slightly negative so the ground probe keeps hitting next tick.
const GroundedVelocity = -2.0

type Config struct {
	WalkSpeed   float64
	SprintSpeed float64
	DashSpeed   float64

	// TurnSmoothTime and SpeedSmoothTime are smooth-damp times in seconds.
	TurnSmoothTime  float64
	SpeedSmoothTime float64

	JumpHeight               float64
	Gravity                  float64
	GravityModifier          float64
	FallingGravityMultiplier float64

	// AirControl in [0, 1]: 0 leaves speed frozen and turning instant while
	// airborne, 1 behaves as if grounded.
	AirControl float64

	GroundCheckOffset mgl64.Vec3
	GroundCheckRadius float64
	// GroundExcludeMask lists collision layers the ground probe ignores.
	GroundExcludeMask uint
}

func DefaultConfig() Config {
	return Config{
		WalkSpeed:                5,
		SprintSpeed:              10,
		DashSpeed:                18,
		TurnSmoothTime:           0.15,
		SpeedSmoothTime:          0.25,
		JumpHeight:               2,
		Gravity:                  common.Gravity,
		GravityModifier:          1,
		FallingGravityMultiplier: 2,
		AirControl:               0.3,
		GroundCheckRadius:        0.05,
	}
}

func (c Config) Validate() error {
	switch {
	case c.WalkSpeed < 0 || c.SprintSpeed < 0 || c.DashSpeed < 0:
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalidConfig)
	case c.TurnSmoothTime < 0 || c.SpeedSmoothTime < 0:
		return fmt.Errorf("%w: smooth times must not be negative", ErrInvalidConfig)
	case c.JumpHeight < 0:
		return fmt.Errorf("%w: negative jump height %v", ErrInvalidConfig, c.JumpHeight)
	case c.AirControl < 0 || c.AirControl > 1:
		return fmt.Errorf("%w: air control %v outside [0,1]", ErrInvalidConfig, c.AirControl)
	case c.GroundCheckRadius <= 0:
		return fmt.Errorf("%w: ground check radius must be positive, got %v", ErrInvalidConfig, c.GroundCheckRadius)
	case c.FallingGravityMultiplier < 0:
		return fmt.Errorf("%w: negative falling gravity multiplier %v", ErrInvalidConfig, c.FallingGravityMultiplier)
	}
	return nil
}

// Normalize clamps air control into [0, 1] and negative magnitudes to zero.
func (c Config) Normalize() Config {
	c.AirControl = common.Clamp01(c.AirControl)
	for _, v := range []*float64{
		&c.WalkSpeed, &c.SprintSpeed, &c.DashSpeed,
		&c.TurnSmoothTime, &c.SpeedSmoothTime,
		&c.JumpHeight, &c.FallingGravityMultiplier,
	} {
		if *v < 0 {
			*v = 0
		}
	}
	return c
}

// JumpVelocity is the launch speed that peaks at exactly JumpHeight under the
// configured gravity: v = sqrt(2·|g·mod|·h).
func (c Config) JumpVelocity() float64 {
	g := math.Abs(c.Gravity * c.GravityModifier)
	return math.Sqrt(math.Max(0, 2*g*c.JumpHeight))
}
