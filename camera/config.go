package camera

import (
	"errors"
	"fmt"

	"github.com/milk9111/freelook/common"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("camera: invalid config")

// DefaultZoomNonlinearity scales zoom by the current distance so zooming is
// faster far from the pivot.
const DefaultZoomNonlinearity = 0.3

// Config holds the tuning of an orbit rig. Angles are in degrees.
type Config struct {
	MinYaw      float64
	MaxYaw      float64
	MinPitch    float64
	MaxPitch    float64
	MinDistance float64
	MaxDistance float64

	YawSpeed   float64
	PitchSpeed float64
	ZoomSpeed  float64

	ZoomNonlinearity float64

	// TurnSmoothing and PositionSmoothing are per-tick blend weights in [0, 1].
	TurnSmoothing     float64
	PositionSmoothing float64

	// ResetDuration is the time in seconds to return to the initial view.
	ResetDuration float64
}

func DefaultConfig() Config {
	return Config{
		MinYaw:            -common.FullSpin,
		MaxYaw:            common.FullSpin,
		MinPitch:          -20,
		MaxPitch:          90,
		MinDistance:       2,
		MaxDistance:       50,
		YawSpeed:          100,
		PitchSpeed:        100,
		ZoomSpeed:         500,
		ZoomNonlinearity:  DefaultZoomNonlinearity,
		TurnSmoothing:     0.4,
		PositionSmoothing: 0.25,
		ResetDuration:     0.75,
	}
}

// Validate rejects configurations the tick path cannot handle. It never
// modifies the receiver; use Normalize for that.
func (c Config) Validate() error {
	if c.MinYaw > c.MaxYaw {
		return fmt.Errorf("%w: min yaw %v > max yaw %v", ErrInvalidConfig, c.MinYaw, c.MaxYaw)
	}
	if c.MinPitch > c.MaxPitch {
		return fmt.Errorf("%w: min pitch %v > max pitch %v", ErrInvalidConfig, c.MinPitch, c.MaxPitch)
	}
	if c.MinDistance > c.MaxDistance {
		return fmt.Errorf("%w: min distance %v > max distance %v", ErrInvalidConfig, c.MinDistance, c.MaxDistance)
	}
	if c.MinDistance < 0 {
		return fmt.Errorf("%w: negative min distance %v", ErrInvalidConfig, c.MinDistance)
	}
	if c.ResetDuration <= 0 {
		return fmt.Errorf("%w: reset duration must be positive, got %v", ErrInvalidConfig, c.ResetDuration)
	}
	if c.TurnSmoothing < 0 || c.TurnSmoothing > 1 {
		return fmt.Errorf("%w: turn smoothing %v outside [0,1]", ErrInvalidConfig, c.TurnSmoothing)
	}
	if c.PositionSmoothing < 0 || c.PositionSmoothing > 1 {
		return fmt.Errorf("%w: position smoothing %v outside [0,1]", ErrInvalidConfig, c.PositionSmoothing)
	}
	return nil
}

// Normalize swaps inverted ranges and clamps smoothing weights so the result
// passes Validate whenever ResetDuration is positive.
func (c Config) Normalize() Config {
	if c.MinYaw > c.MaxYaw {
		c.MinYaw, c.MaxYaw = c.MaxYaw, c.MinYaw
	}
	if c.MinPitch > c.MaxPitch {
		c.MinPitch, c.MaxPitch = c.MaxPitch, c.MinPitch
	}
	if c.MinDistance > c.MaxDistance {
		c.MinDistance, c.MaxDistance = c.MaxDistance, c.MinDistance
	}
	if c.MinDistance < 0 {
		c.MinDistance = 0
	}
	c.TurnSmoothing = common.Clamp01(c.TurnSmoothing)
	c.PositionSmoothing = common.Clamp01(c.PositionSmoothing)
	return c
}

// Deltas converts raw per-tick axes into rig input. axisX/axisY are pointer
// axes and scroll is the wheel axis; wheel values are inverted so scrolling
// up moves the camera closer.
func (c Config) Deltas(axisX, axisY, scroll, dt float64) Input {
	return Input{
		YawDelta:   axisX * dt * c.YawSpeed,
		PitchDelta: axisY * dt * c.PitchSpeed,
		ZoomDelta:  -scroll * dt * c.ZoomSpeed,
	}
}
