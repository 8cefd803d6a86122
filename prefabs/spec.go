package prefabs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/freelook/camera"
	"github.com/milk9111/freelook/locomotion"
	"gopkg.in/yaml.v3"
)

const (
	CameraFile = "camera.yaml"
	PlayerFile = "player.yaml"
	LevelFile  = "level.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// RangeSpec is an inclusive [min, max] limit. Unset bounds keep the default.
type RangeSpec struct {
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`
}

func (r RangeSpec) apply(min, max *float64) {
	if r.Min != nil {
		*min = *r.Min
	}
	if r.Max != nil {
		*max = *r.Max
	}
}

type CameraSpec struct {
	Name        string    `yaml:"name"`
	Target      string    `yaml:"target"`
	PivotOffset Vec3Spec  `yaml:"pivot_offset"`
	Offset      Vec3Spec  `yaml:"offset"`
	Yaw         RangeSpec `yaml:"yaw"`
	Pitch       RangeSpec `yaml:"pitch"`
	Distance    RangeSpec `yaml:"distance"`

	YawSpeed         float64 `yaml:"yaw_speed"`
	PitchSpeed       float64 `yaml:"pitch_speed"`
	ZoomSpeed        float64 `yaml:"zoom_speed"`
	ZoomNonlinearity float64 `yaml:"zoom_nonlinearity"`

	TurnSmoothing     *float64 `yaml:"turn_smoothing"`
	PositionSmoothing *float64 `yaml:"position_smoothing"`
	ResetDuration     float64  `yaml:"reset_duration"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec](CameraFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Config converts the spec into rig tuning. Inverted ranges are swapped and
// smoothing weights clamped; anything still invalid is rejected.
func (s *CameraSpec) Config() (camera.Config, error) {
	cfg := camera.DefaultConfig()
	s.Yaw.apply(&cfg.MinYaw, &cfg.MaxYaw)
	s.Pitch.apply(&cfg.MinPitch, &cfg.MaxPitch)
	s.Distance.apply(&cfg.MinDistance, &cfg.MaxDistance)

	setIfNonZero(&cfg.YawSpeed, s.YawSpeed)
	setIfNonZero(&cfg.PitchSpeed, s.PitchSpeed)
	setIfNonZero(&cfg.ZoomSpeed, s.ZoomSpeed)
	setIfNonZero(&cfg.ZoomNonlinearity, s.ZoomNonlinearity)
	setIfNonZero(&cfg.ResetDuration, s.ResetDuration)
	setIfSet(&cfg.TurnSmoothing, s.TurnSmoothing)
	setIfSet(&cfg.PositionSmoothing, s.PositionSmoothing)

	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return camera.Config{}, fmt.Errorf("prefabs: %s: %w", CameraFile, err)
	}
	return cfg, nil
}

type GroundCheckSpec struct {
	Offset        Vec3Spec `yaml:"offset"`
	Radius        float64  `yaml:"radius"`
	ExcludeLayers []string `yaml:"exclude_layers"`
}

type ColliderSpec struct {
	Radius     float64 `yaml:"radius"`
	Height     float64 `yaml:"height"`
	StepOffset float64 `yaml:"step_offset"`
	// IgnoreLayers never obstruct or support the character.
	IgnoreLayers []string `yaml:"ignore_layers"`
}

type PlayerSpec struct {
	Name    string   `yaml:"name"`
	Spawn   Vec3Spec `yaml:"spawn"`
	Heading float64  `yaml:"heading"`

	WalkSpeed   float64 `yaml:"walk_speed"`
	SprintSpeed float64 `yaml:"sprint_speed"`
	DashSpeed   float64 `yaml:"dash_speed"`

	TurnSmoothTime  *float64 `yaml:"turn_smooth_time"`
	SpeedSmoothTime *float64 `yaml:"speed_smooth_time"`

	JumpHeight               float64  `yaml:"jump_height"`
	GravityModifier          *float64 `yaml:"gravity_modifier"`
	FallingGravityMultiplier *float64 `yaml:"falling_gravity_multiplier"`
	AirControl               *float64 `yaml:"air_control"`

	GroundCheck GroundCheckSpec `yaml:"ground_check"`
	Collider    ColliderSpec    `yaml:"collider"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// LayerResolver maps a collision layer name to its bit.
type LayerResolver func(name string) (uint, error)

// Config converts the spec into controller tuning under the given gravity.
// Air control is clamped into [0, 1].
func (s *PlayerSpec) Config(gravity float64, layers LayerResolver) (locomotion.Config, error) {
	cfg := locomotion.DefaultConfig()
	cfg.Gravity = gravity

	setIfNonZero(&cfg.WalkSpeed, s.WalkSpeed)
	setIfNonZero(&cfg.SprintSpeed, s.SprintSpeed)
	setIfNonZero(&cfg.DashSpeed, s.DashSpeed)
	setIfNonZero(&cfg.JumpHeight, s.JumpHeight)
	setIfSet(&cfg.TurnSmoothTime, s.TurnSmoothTime)
	setIfSet(&cfg.SpeedSmoothTime, s.SpeedSmoothTime)
	setIfSet(&cfg.GravityModifier, s.GravityModifier)
	setIfSet(&cfg.FallingGravityMultiplier, s.FallingGravityMultiplier)
	setIfSet(&cfg.AirControl, s.AirControl)

	cfg.GroundCheckOffset = s.GroundCheck.Offset.Vec3()
	setIfNonZero(&cfg.GroundCheckRadius, s.GroundCheck.Radius)
	for _, name := range s.GroundCheck.ExcludeLayers {
		if layers == nil {
			return locomotion.Config{}, fmt.Errorf("prefabs: %s: no layer table for %q", PlayerFile, name)
		}
		bit, err := layers(name)
		if err != nil {
			return locomotion.Config{}, fmt.Errorf("prefabs: %s: %w", PlayerFile, err)
		}
		cfg.GroundExcludeMask |= bit
	}

	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return locomotion.Config{}, fmt.Errorf("prefabs: %s: %w", PlayerFile, err)
	}
	return cfg, nil
}

type BlockSpec struct {
	Name  string   `yaml:"name"`
	Min   Vec3Spec `yaml:"min"`
	Max   Vec3Spec `yaml:"max"`
	Layer string   `yaml:"layer"`
}

type LevelSpec struct {
	Name    string      `yaml:"name"`
	Gravity float64     `yaml:"gravity"`
	Blocks  []BlockSpec `yaml:"blocks"`
}

func LoadLevelSpec() (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](LevelFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func setIfNonZero(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func setIfSet(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
