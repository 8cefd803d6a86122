package component

import "github.com/go-gl/mathgl/mgl64"

type InputSource int

const (
	InputDevices InputSource = iota
	InputScript
)

// Input stores one tick of raw input. Look and Scroll are device axes, not
// yet scaled by camera speeds. Jump, Dash and Reset are edges.
type Input struct {
	Source InputSource

	Move   mgl64.Vec2
	Sprint bool
	Jump   bool
	Dash   bool

	LookX  float64
	LookY  float64
	Scroll float64
	Reset  bool
}

var InputComponent = NewComponent[Input]()
