package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a world-space pose. Rotation is a unit quaternion.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

func NewTransform(pos mgl64.Vec3) *Transform {
	return &Transform{Position: pos, Rotation: mgl64.QuatIdent()}
}

var TransformComponent = NewComponent[Transform]()
