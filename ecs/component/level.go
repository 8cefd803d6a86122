package component

import "github.com/go-gl/mathgl/mgl64"

type Level struct {
	Name    string
	Gravity float64
}

var LevelComponent = NewComponent[Level]()

// Block mirrors a static collider for drawing. Collision lives in the
// physics world.
type Block struct {
	Name  string
	Min   mgl64.Vec3
	Max   mgl64.Vec3
	Layer string
}

var BlockComponent = NewComponent[Block]()
