package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/freelook/locomotion"
)

// Mover is the body a player drives: a collision-aware Move plus the ability
// to be placed back at spawn.
type Mover interface {
	locomotion.Body
	Teleport(pos mgl64.Vec3)
}

type Player struct {
	Name       string
	Spawn      mgl64.Vec3
	Heading    float64
	Controller *locomotion.Controller
	Body       Mover
	// Radius and Height describe the collider for debug drawing.
	Radius float64
	Height float64
}

var PlayerComponent = NewComponent[Player]()
