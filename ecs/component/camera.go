package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/freelook/camera"
)

type Camera struct {
	Name string
	// TargetName is the Name of the Player the rig orbits.
	TargetName  string
	PivotOffset mgl64.Vec3
	Rig         *camera.Rig

	// FOV is the vertical field of view in degrees used by the renderer.
	FOV  float64
	Near float64
	Far  float64
}

var CameraComponent = NewComponent[Camera]()
