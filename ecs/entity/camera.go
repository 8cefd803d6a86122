package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/freelook/camera"
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/prefabs"
)

const (
	defaultFOV  = 60.0
	defaultNear = 0.1
	defaultFar  = 500.0
)

// NewCamera creates an orbit camera around the named target player. The
// start pose is the target's pivot plus the spec offset, looking at the pivot.
func NewCamera(w *ecs.World, spec *prefabs.CameraSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("camera: nil spec")
	}
	cfg, err := spec.Config()
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}

	targetName := spec.Target
	if targetName == "" {
		targetName = "player"
	}
	target, ok := FindPlayer(w, targetName)
	if !ok {
		return 0, fmt.Errorf("camera: target %q not found", targetName)
	}

	offset := spec.Offset.Vec3()
	if offset.Len() == 0 {
		offset = mgl64.Vec3{0, 0, -cfg.MinDistance}
	}
	pivotOffset := spec.PivotOffset.Vec3()

	rig, err := camera.NewRigWithOffset(cfg, TargetPivot(w, target, pivotOffset), offset)
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}

	name := spec.Name
	if name == "" {
		name = "camera"
	}

	cam := ecs.CreateEntity(w)
	start := rig.Transform()
	if err := ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{
		Position: start.Position,
		Rotation: start.Rotation,
	}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{
		Name:        name,
		TargetName:  targetName,
		PivotOffset: pivotOffset,
		Rig:         rig,
		FOV:         defaultFOV,
		Near:        defaultNear,
		Far:         defaultFar,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}

	return cam, nil
}

// TargetPivot follows an entity's transform plus a fixed offset. If the
// entity dies the pivot holds its last position.
func TargetPivot(w *ecs.World, target ecs.Entity, offset mgl64.Vec3) camera.Pivot {
	var last mgl64.Vec3
	return camera.PivotFunc(func() mgl64.Vec3 {
		if t, ok := ecs.Get(w, target, component.TransformComponent.Kind()); ok {
			last = t.Position.Add(offset)
		}
		return last
	})
}
