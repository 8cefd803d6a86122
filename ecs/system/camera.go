package system

import (
	"github.com/milk9111/freelook/camera"
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
)

// CameraSystem feeds input into every orbit rig during the update phase and
// resolves the rigs in the late phase, after the players have moved.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, cam *component.Camera) {
		if cam.Rig == nil {
			return
		}
		input, ok := cameraInput(w, cam.TargetName)
		if !ok {
			cam.Rig.Update(dt)
			return
		}

		rigInput := cam.Rig.Config().Deltas(input.LookX, input.LookY, input.Scroll, dt)
		rigInput.Reset = input.Reset

		wasResetting := cam.Rig.Resetting()
		cam.Rig.SampleInput(rigInput)
		if !wasResetting && cam.Rig.Resetting() {
			w.Events().Push(ecs.Event{Type: ecs.EventResetStarted, Entity: e})
		}
		cam.Rig.Update(dt)
		if cam.Rig.State() == camera.StateIdle && (wasResetting || rigInput.Reset) {
			w.Events().Push(ecs.Event{Type: ecs.EventResetDone, Entity: e})
		}
	})
}

func (cs *CameraSystem) LateUpdate(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, cam *component.Camera, transform *component.Transform) {
		if cam.Rig == nil {
			return
		}
		resolved := cam.Rig.Resolve(dt)
		transform.Position = resolved.Position
		transform.Rotation = resolved.Rotation
	})
}

// cameraInput returns the input of the player the camera targets, falling
// back to the first input in the world.
func cameraInput(w *ecs.World, target string) (*component.Input, bool) {
	for _, e := range w.Query(component.PlayerComponent.Kind(), component.InputComponent.Kind()) {
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		if player != nil && player.Name == target {
			return ecs.Get(w, e, component.InputComponent.Kind())
		}
	}
	_, input, ok := ecs.FirstWith(w, component.InputComponent.Kind())
	return input, ok
}
