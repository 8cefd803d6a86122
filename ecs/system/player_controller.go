package system

import (
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/locomotion"
)

// DefaultKillY is the height below which a player is returned to spawn.
const DefaultKillY = -50.0

// PlayerControllerSystem ticks every player's locomotion controller with its
// input, relative to the view yaw of the camera that follows it, and copies
// the result into the player's transform.
type PlayerControllerSystem struct {
	KillY    float64
	grounded map[ecs.Entity]bool
}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{KillY: DefaultKillY, grounded: make(map[ecs.Entity]bool)}
}

func (p *PlayerControllerSystem) Update(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}

	ecs.ForEach3(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, player *component.Player, input *component.Input, transform *component.Transform) {
			if player.Controller == nil {
				return
			}

			in := locomotion.Input{
				Move:   input.Move,
				Sprint: input.Sprint,
				Jump:   input.Jump,
				Dash:   input.Dash,
			}
			player.Controller.Tick(in, viewYawFor(w, player.Name), dt)

			signals := player.Controller.Signals()
			if signals.JumpTriggered {
				w.Events().Push(ecs.Event{Type: ecs.EventJump, Entity: e})
			}
			if was, seen := p.grounded[e]; seen && signals.Grounded && !was {
				w.Events().Push(ecs.Event{Type: ecs.EventLanded, Entity: e})
			}
			p.grounded[e] = signals.Grounded

			if player.Body != nil && player.Controller.Position().Y() < p.KillY {
				player.Body.Teleport(player.Spawn)
				player.Controller.Stop()
				player.Controller.SetHeading(player.Heading)
				p.grounded[e] = false
			}

			transform.Position = player.Controller.Position()
			transform.Rotation = player.Controller.Rotation()
		})
}

// viewYawFor returns the smoothed yaw of the first camera targeting the named
// player, or 0 when no camera follows it.
func viewYawFor(w *ecs.World, name string) float64 {
	yaw := 0.0
	found := false
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
		if found || cam.Rig == nil || cam.TargetName != name {
			return
		}
		yaw = cam.Rig.ViewYaw()
		found = true
	})
	return yaw
}
