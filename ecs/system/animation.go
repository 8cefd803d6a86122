package system

import (
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
)

// landDuration is how long the land clip holds before locomotion clips resume.
const landDuration = 0.15

// AnimationSystem picks a clip from the locomotion signals each Animation
// received this tick. It runs in the late phase and consumes jump events.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) LateUpdate(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	jumped := make(map[ecs.Entity]bool)
	for _, evt := range w.Events().Take(ecs.EventJump) {
		jumped[evt.Entity] = true
	}

	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, anim *component.Animation) {
		next := selectClip(anim, jumped[e] || anim.Jumped)
		anim.Jumped = false

		if next != anim.Current {
			anim.Previous = anim.Current
			anim.Current = next
			anim.Time = 0
			return
		}
		anim.Time += dt
	})
}

func selectClip(anim *component.Animation, jumped bool) component.Clip {
	if jumped {
		return component.ClipJump
	}
	if !anim.Grounded {
		if anim.Vertical > 0 && anim.Current == component.ClipJump {
			return component.ClipJump
		}
		return component.ClipFall
	}

	switch anim.Current {
	case component.ClipFall, component.ClipJump:
		return component.ClipLand
	case component.ClipLand:
		if anim.Time < landDuration {
			return component.ClipLand
		}
	}

	switch {
	case anim.Forward >= anim.SprintThreshold:
		return component.ClipSprint
	case anim.Forward > anim.WalkThreshold:
		return component.ClipWalk
	default:
		return component.ClipIdle
	}
}
