package entity

import (
	"fmt"

	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/locomotion"
	"github.com/milk9111/freelook/prefabs"
)

const (
	defaultColliderRadius = 0.5
	defaultColliderHeight = 2.0
	defaultStepOffset     = 0.3
)

// NewPlayer spawns a locomotion-driven character. The level must already be
// built so the player can join its physics world.
func NewPlayer(w *ecs.World, spec *prefabs.PlayerSpec, source component.InputSource) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, fmt.Errorf("player: no physics world")
	}

	cfg, err := spec.Config(pw.Gravity(), pw.Layer)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	radius := orDefault(spec.Collider.Radius, defaultColliderRadius)
	height := orDefault(spec.Collider.Height, defaultColliderHeight)
	step := orDefault(spec.Collider.StepOffset, defaultStepOffset)
	var ignore uint
	for _, name := range spec.Collider.IgnoreLayers {
		bit, err := pw.Layer(name)
		if err != nil {
			return 0, fmt.Errorf("player: collider: %w", err)
		}
		ignore |= bit
	}

	spawn := spec.Spawn.Vec3()
	body, err := pw.NewCharacter(spawn, radius, height, step, ignore)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	anim := component.NewAnimation(cfg.WalkSpeed, cfg.SprintSpeed)
	controller, err := locomotion.New(cfg, body, pw, anim)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	controller.SetHeading(spec.Heading)

	name := spec.Name
	if name == "" {
		name = "player"
	}

	player := ecs.CreateEntity(w)
	transform := component.NewTransform(spawn)
	transform.Rotation = controller.Rotation()
	if err := ecs.Add(w, player, component.TransformComponent.Kind(), transform); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{
		Name:       name,
		Spawn:      spawn,
		Heading:    spec.Heading,
		Controller: controller,
		Body:       body,
		Radius:     radius,
		Height:     height,
	}); err != nil {
		return 0, fmt.Errorf("player: add player component: %w", err)
	}
	if err := ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{Source: source}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, player, component.AnimationComponent.Kind(), anim); err != nil {
		return 0, fmt.Errorf("player: add animation: %w", err)
	}

	return player, nil
}

// FindPlayer returns the player entity with the given name.
func FindPlayer(w *ecs.World, name string) (ecs.Entity, bool) {
	for _, e := range w.Query(component.PlayerComponent.Kind()) {
		if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && p.Name == name {
			return e, true
		}
	}
	return 0, false
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
