package entity

import (
	"fmt"

	"github.com/milk9111/freelook/common"
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/prefabs"
)

// NewLevel builds the physics world for a level spec, attaches it to w and
// creates one entity per block plus a Level entity.
func NewLevel(w *ecs.World, spec *prefabs.LevelSpec) (*ecs.PhysicsWorld, error) {
	if spec == nil {
		return nil, fmt.Errorf("level: nil spec")
	}
	gravity := spec.Gravity
	if gravity == 0 {
		gravity = common.Gravity
	}

	pw := ecs.NewPhysicsWorld(gravity)
	w.SetPhysicsWorld(pw)

	level := ecs.CreateEntity(w)
	if err := ecs.Add(w, level, component.LevelComponent.Kind(), &component.Level{Name: spec.Name, Gravity: gravity}); err != nil {
		return nil, fmt.Errorf("level: add level component: %w", err)
	}

	if err := AddBlocks(w, pw, spec.Blocks); err != nil {
		return nil, err
	}
	return pw, nil
}

// AddBlocks inserts blocks into the physics world and mirrors each as a
// Block entity for drawing.
func AddBlocks(w *ecs.World, pw *ecs.PhysicsWorld, blocks []prefabs.BlockSpec) error {
	for i, b := range blocks {
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("block%d", i)
		}
		block, err := pw.AddBlock(name, b.Min.Vec3(), b.Max.Vec3(), b.Layer)
		if err != nil {
			return fmt.Errorf("level: block %q: %w", name, err)
		}
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.BlockComponent.Kind(), &component.Block{
			Name:  block.Name,
			Min:   block.Min,
			Max:   block.Max,
			Layer: block.Layer,
		}); err != nil {
			return fmt.Errorf("level: add block %q: %w", name, err)
		}
	}
	return nil
}

// ReplaceBlocks drops every block entity and collider and rebuilds them.
func ReplaceBlocks(w *ecs.World, spec *prefabs.LevelSpec) error {
	pw := w.PhysicsWorld()
	if pw == nil {
		return fmt.Errorf("level: no physics world")
	}
	for _, e := range w.Query(component.BlockComponent.Kind()) {
		ecs.DestroyEntity(w, e)
	}
	pw.Clear()
	return AddBlocks(w, pw, spec.Blocks)
}
