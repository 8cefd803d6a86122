package entity

import (
	"fmt"

	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/prefabs"
)

// Scene is what NewScene built.
type Scene struct {
	Physics *ecs.PhysicsWorld
	Player  ecs.Entity
	Camera  ecs.Entity
}

// NewScene loads level.yaml, player.yaml and camera.yaml and builds them in
// dependency order.
func NewScene(w *ecs.World, source component.InputSource) (*Scene, error) {
	levelSpec, err := prefabs.LoadLevelSpec()
	if err != nil {
		return nil, err
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, err
	}

	pw, err := NewLevel(w, levelSpec)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	player, err := NewPlayer(w, playerSpec, source)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	cam, err := NewCamera(w, cameraSpec)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return &Scene{Physics: pw, Player: player, Camera: cam}, nil
}
