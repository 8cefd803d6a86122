package system

import "github.com/milk9111/freelook/ecs"

// NewPipeline returns the scheduler every host runs: reload, input, player
// controller and camera in the update phase, then camera resolve and
// animation in the late phase. reload may be nil.
func NewPipeline(input *InputSystem, reload *ReloadSystem) *ecs.Scheduler {
	s := ecs.NewScheduler()
	if reload != nil {
		s.Add(reload)
	}
	s.Add(input)
	s.Add(NewPlayerControllerSystem())
	s.Add(NewCameraSystem())
	s.Add(NewAnimationSystem())
	return s
}
