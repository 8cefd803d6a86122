package system

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/milk9111/freelook/common"
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/ecs/entity"
	"github.com/milk9111/freelook/logger"
	"github.com/milk9111/freelook/prefabs"
)

// ChangeSource yields pending prefab edits without blocking.
type ChangeSource interface {
	Drain() []prefabs.Change
}

// Reloader is anything that can rebuild itself from its source file.
type Reloader interface {
	Name() string
	Reload() error
}

// ReloadSystem applies edited prefab specs to live components at the start
// of a tick. A spec that fails to load or validate is logged and the running
// configuration is kept.
type ReloadSystem struct {
	changes ChangeSource
	scripts []Reloader
	log     *slog.Logger
}

func NewReloadSystem(changes ChangeSource, scripts ...Reloader) *ReloadSystem {
	return &ReloadSystem{
		changes: changes,
		scripts: scripts,
		log:     logger.L().With("system", "reload"),
	}
}

func (r *ReloadSystem) Update(w *ecs.World, _ float64) {
	if w == nil || r.changes == nil {
		return
	}

	for _, change := range r.changes.Drain() {
		var err error
		switch {
		case change.Kind == prefabs.ChangeScript:
			err = r.reloadScripts(change.Name)
		case change.Name == prefabs.CameraFile:
			err = reloadCamera(w)
		case change.Name == prefabs.PlayerFile:
			err = reloadPlayer(w)
		case change.Name == prefabs.LevelFile:
			err = reloadLevel(w)
		default:
			continue
		}
		if err != nil {
			r.log.Error("reload rejected", "file", change.Name, "err", err)
			continue
		}
		r.log.Info("spec reloaded", "file", change.Name)
		w.Events().Push(ecs.Event{Type: ecs.EventSpecReloaded, Data: change.Name})
	}
}

func (r *ReloadSystem) reloadScripts(name string) error {
	for _, s := range r.scripts {
		if s == nil || !sameScript(s.Name(), name) {
			continue
		}
		if err := s.Reload(); err != nil {
			return err
		}
	}
	return nil
}

func sameScript(a, b string) bool {
	trim := func(name string) string {
		return strings.TrimSuffix(filepath.Base(filepath.ToSlash(name)), ".tengo")
	}
	return trim(a) == trim(b)
}

func reloadCamera(w *ecs.World) error {
	spec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return err
	}
	cfg, err := spec.Config()
	if err != nil {
		return err
	}
	var firstErr error
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
		if cam.Rig == nil {
			return
		}
		if err := cam.Rig.SetConfig(cfg); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	return firstErr
}

func reloadPlayer(w *ecs.World) error {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	return applyPlayerSpec(w, spec)
}

func applyPlayerSpec(w *ecs.World, spec *prefabs.PlayerSpec) error {
	pw := w.PhysicsWorld()
	gravity := common.Gravity
	var layers prefabs.LayerResolver
	if pw != nil {
		gravity = pw.Gravity()
		layers = pw.Layer
	}
	cfg, err := spec.Config(gravity, layers)
	if err != nil {
		return err
	}
	var firstErr error
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, player *component.Player) {
		if player.Controller == nil {
			return
		}
		if err := player.Controller.SetConfig(cfg); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			fresh := component.NewAnimation(cfg.WalkSpeed, cfg.SprintSpeed)
			anim.WalkThreshold = fresh.WalkThreshold
			anim.SprintThreshold = fresh.SprintThreshold
		}
	})
	return firstErr
}

func reloadLevel(w *ecs.World) error {
	spec, err := prefabs.LoadLevelSpec()
	if err != nil {
		return err
	}
	if err := entity.ReplaceBlocks(w, spec); err != nil {
		return err
	}

	gravity := spec.Gravity
	if gravity == 0 {
		gravity = common.Gravity
	}
	ecs.ForEach(w, component.LevelComponent.Kind(), func(_ ecs.Entity, level *component.Level) {
		level.Name = spec.Name
		level.Gravity = gravity
	})

	pw := w.PhysicsWorld()
	if pw.Gravity() == gravity {
		return nil
	}
	pw.SetGravity(gravity)

	// jump velocity depends on gravity
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	return applyPlayerSpec(w, playerSpec)
}
