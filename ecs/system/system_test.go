package system

import (
	"testing"

	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/ecs/entity"
	"github.com/milk9111/freelook/prefabs"
)

const testDT = 1.0 / 60

func withPrefabDir(t *testing.T, dir string) {
	t.Helper()
	prev := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = prev })
}

func newTestScene(t *testing.T) (*ecs.World, *entity.Scene) {
	t.Helper()
	withPrefabDir(t, t.TempDir())

	w := ecs.NewWorld()
	scene, err := entity.NewScene(w, component.InputScript)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return w, scene
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		t.Fatalf("entity %v has no %T", e, v)
	}
	return v
}

func countEvents(w *ecs.World, typ ecs.EventType) int {
	return len(w.Events().Peek(typ))
}
