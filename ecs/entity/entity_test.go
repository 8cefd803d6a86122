package entity

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/prefabs"
)

func newScene(t *testing.T) (*ecs.World, *Scene) {
	t.Helper()
	prev := prefabs.Dir
	prefabs.Dir = t.TempDir()
	t.Cleanup(func() { prefabs.Dir = prev })

	w := ecs.NewWorld()
	scene, err := NewScene(w, component.InputScript)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return w, scene
}

func TestNewScene(t *testing.T) {
	w, scene := newScene(t)

	if w.PhysicsWorld() != scene.Physics {
		t.Fatalf("physics world not attached")
	}
	if n := len(w.Query(component.BlockComponent.Kind())); n != len(scene.Physics.Blocks()) || n == 0 {
		t.Fatalf("block entities %d vs colliders %d", n, len(scene.Physics.Blocks()))
	}

	player, ok := ecs.Get(w, scene.Player, component.PlayerComponent.Kind())
	if !ok || player.Controller == nil || player.Body == nil {
		t.Fatalf("player component incomplete: %+v", player)
	}
	in, ok := ecs.Get(w, scene.Player, component.InputComponent.Kind())
	if !ok || in.Source != component.InputScript {
		t.Fatalf("player input source not set")
	}
	if !ecs.Has(w, scene.Player, component.AnimationComponent.Kind()) {
		t.Fatalf("player has no animation component")
	}

	cam, ok := ecs.Get(w, scene.Camera, component.CameraComponent.Kind())
	if !ok || cam.Rig == nil {
		t.Fatalf("camera component incomplete")
	}
	if cam.TargetName != player.Name {
		t.Fatalf("camera targets %q, player is %q", cam.TargetName, player.Name)
	}
	want := math.Hypot(2, 6)
	if d := cam.Rig.Distance(); math.Abs(d-want) > 1e-9 {
		t.Fatalf("initial distance = %v, want %v", d, want)
	}
	if p := cam.Rig.Pitch(); p <= 0 {
		t.Fatalf("camera above the pivot should pitch down, got %v", p)
	}
}

func TestPlayerGroundExclusion(t *testing.T) {
	w, scene := newScene(t)
	player, _ := ecs.Get(w, scene.Player, component.PlayerComponent.Kind())

	trigger, err := scene.Physics.Layer("trigger")
	if err != nil {
		t.Fatal(err)
	}
	if player.Controller.Config().GroundExcludeMask&trigger == 0 {
		t.Fatalf("trigger layer should be excluded from the ground probe")
	}
}

func TestTargetPivotFollowsTransform(t *testing.T) {
	w, scene := newScene(t)
	pivot := TargetPivot(w, scene.Player, mgl64.Vec3{0, 1.5, 0})

	tr, _ := ecs.Get(w, scene.Player, component.TransformComponent.Kind())
	tr.Position = mgl64.Vec3{3, 0, 4}
	if got := pivot.Position(); got != (mgl64.Vec3{3, 1.5, 4}) {
		t.Fatalf("pivot = %v", got)
	}

	ecs.DestroyEntity(w, scene.Player)
	if got := pivot.Position(); got != (mgl64.Vec3{3, 1.5, 4}) {
		t.Fatalf("pivot should hold last position, got %v", got)
	}
}

func TestReplaceBlocks(t *testing.T) {
	w, scene := newScene(t)

	spec := &prefabs.LevelSpec{Blocks: []prefabs.BlockSpec{
		{Min: prefabs.Vec3Spec{X: -1, Y: -1, Z: -1}, Max: prefabs.Vec3Spec{X: 1, Y: 0, Z: 1}},
	}}
	if err := ReplaceBlocks(w, spec); err != nil {
		t.Fatal(err)
	}
	if n := len(scene.Physics.Blocks()); n != 1 {
		t.Fatalf("expected 1 collider, got %d", n)
	}
	blocks := w.Query(component.BlockComponent.Kind())
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block entity, got %d", len(blocks))
	}
	b, _ := ecs.Get(w, blocks[0], component.BlockComponent.Kind())
	if b.Name != "block0" || b.Layer != ecs.DefaultLayer {
		t.Fatalf("unexpected defaults %+v", b)
	}
}

func TestCameraNeedsTarget(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := NewCamera(w, &prefabs.CameraSpec{Target: "nobody"}); err == nil {
		t.Fatalf("expected missing target error")
	}
	if _, err := NewPlayer(w, &prefabs.PlayerSpec{}, component.InputDevices); err == nil {
		t.Fatalf("expected error without a physics world")
	}
}
