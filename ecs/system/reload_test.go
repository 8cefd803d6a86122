package system

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/prefabs"
)

type fakeChanges struct {
	pending []prefabs.Change
}

func (f *fakeChanges) push(name string, kind prefabs.ChangeKind) {
	f.pending = append(f.pending, prefabs.Change{Name: name, Path: filepath.Join(prefabs.Dir, name), Kind: kind})
}

func (f *fakeChanges) Drain() []prefabs.Change {
	out := f.pending
	f.pending = nil
	return out
}

type fakeScript struct {
	name    string
	reloads int
	err     error
}

func (f *fakeScript) Name() string { return f.name }

func (f *fakeScript) Reload() error {
	f.reloads++
	return f.err
}

func writePrefab(t *testing.T, name, body string) {
	t.Helper()
	path := filepath.Join(prefabs.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func reloaded(w *ecs.World) []string {
	var names []string
	for _, evt := range w.Events().Peek(ecs.EventSpecReloaded) {
		names = append(names, evt.Data.(string))
	}
	return names
}

func TestReloadCamera(t *testing.T) {
	w, scene := newTestScene(t)
	changes := &fakeChanges{}
	sys := NewReloadSystem(changes)
	cam := mustGet(t, w, scene.Camera, component.CameraComponent.Kind())

	writePrefab(t, prefabs.CameraFile, "yaw_speed: 42\n")
	changes.push(prefabs.CameraFile, prefabs.ChangeSpec)
	sys.Update(w, testDT)

	if got := cam.Rig.Config().YawSpeed; got != 42 {
		t.Fatalf("yaw speed = %v, want 42", got)
	}
	if names := reloaded(w); len(names) != 1 || names[0] != prefabs.CameraFile {
		t.Fatalf("reload events = %v", names)
	}

	// a broken edit keeps the running tuning
	w.Events().Drain()
	writePrefab(t, prefabs.CameraFile, "yaw_speed: 7\nreset_duration: -1\n")
	changes.push(prefabs.CameraFile, prefabs.ChangeSpec)
	sys.Update(w, testDT)

	if got := cam.Rig.Config().YawSpeed; got != 42 {
		t.Fatalf("invalid spec applied, yaw speed = %v", got)
	}
	if names := reloaded(w); len(names) != 0 {
		t.Fatalf("rejected reload must not emit events, got %v", names)
	}
}

func TestReloadPlayer(t *testing.T) {
	w, scene := newTestScene(t)
	changes := &fakeChanges{}
	sys := NewReloadSystem(changes)
	player := mustGet(t, w, scene.Player, component.PlayerComponent.Kind())
	anim := mustGet(t, w, scene.Player, component.AnimationComponent.Kind())

	writePrefab(t, prefabs.PlayerFile, "walk_speed: 2\nsprint_speed: 4\n")
	changes.push(prefabs.PlayerFile, prefabs.ChangeSpec)
	sys.Update(w, testDT)

	cfg := player.Controller.Config()
	if cfg.WalkSpeed != 2 || cfg.SprintSpeed != 4 {
		t.Fatalf("speeds = %v/%v", cfg.WalkSpeed, cfg.SprintSpeed)
	}
	if cfg.Gravity != scene.Physics.Gravity() {
		t.Fatalf("player gravity %v, level gravity %v", cfg.Gravity, scene.Physics.Gravity())
	}
	if anim.SprintThreshold != 3 {
		t.Fatalf("sprint threshold = %v, want 3", anim.SprintThreshold)
	}
}

func TestReloadLevel(t *testing.T) {
	w, scene := newTestScene(t)
	changes := &fakeChanges{}
	sys := NewReloadSystem(changes)
	player := mustGet(t, w, scene.Player, component.PlayerComponent.Kind())

	writePrefab(t, prefabs.LevelFile, `name: flat
gravity: -20
blocks:
  - min: {x: -5, y: -1, z: -5}
    max: {x: 5, y: 0, z: 5}
`)
	changes.push(prefabs.LevelFile, prefabs.ChangeSpec)
	sys.Update(w, testDT)

	if n := len(scene.Physics.Blocks()); n != 1 {
		t.Fatalf("colliders = %d, want 1", n)
	}
	if g := scene.Physics.Gravity(); g != -20 {
		t.Fatalf("physics gravity = %v", g)
	}
	if g := player.Controller.Config().Gravity; g != -20 {
		t.Fatalf("controller gravity = %v", g)
	}
	_, level, ok := ecs.FirstWith(w, component.LevelComponent.Kind())
	if !ok || level.Name != "flat" || level.Gravity != -20 {
		t.Fatalf("level component = %+v", level)
	}
}

func TestReloadScripts(t *testing.T) {
	w := ecs.NewWorld()
	withPrefabDir(t, t.TempDir())
	changes := &fakeChanges{}
	demo := &fakeScript{name: "demo"}
	other := &fakeScript{name: "other"}
	sys := NewReloadSystem(changes, demo, other)

	changes.push("demo.tengo", prefabs.ChangeScript)
	sys.Update(w, testDT)
	if demo.reloads != 1 || other.reloads != 0 {
		t.Fatalf("reloads demo=%d other=%d", demo.reloads, other.reloads)
	}

	demo.err = errors.New("bad script")
	changes.push("demo.tengo", prefabs.ChangeScript)
	changes.push("notes.txt", prefabs.ChangeSpec)
	sys.Update(w, testDT)
	if names := reloaded(w); len(names) != 1 {
		t.Fatalf("only the first script reload should be reported, got %v", names)
	}
}
