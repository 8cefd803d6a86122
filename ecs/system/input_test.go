package system

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
)

func TestInputSystemSamplesOncePerSource(t *testing.T) {
	w := ecs.NewWorld()
	a := ecs.CreateEntity(w)
	b := ecs.CreateEntity(w)
	c := ecs.CreateEntity(w)
	for _, e := range []ecs.Entity{a, b} {
		if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{Source: component.InputDevices}); err != nil {
			t.Fatal(err)
		}
	}
	if err := ecs.Add(w, c, component.InputComponent.Kind(), &component.Input{Source: component.InputScript, Jump: true}); err != nil {
		t.Fatal(err)
	}

	calls := 0
	sys := NewInputSystem().Register(component.InputDevices, SamplerFunc(func(*ecs.World, float64) (component.Input, error) {
		calls++
		return component.Input{Source: component.InputScript, Move: mgl64.Vec2{0, 1}, Sprint: true}, nil
	}))
	sys.Update(w, testDT)

	if calls != 1 {
		t.Fatalf("sampler ran %d times, want 1", calls)
	}
	for _, e := range []ecs.Entity{a, b} {
		in := mustGet(t, w, e, component.InputComponent.Kind())
		if in.Source != component.InputDevices || in.Move != (mgl64.Vec2{0, 1}) || !in.Sprint {
			t.Fatalf("entity %v got %+v", e, in)
		}
	}
	// no sampler for scripts: the stale edge must be cleared
	if in := mustGet(t, w, c, component.InputComponent.Kind()); in.Jump || in.Source != component.InputScript {
		t.Fatalf("unsampled input not reset: %+v", in)
	}
}

func TestInputSystemSamplerError(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{Source: component.InputScript, Dash: true}); err != nil {
		t.Fatal(err)
	}

	sys := NewInputSystem().Register(component.InputScript, SamplerFunc(func(*ecs.World, float64) (component.Input, error) {
		return component.Input{Dash: true}, errors.New("boom")
	}))
	sys.Update(w, testDT)

	if in := mustGet(t, w, e, component.InputComponent.Kind()); in.Dash {
		t.Fatalf("failed sample should yield neutral input, got %+v", in)
	}

	sys.Register(component.InputScript, nil)
	sys.Update(w, testDT)
}
