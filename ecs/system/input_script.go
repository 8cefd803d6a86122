package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/prefabs"
)

// The input script defines tick(n, t, state, engine) returning a map with
// move_x, move_y, look_x, look_y, zoom, sprint, jump, dash and reset.
const inputDispatchScript = `
__out := tick(__tick, __time, __state, __engine)
`

// ScriptInput drives input from a tengo script, one call per tick.
type ScriptInput struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	tick     int64
	elapsed  float64
}

// NewScriptInput compiles the named script from the prefab scripts.
func NewScriptInput(name string) (*ScriptInput, error) {
	s := &ScriptInput{name: name}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewScriptInputSource compiles an in-memory script.
func NewScriptInputSource(name string, src []byte) (*ScriptInput, error) {
	compiled, err := compileInputScript(src)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return &ScriptInput{name: name, compiled: compiled, state: newScriptState()}, nil
}

func (s *ScriptInput) Name() string { return s.name }

// Reload recompiles the script from disk or the embedded copy. Script state
// starts over; the tick counter keeps running.
func (s *ScriptInput) Reload() error {
	src, err := prefabs.LoadScript(s.name)
	if err != nil {
		return fmt.Errorf("script %s: %w", s.name, err)
	}
	compiled, err := compileInputScript(src)
	if err != nil {
		return fmt.Errorf("script %s: %w", s.name, err)
	}
	s.compiled = compiled
	s.state = newScriptState()
	return nil
}

func newScriptState() *tengo.Map {
	return &tengo.Map{Value: map[string]tengo.Object{}}
}

func compileInputScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + inputDispatchScript))
	_ = script.Add("__tick", 0)
	_ = script.Add("__time", 0.0)
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__engine", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	return script.Compile()
}

func (s *ScriptInput) Sample(w *ecs.World, dt float64) (component.Input, error) {
	if s == nil || s.compiled == nil {
		return component.Input{}, fmt.Errorf("script input not compiled")
	}

	if err := s.compiled.Set("__tick", s.tick); err != nil {
		return component.Input{}, err
	}
	if err := s.compiled.Set("__time", s.elapsed); err != nil {
		return component.Input{}, err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return component.Input{}, err
	}
	if err := s.compiled.Set("__engine", buildInputScriptEngine(w)); err != nil {
		return component.Input{}, err
	}
	s.tick++
	s.elapsed += dt

	if err := s.compiled.Run(); err != nil {
		return component.Input{}, fmt.Errorf("script %s: %w", s.name, err)
	}

	out := s.compiled.Get("__out")
	if out == nil || out.IsUndefined() {
		return component.Input{}, nil
	}
	m, ok := out.Value().(map[string]any)
	if !ok {
		return component.Input{}, fmt.Errorf("script %s: tick must return a map, got %s", s.name, out.ValueType())
	}
	return decodeScriptInput(m), nil
}

func decodeScriptInput(m map[string]any) component.Input {
	return component.Input{
		Source: component.InputScript,
		Move:   mgl64.Vec2{toFloat(m["move_x"]), toFloat(m["move_y"])},
		Sprint: toBool(m["sprint"]),
		Jump:   toBool(m["jump"]),
		Dash:   toBool(m["dash"]),
		LookX:  toFloat(m["look_x"]),
		LookY:  toFloat(m["look_y"]),
		Scroll: toFloat(m["zoom"]),
		Reset:  toBool(m["reset"]),
	}
}

func buildInputScriptEngine(w *ecs.World) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	player := func() (*component.Player, bool) {
		_, p, ok := ecs.FirstWith(w, component.PlayerComponent.Kind())
		return p, ok && p.Controller != nil
	}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if p, ok := player(); ok && p.Controller.Grounded() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		pos := mgl64.Vec3{}
		if p, ok := player(); ok {
			pos = p.Controller.Position()
		}
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: pos.X()},
			&tengo.Float{Value: pos.Y()},
			&tengo.Float{Value: pos.Z()},
		}}, nil
	}}

	values["heading"] = &tengo.UserFunction{Name: "heading", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if p, ok := player(); ok {
			return &tengo.Float{Value: p.Controller.Heading()}, nil
		}
		return &tengo.Float{Value: 0}, nil
	}}

	values["camera_yaw"] = &tengo.UserFunction{Name: "camera_yaw", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if _, cam, ok := ecs.FirstWith(w, component.CameraComponent.Kind()); ok && cam.Rig != nil {
			return &tengo.Float{Value: cam.Rig.Yaw()}, nil
		}
		return &tengo.Float{Value: 0}, nil
	}}

	values["resetting"] = &tengo.UserFunction{Name: "resetting", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if _, cam, ok := ecs.FirstWith(w, component.CameraComponent.Kind()); ok && cam.Rig != nil && cam.Rig.Resetting() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case bool:
		if n {
			return 1
		}
	}
	return 0
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case float64:
		return b != 0
	case string:
		return strings.EqualFold(b, "true")
	}
	return false
}
