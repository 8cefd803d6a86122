// Command motionsim runs the camera rig and locomotion controller headless,
// driven by a tengo input script, and writes a YAML trace of the result.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/ecs/entity"
	"github.com/milk9111/freelook/ecs/system"
	"github.com/milk9111/freelook/logger"
	"github.com/milk9111/freelook/prefabs"
	"gopkg.in/yaml.v3"
)

type options struct {
	Ticks  int
	DT     float64
	Script string
	Every  int
}

// Frame is one sampled tick of the trace.
type Frame struct {
	Tick int     `yaml:"tick"`
	Time float64 `yaml:"time"`

	CameraState    string     `yaml:"camera_state"`
	CameraYaw      float64    `yaml:"camera_yaw"`
	CameraPitch    float64    `yaml:"camera_pitch"`
	CameraDistance float64    `yaml:"camera_distance"`
	CameraPosition [3]float64 `yaml:"camera_position,flow"`

	PlayerPosition [3]float64 `yaml:"player_position,flow"`
	Heading        float64    `yaml:"heading"`
	Grounded       bool       `yaml:"grounded"`
	Forward        float64    `yaml:"forward_velocity"`
	Vertical       float64    `yaml:"vertical_velocity"`
	Clip           string     `yaml:"clip"`

	Events []string `yaml:"events,omitempty,flow"`
}

type Trace struct {
	Script string  `yaml:"script"`
	DT     float64 `yaml:"dt"`
	Frames []Frame `yaml:"frames"`
}

func main() {
	ticks := flag.Int("ticks", 600, "number of fixed steps to simulate")
	dt := flag.Float64("dt", 1.0/60, "seconds per step")
	script := flag.String("script", "demo", "input script name in prefabs/scripts")
	every := flag.Int("every", 1, "record every n-th tick")
	out := flag.String("trace", "", "write the YAML trace to this file instead of stdout")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory holding the prefab specs")
	logLevel := flag.String("log-level", "warn", "debug, info, warn or error")
	flag.Parse()

	logger.Init(logger.Config{Level: *logLevel, Format: "console", Output: os.Stderr})
	prefabs.Dir = *prefabDir

	trace, err := simulate(options{Ticks: *ticks, DT: *dt, Script: *script, Every: *every})
	if err != nil {
		logger.L().Error("simulation failed", "err", err)
		os.Exit(1)
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.L().Error("open trace", "path", *out, "err", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	if err := writeTrace(w, trace); err != nil {
		logger.L().Error("write trace", "err", err)
		os.Exit(1)
	}
}

func simulate(opts options) (*Trace, error) {
	if opts.Ticks < 0 {
		return nil, fmt.Errorf("ticks must not be negative, got %d", opts.Ticks)
	}
	if opts.DT <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %v", opts.DT)
	}
	if opts.Every <= 0 {
		opts.Every = 1
	}

	w := ecs.NewWorld()
	scene, err := entity.NewScene(w, component.InputScript)
	if err != nil {
		return nil, err
	}
	script, err := system.NewScriptInput(opts.Script)
	if err != nil {
		return nil, err
	}
	input := system.NewInputSystem().Register(component.InputScript, script)

	recorder := &recorder{scene: scene, every: opts.Every, dt: opts.DT}
	scheduler := system.NewPipeline(input, nil)
	scheduler.Add(recorder)

	for i := 0; i < opts.Ticks; i++ {
		scheduler.Tick(w, opts.DT)
	}

	logger.L().Info("simulation done", "ticks", opts.Ticks, "frames", len(recorder.frames))
	return &Trace{Script: opts.Script, DT: opts.DT, Frames: recorder.frames}, nil
}

func writeTrace(w io.Writer, trace *Trace) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(trace); err != nil {
		return err
	}
	return enc.Close()
}

// recorder runs last in the late phase and samples the scene after the
// camera has resolved.
type recorder struct {
	scene  *entity.Scene
	every  int
	dt     float64
	tick   int
	frames []Frame
}

func (r *recorder) LateUpdate(w *ecs.World, _ float64) {
	tick := r.tick
	r.tick++
	if tick%r.every != 0 {
		return
	}

	f := Frame{Tick: tick, Time: float64(r.tick) * r.dt}
	if cam, ok := ecs.Get(w, r.scene.Camera, component.CameraComponent.Kind()); ok && cam.Rig != nil {
		f.CameraState = cam.Rig.State().String()
		f.CameraYaw = cam.Rig.Yaw()
		f.CameraPitch = cam.Rig.Pitch()
		f.CameraDistance = cam.Rig.Distance()
		f.CameraPosition = cam.Rig.Transform().Position
	}
	if player, ok := ecs.Get(w, r.scene.Player, component.PlayerComponent.Kind()); ok && player.Controller != nil {
		f.PlayerPosition = player.Controller.Position()
		f.Heading = player.Controller.Heading()
		f.Grounded = player.Controller.Grounded()
		f.Forward = player.Controller.ForwardVelocity()
		f.Vertical = player.Controller.VerticalVelocity()
	}
	if anim, ok := ecs.Get(w, r.scene.Player, component.AnimationComponent.Kind()); ok {
		f.Clip = string(anim.Current)
	}
	// the animation system has already consumed jump events
	if player, ok := ecs.Get(w, r.scene.Player, component.PlayerComponent.Kind()); ok && player.Controller != nil && player.Controller.Signals().JumpTriggered {
		f.Events = append(f.Events, string(ecs.EventJump))
	}
	for _, evt := range w.Events().All() {
		f.Events = append(f.Events, string(evt.Type))
	}
	r.frames = append(r.frames, f)
}
