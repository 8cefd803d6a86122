package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/ecs/component"
	"github.com/milk9111/freelook/ecs/entity"
	"github.com/milk9111/freelook/ecs/system"
	"github.com/milk9111/freelook/logger"
	"github.com/milk9111/freelook/prefabs"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Options struct {
	Debug      bool
	Script     string
	Watch      bool
	LockCursor bool
}

type Game struct {
	opts   Options
	frames int

	world     *ecs.World
	scene     *entity.Scene
	scheduler *ecs.Scheduler
	watcher   *prefabs.Watcher
	log       *slog.Logger
}

func NewGame(opts Options) (*Game, error) {
	log := logger.L().With("component", "game")

	source := component.InputDevices
	if opts.Script != "" {
		source = component.InputScript
	}

	w := ecs.NewWorld()
	scene, err := entity.NewScene(w, source)
	if err != nil {
		return nil, err
	}

	input := system.NewInputSystem().Register(component.InputDevices, NewDeviceInput())
	var scripts []system.Reloader
	if opts.Script != "" {
		script, err := system.NewScriptInput(opts.Script)
		if err != nil {
			return nil, err
		}
		input.Register(component.InputScript, script)
		scripts = append(scripts, script)
	}

	g := &Game{opts: opts, world: w, scene: scene, log: log}

	var reload *system.ReloadSystem
	if opts.Watch {
		dirs := []string{prefabs.Dir}
		if scriptDir := filepath.Join(prefabs.Dir, "scripts"); isDir(scriptDir) {
			dirs = append(dirs, scriptDir)
		}
		watcher, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Warn("hot reload disabled", "dir", prefabs.Dir, "err", err)
		} else {
			g.watcher = watcher
			reload = system.NewReloadSystem(watcher, scripts...)
		}
	}
	g.scheduler = system.NewPipeline(input, reload)

	if opts.LockCursor {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}
	log.Info("scene ready", "blocks", len(scene.Physics.Blocks()), "script", opts.Script)
	return g, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		mode := ebiten.CursorModeCaptured
		if ebiten.CursorMode() == ebiten.CursorModeCaptured {
			mode = ebiten.CursorModeVisible
		}
		ebiten.SetCursorMode(mode)
		g.log.Debug("cursor toggled", "captured", mode == ebiten.CursorModeCaptured)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.opts.Debug = !g.opts.Debug
	}

	g.scheduler.Tick(g.world, tickSeconds())
	return nil
}

func tickSeconds() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float64(tps)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	DrawScene(screen, g.world)

	if !g.opts.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS()))
		return
	}
	DrawMinimap(screen, g.world)
	ebitenutil.DebugPrint(screen, g.debugText())
}

func (g *Game) debugText() string {
	text := fmt.Sprintf("Frames: %d    FPS: %.2f    Tick: %d\n", g.frames, ebiten.ActualFPS(), g.scheduler.Ticks())

	if cam, ok := ecs.Get(g.world, g.scene.Camera, component.CameraComponent.Kind()); ok && cam.Rig != nil {
		text += fmt.Sprintf("Camera: %s yaw=%.1f pitch=%.1f dist=%.2f\n",
			cam.Rig.State(), cam.Rig.Yaw(), cam.Rig.Pitch(), cam.Rig.Distance())
	}
	if player, ok := ecs.Get(g.world, g.scene.Player, component.PlayerComponent.Kind()); ok && player.Controller != nil {
		p := player.Controller.Position()
		text += fmt.Sprintf("Player: (%.2f, %.2f, %.2f) heading=%.1f grounded=%v v=%.2f/%.2f\n",
			p.X(), p.Y(), p.Z(), player.Controller.Heading(), player.Controller.Grounded(),
			player.Controller.ForwardVelocity(), player.Controller.VerticalVelocity())
	}
	if anim, ok := ecs.Get(g.world, g.scene.Player, component.AnimationComponent.Kind()); ok {
		text += fmt.Sprintf("Clip: %s (%.2fs)\n", anim.Current, anim.Time)
	}
	return text
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
