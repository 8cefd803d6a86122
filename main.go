package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/freelook/logger"
	"github.com/milk9111/freelook/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "draw the collision minimap and rig state")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory holding camera.yaml, player.yaml, level.yaml and scripts/")
	script := flag.String("script", "", "drive the player from a tengo script in prefabs/scripts instead of the keyboard")
	watch := flag.Bool("watch", true, "reload prefab specs and scripts when they change on disk")
	lockCursor := flag.Bool("lockcursor", true, "capture the cursor for mouse look (Escape toggles)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	flag.Parse()

	logger.Init(logger.Config{Level: *logLevel, Format: "console"})
	prefabs.Dir = *prefabDir

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("freelook")

	game, err := NewGame(Options{
		Debug:      *debug,
		Script:     *script,
		Watch:      *watch,
		LockCursor: *lockCursor,
	})
	if err != nil {
		logger.L().Error("failed to build scene", "err", err)
		os.Exit(1)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.L().Error("game exited", "err", err)
		os.Exit(1)
	}
}
