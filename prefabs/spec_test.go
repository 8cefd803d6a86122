package prefabs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/freelook/camera"
	"github.com/milk9111/freelook/locomotion"
)

func withDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}

func testLayers(name string) (uint, error) {
	switch name {
	case "ground":
		return 1 << 0, nil
	case "player":
		return 1 << 1, nil
	case "trigger":
		return 1 << 2, nil
	}
	return 0, fmt.Errorf("unknown layer %q", name)
}

func TestEmbeddedSpecsLoad(t *testing.T) {
	withDir(t, t.TempDir())

	cam, err := LoadCameraSpec()
	if err != nil {
		t.Fatalf("camera: %v", err)
	}
	cfg, err := cam.Config()
	if err != nil {
		t.Fatalf("camera config: %v", err)
	}
	if cfg != camera.DefaultConfig() {
		t.Fatalf("embedded camera spec should match defaults, got %+v", cfg)
	}

	player, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	pcfg, err := player.Config(-9.81, testLayers)
	if err != nil {
		t.Fatalf("player config: %v", err)
	}
	if pcfg.GroundExcludeMask != (1<<1 | 1<<2) {
		t.Fatalf("exclude mask = %b, want player|trigger", pcfg.GroundExcludeMask)
	}
	if pcfg.AirControl != 0.3 || pcfg.JumpHeight != 2 {
		t.Fatalf("unexpected player tuning %+v", pcfg)
	}

	level, err := LoadLevelSpec()
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	if level.Gravity != -9.81 || len(level.Blocks) == 0 {
		t.Fatalf("unexpected level %+v", level)
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	withDir(t, dir)

	data := []byte("yaw_speed: 42\npitch: {min: 80, max: 10}\nturn_smoothing: 3\n")
	if err := os.WriteFile(filepath.Join(dir, CameraFile), data, 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadCameraSpec()
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := spec.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.YawSpeed != 42 {
		t.Fatalf("yaw speed = %v, want 42 from disk", cfg.YawSpeed)
	}
	if cfg.MinPitch != 10 || cfg.MaxPitch != 80 {
		t.Fatalf("inverted pitch range not swapped: %v..%v", cfg.MinPitch, cfg.MaxPitch)
	}
	if cfg.TurnSmoothing != 1 {
		t.Fatalf("turn smoothing = %v, want clamped to 1", cfg.TurnSmoothing)
	}
	if _, ok := ModTime(CameraFile); !ok {
		t.Fatalf("expected mod time for disk file")
	}
}

func TestSpecConfigRejectsInvalid(t *testing.T) {
	zero := 0.0
	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{
			name: "camera_zero_reset_duration",
			run: func() error {
				s := CameraSpec{ResetDuration: -1}
				_, err := s.Config()
				return err
			},
			want: camera.ErrInvalidConfig,
		},
		{
			name: "player_unknown_layer",
			run: func() error {
				s := PlayerSpec{GroundCheck: GroundCheckSpec{ExcludeLayers: []string{"lava"}}}
				_, err := s.Config(-9.81, testLayers)
				return err
			},
		},
		{
			name: "player_layers_without_table",
			run: func() error {
				s := PlayerSpec{GroundCheck: GroundCheckSpec{ExcludeLayers: []string{"player"}}}
				_, err := s.Config(-9.81, nil)
				return err
			},
		},
		{
			name: "player_air_control_clamped",
			run: func() error {
				over := 4.0
				s := PlayerSpec{AirControl: &over, TurnSmoothTime: &zero}
				cfg, err := s.Config(-9.81, nil)
				if err != nil {
					return err
				}
				if cfg.AirControl != 1 || cfg.TurnSmoothTime != 0 {
					return fmt.Errorf("unexpected config %+v", cfg)
				}
				return nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			switch {
			case tt.name == "player_air_control_clamped":
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			case err == nil:
				t.Fatalf("expected an error")
			case tt.want != nil && !errors.Is(err, tt.want):
				t.Fatalf("error %v does not wrap %v", err, tt.want)
			}
		})
	}
}

func TestPlayerSpecUsesLevelGravity(t *testing.T) {
	s := PlayerSpec{}
	cfg, err := s.Config(-20, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Gravity != -20 {
		t.Fatalf("gravity = %v, want -20", cfg.Gravity)
	}
	if cfg.WalkSpeed != locomotion.DefaultConfig().WalkSpeed {
		t.Fatalf("unset walk speed should keep default")
	}
}

func TestLoadScript(t *testing.T) {
	withDir(t, t.TempDir())

	for _, name := range []string{"demo", "demo.tengo", "scripts/demo.tengo", "prefabs/scripts/demo"} {
		t.Run(name, func(t *testing.T) {
			data, err := LoadScript(name)
			if err != nil {
				t.Fatalf("LoadScript(%q): %v", name, err)
			}
			if len(data) == 0 {
				t.Fatalf("empty script")
			}
		})
	}

	if _, err := LoadScript("missing"); err == nil {
		t.Fatalf("expected error for missing script")
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, PlayerFile), []byte("walk_speed: 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-w.Changes:
		if c.Name != PlayerFile || c.Kind != ChangeSpec {
			t.Fatalf("unexpected change %+v", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		kind ChangeKind
		ok   bool
	}{
		{"a/camera.yaml", ChangeSpec, true},
		{"b.YML", ChangeSpec, true},
		{"scripts/demo.tengo", ChangeScript, true},
		{"readme.md", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, ok := classify(tt.path)
			if ok != tt.ok || kind != tt.kind {
				t.Fatalf("classify(%q) = %v,%v want %v,%v", tt.path, kind, ok, tt.kind, tt.ok)
			}
		})
	}
}
