package main

import (
	"bytes"
	"math"
	"testing"

	"github.com/milk9111/freelook/prefabs"
	"gopkg.in/yaml.v3"
)

func withPrefabDir(t *testing.T) {
	t.Helper()
	prev := prefabs.Dir
	prefabs.Dir = t.TempDir()
	t.Cleanup(func() { prefabs.Dir = prev })
}

func TestSimulateDemo(t *testing.T) {
	withPrefabDir(t)

	trace, err := simulate(options{Ticks: 480, DT: 1.0 / 60, Script: "demo", Every: 1})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if len(trace.Frames) != 480 {
		t.Fatalf("frames = %d, want 480", len(trace.Frames))
	}

	first, last := trace.Frames[0], trace.Frames[len(trace.Frames)-1]
	if first.Tick != 0 || math.Abs(last.Time-8) > 1e-9 {
		t.Fatalf("timeline %d..%v", first.Tick, last.Time)
	}

	var jumped, airborne, reset bool
	maxZ := 0.0
	for _, f := range trace.Frames {
		for _, evt := range f.Events {
			switch evt {
			case "jump":
				jumped = true
			case "camera_reset_started":
				reset = true
			}
		}
		if !f.Grounded {
			airborne = true
		}
		maxZ = math.Max(maxZ, f.PlayerPosition[2])
	}
	if !jumped || !airborne {
		t.Fatalf("demo should jump at least once (jumped=%v airborne=%v)", jumped, airborne)
	}
	if !reset {
		t.Fatalf("demo should request a camera reset")
	}
	if maxZ < 5 {
		t.Fatalf("demo should walk forward, max z = %v", maxZ)
	}
}

func TestSimulateEvery(t *testing.T) {
	withPrefabDir(t)

	trace, err := simulate(options{Ticks: 10, DT: 0.1, Script: "demo", Every: 4})
	if err != nil {
		t.Fatal(err)
	}
	var ticks []int
	for _, f := range trace.Frames {
		ticks = append(ticks, f.Tick)
	}
	if len(ticks) != 3 || ticks[0] != 0 || ticks[1] != 4 || ticks[2] != 8 {
		t.Fatalf("sampled ticks = %v", ticks)
	}
}

func TestSimulateRejectsBadOptions(t *testing.T) {
	withPrefabDir(t)

	tests := []struct {
		name string
		opts options
	}{
		{"negative_ticks", options{Ticks: -1, DT: 0.1, Script: "demo"}},
		{"zero_dt", options{Ticks: 1, DT: 0, Script: "demo"}},
		{"missing_script", options{Ticks: 1, DT: 0.1, Script: "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := simulate(tt.opts); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestWriteTrace(t *testing.T) {
	var buf bytes.Buffer
	in := &Trace{Script: "demo", DT: 0.5, Frames: []Frame{{Tick: 3, Clip: "walk", PlayerPosition: [3]float64{1, 2, 3}}}}
	if err := writeTrace(&buf, in); err != nil {
		t.Fatal(err)
	}
	var out Trace
	if err := yaml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("trace is not valid yaml: %v\n%s", err, buf.String())
	}
	if len(out.Frames) != 1 || out.Frames[0].Clip != "walk" || out.Frames[0].PlayerPosition != in.Frames[0].PlayerPosition {
		t.Fatalf("round trip = %+v", out)
	}
}
