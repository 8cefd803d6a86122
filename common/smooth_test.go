package common

import (
	"math"
	"testing"
)

const dt = 1.0 / 60.0

func TestSmoothDamp(t *testing.T) {
	t.Run("zero_smooth_time_snaps", func(t *testing.T) {
		vel := 0.0
		got := SmoothDamp(0, 10, &vel, 0, dt)
		if math.Abs(got-10) > 1e-3 {
			t.Fatalf("expected snap to 10, got %v", got)
		}
	})

	t.Run("max_smooth_time_freezes", func(t *testing.T) {
		vel := 3.0
		got := SmoothDamp(4, 10, &vel, MaxSmoothTime, dt)
		if got != 4 {
			t.Fatalf("expected value to stay at 4, got %v", got)
		}
		if vel != 3 {
			t.Fatalf("expected velocity untouched, got %v", vel)
		}
	})

	t.Run("infinite_smooth_time_freezes", func(t *testing.T) {
		vel := 0.0
		if got := SmoothDamp(4, 10, &vel, math.Inf(1), dt); got != 4 {
			t.Fatalf("expected 4, got %v", got)
		}
	})

	t.Run("zero_dt_is_noop", func(t *testing.T) {
		vel := 0.0
		if got := SmoothDamp(1, 10, &vel, 0.25, 0); got != 1 {
			t.Fatalf("expected 1, got %v", got)
		}
		if vel != 0 {
			t.Fatalf("expected zero velocity, got %v", vel)
		}
	})

	t.Run("approaches_without_overshoot", func(t *testing.T) {
		vel := 0.0
		v := 0.0
		prev := v
		for i := 0; i < 600; i++ {
			v = SmoothDamp(v, 5, &vel, 0.25, dt)
			if v > 5 {
				t.Fatalf("tick %d overshot: %v", i, v)
			}
			if v < prev {
				t.Fatalf("tick %d moved away from target: %v < %v", i, v, prev)
			}
			prev = v
		}
		if math.Abs(v-5) > 1e-3 {
			t.Fatalf("expected to settle at 5, got %v", v)
		}
	})

	t.Run("approaches_from_above", func(t *testing.T) {
		vel := 0.0
		v := 10.0
		for i := 0; i < 600; i++ {
			v = SmoothDamp(v, 5, &vel, 0.25, dt)
			if v < 5 {
				t.Fatalf("tick %d overshot: %v", i, v)
			}
		}
		if math.Abs(v-5) > 1e-3 {
			t.Fatalf("expected to settle at 5, got %v", v)
		}
	})
}

func TestSmoothDampAngleTakesShortWay(t *testing.T) {
	vel := 0.0
	got := SmoothDampAngle(350, 10, &vel, 0.1, dt)
	if got <= 350 {
		t.Fatalf("expected to move up through 360, got %v", got)
	}

	vel = 0
	got = SmoothDampAngle(350, 10, &vel, 0, dt)
	if math.Abs(NormalizeAngle(got)-10) > 1e-2 {
		t.Fatalf("expected snap to 10 (mod 360), got %v", got)
	}
}
