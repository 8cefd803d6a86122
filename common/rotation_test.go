package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func sameRotation(a, b mgl64.Quat) bool {
	// q and -q are the same rotation
	return math.Abs(math.Abs(a.Normalize().Dot(b.Normalize()))-1) < 1e-9
}

func TestEulerPitchYawRoundTrip(t *testing.T) {
	cases := []struct {
		pitch, yaw float64
	}{
		{0, 0},
		{20, 0},
		{-15, 90},
		{45, -135},
		{80, 179},
	}

	for _, c := range cases {
		pitch, yaw := PitchYaw(Euler(c.pitch, c.yaw))
		if math.Abs(pitch-c.pitch) > 1e-9 || math.Abs(yaw-c.yaw) > 1e-9 {
			t.Fatalf("PitchYaw(Euler(%v, %v)) = (%v, %v)", c.pitch, c.yaw, pitch, yaw)
		}
	}
}

func TestEulerPositivePitchLooksDown(t *testing.T) {
	f := Euler(30, 0).Rotate(Forward)
	if f.Y() >= 0 {
		t.Fatalf("expected forward to point downward, got %v", f)
	}
	// an orbit offset behind the pivot ends up above it
	back := Euler(30, 0).Rotate(mgl64.Vec3{0, 0, -1})
	if back.Y() <= 0 {
		t.Fatalf("expected offset above pivot, got %v", back)
	}
}

func TestLookRotation(t *testing.T) {
	dirs := []mgl64.Vec3{
		{0, 0, 1},
		{1, 0, 0},
		{1, -1, 1},
		{-3, 2, -0.5},
	}
	for _, d := range dirs {
		f := LookRotation(d).Rotate(Forward)
		if f.Sub(d.Normalize()).Len() > 1e-9 {
			t.Fatalf("LookRotation(%v) forward = %v", d, f)
		}
	}

	if q := LookRotation(mgl64.Vec3{}); !sameRotation(q, mgl64.QuatIdent()) {
		t.Fatalf("expected identity for zero direction, got %v", q)
	}
}

func TestSlerpTowards(t *testing.T) {
	a := Euler(0, 0)
	b := Euler(0, 90)

	t.Run("weight_zero_keeps_current", func(t *testing.T) {
		if got := SlerpTowards(a, b, 0); !sameRotation(got, a) {
			t.Fatalf("expected current, got %v", got)
		}
	})

	t.Run("weight_one_reaches_target", func(t *testing.T) {
		if got := SlerpTowards(a, b, 1); !sameRotation(got, b) {
			t.Fatalf("expected target, got %v", got)
		}
	})

	t.Run("fixed_weight_blends_angle", func(t *testing.T) {
		_, yaw := PitchYaw(SlerpTowards(a, b, 0.5))
		if math.Abs(yaw-45) > 1e-6 {
			t.Fatalf("expected yaw 45, got %v", yaw)
		}
	})

	t.Run("shortest_arc", func(t *testing.T) {
		_, yaw := PitchYaw(SlerpTowards(a, b.Scale(-1), 0.5))
		if math.Abs(yaw-45) > 1e-6 {
			t.Fatalf("expected yaw 45 through the short arc, got %v", yaw)
		}
	})

	t.Run("weight_clamped", func(t *testing.T) {
		if got := SlerpTowards(a, b, 3); !sameRotation(got, b) {
			t.Fatalf("expected target, got %v", got)
		}
	})
}

func TestHeadingForward(t *testing.T) {
	cases := []struct {
		heading float64
		want    mgl64.Vec3
	}{
		{0, mgl64.Vec3{0, 0, 1}},
		{90, mgl64.Vec3{1, 0, 0}},
		{180, mgl64.Vec3{0, 0, -1}},
	}
	for _, c := range cases {
		if got := HeadingForward(c.heading); got.Sub(c.want).Len() > 1e-9 {
			t.Fatalf("HeadingForward(%v) = %v, want %v", c.heading, got, c.want)
		}
		if got := YawRotation(c.heading).Rotate(Forward); got.Sub(c.want).Len() > 1e-9 {
			t.Fatalf("YawRotation(%v) forward = %v, want %v", c.heading, got, c.want)
		}
	}
}
