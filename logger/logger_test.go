package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "WARN", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown_defaults_to_info", "loud", slog.LevelInfo},
		{"empty_defaults_to_info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConsoleHandler(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "console", Output: &buf})

	log.Debug("hidden")
	log.With("system", "camera").WithGroup("rig").Info("reset finished", "ticks", 45)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
	for _, want := range []string{"INFO ", "reset finished", "system=camera", "rig.ticks=45"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected a single line, got %q", out)
	}
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Level: "debug", Format: "json", Output: &buf}).Debug("tick", "n", 3)
	if !strings.Contains(buf.String(), `"msg":"tick"`) || !strings.Contains(buf.String(), `"n":3`) {
		t.Fatalf("unexpected json output %q", buf.String())
	}
}
