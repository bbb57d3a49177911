package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "console", Output: &buf})

	log.With("component", "engine").WithGroup("chunk").Info("generated", "x", 3, "z", -2)
	log.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "INFO  generated") {
		t.Errorf("missing level and message: %q", out)
	}
	if !strings.Contains(out, "component=engine") {
		t.Errorf("missing pre-attached attr: %q", out)
	}
	if !strings.Contains(out, "chunk.x=3") || !strings.Contains(out, "chunk.z=-2") {
		t.Errorf("missing grouped attrs: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Output: &buf})
	log.Warn("ore block type not found, skipping", "ore", "Ore_Coal_Aqua")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if rec["level"] != "WARN" || rec["ore"] != "Ore_Coal_Aqua" {
		t.Errorf("record = %v", rec)
	}
}
