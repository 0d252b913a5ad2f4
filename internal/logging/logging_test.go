package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_HasComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelDebug, "text", &buf)

	logger := New("engine")
	logger.Info("mix resolved")

	output := buf.String()
	if !strings.Contains(output, "component=engine") {
		t.Errorf("expected component=engine in output, got: %s", output)
	}
	if !strings.Contains(output, "mix resolved") {
		t.Errorf("expected message in output, got: %s", output)
	}
}

func TestInit_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelInfo, "json", &buf)

	slog.Debug("hidden")
	slog.Info("shown", "key", "Fire+Water")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("debug line should be filtered at info level: %s", output)
	}
	if !strings.Contains(output, `"key":"Fire+Water"`) {
		t.Errorf("expected JSON attribute, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
