package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("Level(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo}, // Default
		{"", LevelInfo},        // Default
	}

	for _, tt := range tests {
		result := ParseLevel(tt.input)
		if result != tt.expected {
			t.Errorf("ParseLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func TestLookupLevel_Unknown(t *testing.T) {
	if _, err := LookupLevel("loud"); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("expected ErrUnknownLevel, got %v", err)
	}
	if l, err := LookupLevel("Warn"); err != nil || l != LevelWarn {
		t.Errorf("LookupLevel('Warn') = %v, %v", l, err)
	}
}

func TestNew_DefaultOutput(t *testing.T) {
	logger := New(Config{})
	if logger.output == nil {
		t.Error("expected default output to be set")
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf, Prefix: "test"})

	logger.Debug("debug %d", 1)
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	for _, want := range []string{"[DEBUG] test: debug 1", "[INFO] test: info", "[WARN] test: warn", "[ERROR] test: error"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf})

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("messages below level should be filtered, got %q", output)
	}
	if !strings.Contains(output, "shown") {
		t.Error("expected warn message")
	}

	logger.SetLevel(LevelDebug)
	if logger.Level() != LevelDebug {
		t.Errorf("expected LevelDebug, got %s", logger.Level())
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf}).
		WithComponent("engine").
		WithFields(map[string]any{"intent": "delete", "address": "-0.5"})

	logger.Info("applied")

	want := "{address=-0.5, component=engine, intent=delete}"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("expected %q in %q", want, buf.String())
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Config{Output: &buf})
	_ = parent.WithField("k", "v")

	parent.Info("plain")
	if strings.Contains(buf.String(), "k=v") {
		t.Error("parent logger should not carry child fields")
	}
}

func TestLogger_DisableEnable(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Output: &buf})

	logger.Disable()
	logger.Error("nope")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}

	logger.Enable()
	logger.Error("yes")
	if !strings.Contains(buf.String(), "yes") {
		t.Error("enabled logger should write")
	}
}

func TestNull(t *testing.T) {
	logger := Null()
	logger.Error("dropped")
	logger.WithComponent("x").Info("dropped")
}
