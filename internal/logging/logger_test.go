package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/allbin/serialtail/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "debug level", input: "debug", expected: slog.LevelDebug},
		{name: "info level", input: "info", expected: slog.LevelInfo},
		{name: "warn level", input: "warn", expected: slog.LevelWarn},
		{name: "error level", input: "error", expected: slog.LevelError},
		{name: "unknown defaults to warn", input: "verbose", expected: slog.LevelWarn},
		{name: "empty defaults to warn", input: "", expected: slog.LevelWarn},
		{name: "case insensitive", input: "DEBUG", expected: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	logger.Info("port opened", "device", "/dev/ttyACM0")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if entry["msg"] != "port opened" {
		t.Errorf("expected msg='port opened', got %v", entry["msg"])
	}
	if entry["device"] != "/dev/ttyACM0" {
		t.Errorf("expected device field, got %v", entry["device"])
	}
	if entry["service"] != "serialtail" {
		t.Errorf("expected service field, got %v", entry["service"])
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggingConfig{Level: "debug", Format: "text"}, &buf)

	logger.Debug("read loop ended", "lines", 2)

	out := buf.String()
	if !strings.Contains(out, "read loop ended") || !strings.Contains(out, "lines=2") {
		t.Errorf("unexpected text output: %q", out)
	}
}

func TestNew_DefaultLevelIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggingConfig{}, &buf)

	logger.Info("not shown")
	logger.Debug("not shown either")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}

	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn output, got %q", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	child := logger.With("component", "linereader")

	if child == logger {
		t.Error("expected child logger to be different from parent")
	}

	child.Info("hello")
	if !strings.Contains(buf.String(), `"component":"linereader"`) {
		t.Errorf("expected component field, got %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("dropped")
}
