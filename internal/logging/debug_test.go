package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDebugEnabled(t *testing.T) {
	// Test with WT_DEBUG set to empty string
	t.Setenv("WT_DEBUG", "")
	if DebugEnabled() {
		t.Error("DebugEnabled() should return false when WT_DEBUG is empty")
	}

	// Test with WT_DEBUG set to any value
	t.Setenv("WT_DEBUG", "1")
	if !DebugEnabled() {
		t.Error("DebugEnabled() should return true when WT_DEBUG is set")
	}
}

func TestDebugf(t *testing.T) {
	// Only checks that Debugf doesn't panic either way
	t.Setenv("WT_DEBUG", "")
	Debugf("This should not appear: %s\n", "test")

	t.Setenv("WT_DEBUG", "1")
	Debugf("This should appear: %s\n", "test")
	Debugln("This should appear")
}

func TestParseLevel(t *testing.T) {
	t.Setenv("WT_DEBUG", "")

	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"chatty", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if level != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, level, tt.expected)
			}
		})
	}
}

func TestParseLevel_DebugEnvWins(t *testing.T) {
	t.Setenv("WT_DEBUG", "1")

	if level, _ := ParseLevel("error"); level != slog.LevelDebug {
		t.Errorf("ParseLevel() = %v, expected debug when WT_DEBUG is set", level)
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("clocked out", slog.Int64("project_id", 3))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered, got %q", out)
	}
	if !strings.Contains(out, "project_id=3") {
		t.Errorf("expected structured attribute in %q", out)
	}
}

func TestDiscard(t *testing.T) {
	if Discard().Enabled(context.Background(), slog.LevelError) {
		t.Error("Discard() should not enable any level")
	}
}
