package logging

import (
	"log/slog"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(tt.level, "production")
			if logger == nil || logger.Logger == nil {
				t.Fatal("expected non-nil logger")
			}
			if !logger.Enabled(nil, tt.want) {
				t.Fatalf("expected level %v to be enabled", tt.want)
			}
			if tt.want != slog.LevelDebug && logger.Enabled(nil, tt.want-1) {
				t.Fatalf("expected level below %v to be disabled", tt.want)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	if logger == nil {
		t.Fatal("expected non-nil default logger")
	}
	if logger.Enabled(nil, slog.LevelDebug) {
		t.Fatal("default logger should not log debug")
	}
}

func TestWith(t *testing.T) {
	logger := Default().With("component", "test")
	if logger == nil || logger.Logger == nil {
		t.Fatal("expected non-nil child logger")
	}
}
