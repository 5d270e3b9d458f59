package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		verbose bool
		want    zapcore.Level
	}{
		{"info", false, zapcore.InfoLevel},
		{"warn", false, zapcore.WarnLevel},
		{"info", true, zapcore.DebugLevel},
		{"", false, zapcore.InfoLevel},
	}
	for _, tc := range tests {
		logger, err := New(tc.level, tc.verbose)
		if err != nil {
			t.Fatalf("New(%q, %v): %v", tc.level, tc.verbose, err)
		}
		if got := logger.Level(); got != tc.want {
			t.Fatalf("New(%q, %v) level = %v, want %v", tc.level, tc.verbose, got, tc.want)
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", false); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
