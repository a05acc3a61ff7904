package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)
	defer SetLevel(Notice)

	tests := []struct {
		name     string
		level    Level
		logged   []string
		filtered []string
	}{
		{"Notice hides info and debug", Notice, []string{"notice-msg", "warning-msg", "error-msg"}, []string{"info-msg", "debug-msg"}},
		{"Info hides debug", Info, []string{"info-msg", "notice-msg"}, []string{"debug-msg"}},
		{"Debug shows everything", Debug, []string{"debug-msg", "info-msg", "error-msg"}, nil},
		{"Error hides warnings", Error, []string{"error-msg"}, []string{"warning-msg", "notice-msg"}},
	}

	logger := New("test")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			SetLevel(tt.level)

			logger.Debug("debug-msg")
			logger.Info("info-msg")
			logger.Notice("notice-msg")
			logger.Warning("warning-msg")
			logger.Error("error-msg")

			out := buf.String()
			for _, msg := range tt.logged {
				if !strings.Contains(out, msg) {
					t.Errorf("Expected %q in output:\n%s", msg, out)
				}
			}
			for _, msg := range tt.filtered {
				if strings.Contains(out, msg) {
					t.Errorf("Did not expect %q in output:\n%s", msg, out)
				}
			}
		})
	}
}

func TestFormatIncludesModule(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)

	New("renderer").Noticef("rendered %d tiles", 12)

	out := buf.String()
	if !strings.Contains(out, "[renderer]") {
		t.Errorf("Expected module name in output, got %q", out)
	}
	if !strings.Contains(out, "rendered 12 tiles") {
		t.Errorf("Expected formatted message in output, got %q", out)
	}
}

func TestSetSinkKeepsLevel(t *testing.T) {
	SetLevel(Debug)
	defer SetLevel(Notice)

	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)

	if !Enabled(Debug) {
		t.Error("Expected debug level to survive a sink change")
	}
}
