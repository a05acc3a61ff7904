package cmd

import (
	"fmt"
	"testing"
)

func TestWarnFrameMemory(t *testing.T) {
	tests := []struct {
		name       string
		frameBytes uint64
		available  uint64
		expected   bool
	}{
		{"Small frame", 1 << 20, 1 << 30, false},
		{"Exactly a quarter", 1 << 28, 1 << 30, false},
		{"Over a quarter", 1<<28 + 1, 1 << 30, true},
		{"No memory reported", 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := warnFrameMemory(tt.frameBytes, tt.available); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestProgressLogger(t *testing.T) {
	tests := []struct {
		total    int
		expected []string
	}{
		{1, []string{"rendered 100% (1/1 tiles)"}},
		{3, []string{"rendered 30% (1/3 tiles)", "rendered 60% (2/3 tiles)", "rendered 100% (3/3 tiles)"}},
		{25, []string{
			"rendered 10% (3/25 tiles)", "rendered 20% (5/25 tiles)", "rendered 30% (8/25 tiles)",
			"rendered 40% (10/25 tiles)", "rendered 50% (13/25 tiles)", "rendered 60% (15/25 tiles)",
			"rendered 70% (18/25 tiles)", "rendered 80% (20/25 tiles)", "rendered 90% (23/25 tiles)",
			"rendered 100% (25/25 tiles)",
		}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d tiles", tt.total), func(t *testing.T) {
			var messages []string
			progress := progressLogger(func(format string, v ...interface{}) {
				messages = append(messages, fmt.Sprintf(format, v...))
			})
			for done := 1; done <= tt.total; done++ {
				progress(done, tt.total)
			}

			if len(messages) != len(tt.expected) {
				t.Fatalf("Expected %d messages, got %d: %q", len(tt.expected), len(messages), messages)
			}
			for i := range tt.expected {
				if messages[i] != tt.expected[i] {
					t.Errorf("Message %d: expected %q, got %q", i, tt.expected[i], messages[i])
				}
			}
		})
	}
}
