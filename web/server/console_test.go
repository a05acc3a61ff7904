package server

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/log"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	console := NewConsole(10)
	logger := NewWebLogger("test-render-123", log.New("test"), console)

	// Test basic logging
	testMessage := "Test log message"
	logger.Info(testMessage)

	messages := console.Messages()
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}

	msg := messages[0]
	if msg.Message != testMessage {
		t.Errorf("Expected message '%s', got '%s'", testMessage, msg.Message)
	}
	if msg.Level != "info" {
		t.Errorf("Expected level 'info', got '%s'", msg.Level)
	}
	if msg.RenderID != "test-render-123" {
		t.Errorf("Expected render id 'test-render-123', got '%s'", msg.RenderID)
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
	}
}

func TestWebLogger_Levels(t *testing.T) {
	console := NewConsole(10)
	logger := NewWebLogger("levels", log.New("test"), console)

	logger.Debugf("%s", "d")
	logger.Infof("%s", "i")
	logger.Noticef("%s", "n")
	logger.Warningf("%s", "w")
	logger.Errorf("%s", "e")

	expected := []string{"debug", "info", "notice", "warning", "error"}
	messages := console.Messages()
	if len(messages) != len(expected) {
		t.Fatalf("Expected %d messages, got %d", len(expected), len(messages))
	}
	for i, level := range expected {
		if messages[i].Level != level {
			t.Errorf("Message %d: expected level %s, got %s", i, level, messages[i].Level)
		}
	}
}

func TestWebLogger_FormattedMessages(t *testing.T) {
	console := NewConsole(10)
	logger := NewWebLogger("test-render-format", log.New("test"), console)

	// Test formatted logging
	logger.Noticef("rendering %dx%d, %d samples/pixel", 400, 225, 100)

	expected := "rendering 400x225, 100 samples/pixel"
	if got := console.Messages()[0].Message; got != expected {
		t.Errorf("Expected formatted message '%s', got '%s'", expected, got)
	}
}

func TestWebLogger_NilConsole(t *testing.T) {
	// Test logger with nil console (should not panic)
	logger := NewWebLogger("test-render-nil", log.New("test"), nil)

	// This should not panic
	logger.Warning("Test message with nil console")
}

func TestConsole_RingBuffer(t *testing.T) {
	console := NewConsole(3)
	if len(console.Messages()) != 0 {
		t.Fatal("New console should be empty")
	}

	for i := 1; i <= 5; i++ {
		console.Add(ConsoleMessage{Message: fmt.Sprintf("Message %d", i)})
	}

	// Only the newest three survive, oldest first
	messages := console.Messages()
	expected := []string{"Message 3", "Message 4", "Message 5"}
	if len(messages) != len(expected) {
		t.Fatalf("Expected %d messages, got %d", len(expected), len(messages))
	}
	for i := range expected {
		if messages[i].Message != expected[i] {
			t.Errorf("Message %d: expected '%s', got '%s'", i, expected[i], messages[i].Message)
		}
	}

	// The returned slice is a copy
	messages[0].Message = "changed"
	if console.Messages()[0].Message != "Message 3" {
		t.Error("Messages() should not expose the internal buffer")
	}
}

func TestConsole_ConcurrentAdd(t *testing.T) {
	console := NewConsole(50)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				console.Add(ConsoleMessage{Message: "tick"})
			}
		}()
	}
	wg.Wait()

	if got := len(console.Messages()); got != 50 {
		t.Errorf("Expected a full console of 50 messages, got %d", got)
	}
}
