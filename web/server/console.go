package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/log"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "notice", "warning", "error"
}

// Console keeps the most recent messages in a fixed-size ring buffer
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	next     int
	full     bool
}

// NewConsole creates a console holding up to size messages
func NewConsole(size int) *Console {
	return &Console{messages: make([]ConsoleMessage, max(1, size))}
}

// Add records a message, overwriting the oldest one when full
func (c *Console) Add(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages[c.next] = msg
	c.next = (c.next + 1) % len(c.messages)
	if c.next == 0 {
		c.full = true
	}
}

// Messages returns a copy of the buffered messages, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.full {
		return append([]ConsoleMessage{}, c.messages[:c.next]...)
	}
	result := make([]ConsoleMessage, 0, len(c.messages))
	result = append(result, c.messages[c.next:]...)
	return append(result, c.messages[:c.next]...)
}

// WebLogger implements log.Logger by writing to a base logger and recording every message
// in the console for a specific render
type WebLogger struct {
	renderID string
	base     log.Logger
	console  *Console
}

// NewWebLogger creates a new web logger for a specific render. A nil console only forwards.
func NewWebLogger(renderID string, base log.Logger, console *Console) log.Logger {
	return &WebLogger{
		renderID: renderID,
		base:     base,
		console:  console,
	}
}

func (wl *WebLogger) record(level, message string) {
	if wl.console == nil {
		return
	}
	wl.console.Add(ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	})
}

func (wl *WebLogger) Debug(v ...interface{}) {
	wl.base.Debug(v...)
	wl.record("debug", fmt.Sprint(v...))
}

func (wl *WebLogger) Debugf(format string, v ...interface{}) {
	wl.base.Debugf(format, v...)
	wl.record("debug", fmt.Sprintf(format, v...))
}

func (wl *WebLogger) Info(v ...interface{}) {
	wl.base.Info(v...)
	wl.record("info", fmt.Sprint(v...))
}

func (wl *WebLogger) Infof(format string, v ...interface{}) {
	wl.base.Infof(format, v...)
	wl.record("info", fmt.Sprintf(format, v...))
}

func (wl *WebLogger) Notice(v ...interface{}) {
	wl.base.Notice(v...)
	wl.record("notice", fmt.Sprint(v...))
}

func (wl *WebLogger) Noticef(format string, v ...interface{}) {
	wl.base.Noticef(format, v...)
	wl.record("notice", fmt.Sprintf(format, v...))
}

func (wl *WebLogger) Warning(v ...interface{}) {
	wl.base.Warning(v...)
	wl.record("warning", fmt.Sprint(v...))
}

func (wl *WebLogger) Warningf(format string, v ...interface{}) {
	wl.base.Warningf(format, v...)
	wl.record("warning", fmt.Sprintf(format, v...))
}

func (wl *WebLogger) Error(v ...interface{}) {
	wl.base.Error(v...)
	wl.record("error", fmt.Sprint(v...))
}

func (wl *WebLogger) Errorf(format string, v ...interface{}) {
	wl.base.Errorf(format, v...)
	wl.record("error", fmt.Sprintf(format, v...))
}
