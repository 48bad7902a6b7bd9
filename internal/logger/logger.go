// Package logger provides the leveled logging interface shared by gridwatch
// components. Output goes through the standard log package so the TUI can
// redirect it (tea.LogToFile) without every component knowing about the screen.
package logger

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// DebugEnv enables debug output when set to any non-empty value.
const DebugEnv = "GRIDWATCH_DEBUG"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// DebugEnabled reports whether GRIDWATCH_DEBUG is set.
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// envLogger writes through the standard logger with a component prefix.
type envLogger struct {
	prefix string
}

// NewEnvLogger creates a logger that prints Debug lines only when GRIDWATCH_DEBUG is set.
// The prefix names the component, e.g. "[client]" or "[health]".
func NewEnvLogger(prefix string) Logger {
	return &envLogger{prefix: prefix}
}

func (l *envLogger) emit(level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	switch {
	case l.prefix == "" && level == "":
		log.Print(msg)
	case l.prefix == "":
		log.Printf("%s: %s", level, msg)
	case level == "":
		log.Printf("%s %s", l.prefix, msg)
	default:
		log.Printf("%s %s: %s", l.prefix, level, msg)
	}
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	if DebugEnabled() {
		l.emit("", format, args...)
	}
}

func (l *envLogger) Info(format string, args ...interface{}) {
	l.emit("", format, args...)
}

func (l *envLogger) Warn(format string, args ...interface{}) {
	l.emit("WARN", format, args...)
}

func (l *envLogger) Error(format string, args ...interface{}) {
	l.emit("ERROR", format, args...)
}

type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for test assertions.
// Safe for use from the goroutines that run backend requests.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{Messages: make([]LogMessage, 0)}
}

func (l *BufferLogger) record(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.record("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.record("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.record("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.record("error", format, args...) }

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = l.Messages[:0]
}

var defaultLogger = NewEnvLogger("")

// Default returns the process-wide logger.
func Default() Logger {
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(l Logger) {
	defaultLogger = l
}

// OrDefault returns l, or the process-wide logger when l is nil.
func OrDefault(l Logger) Logger {
	if l == nil {
		return defaultLogger
	}
	return l
}
