package core

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

// LogLevel controls which messages a SimpleLogger emits
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLogLevel converts a level name to a LogLevel; unknown names map to info
func ParseLogLevel(level string) LogLevel {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// SimpleLogger provides a basic structured logger implementation
type SimpleLogger struct {
	level LogLevel
	out   *log.Logger
}

// NewSimpleLogger creates a new simple logger writing to stderr
func NewSimpleLogger(level LogLevel) *SimpleLogger {
	return &SimpleLogger{
		level: level,
		out:   log.New(os.Stderr, "", log.LstdFlags),
	}
}

// NewDefaultLogger creates a new default logger instance at info level
func NewDefaultLogger() Logger {
	return NewSimpleLogger(InfoLevel)
}

// Debug logs a debug message
func (l *SimpleLogger) Debug(msg string, fields map[string]interface{}) {
	if l.level <= DebugLevel {
		l.log("DEBUG", msg, fields)
	}
}

// Info logs an info message
func (l *SimpleLogger) Info(msg string, fields map[string]interface{}) {
	if l.level <= InfoLevel {
		l.log("INFO", msg, fields)
	}
}

// Warn logs a warning message
func (l *SimpleLogger) Warn(msg string, fields map[string]interface{}) {
	if l.level <= WarnLevel {
		l.log("WARN", msg, fields)
	}
}

// Error logs an error message
func (l *SimpleLogger) Error(msg string, fields map[string]interface{}) {
	if l.level <= ErrorLevel {
		l.log("ERROR", msg, fields)
	}
}

func (l *SimpleLogger) log(level, msg string, fields map[string]interface{}) {
	if len(fields) == 0 {
		l.out.Printf("[%s] %s", level, msg)
		return
	}

	// Sorted keys keep log lines stable for humans and tests
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	l.out.Printf("[%s] %s%s", level, msg, b.String())
}
