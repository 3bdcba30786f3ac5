// Package logger provides structured logging utilities for the deepl-desktop application.
//
// The printf-style helpers are kept so call sites read like plain log lines,
// while records go through log/slog so the output stays machine-parsable.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Level represents the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a Level.
// Unknown names fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// sink holds the state shared by a logger and everything derived from it.
type sink struct {
	mu      sync.Mutex
	level   *slog.LevelVar
	handler slog.Handler
}

func (s *sink) setOutput(w io.Writer) {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: s.level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String(slog.TimeKey, a.Value.Time().Format("15:04:05"))
			}
			return a
		},
	})
	s.mu.Lock()
	s.handler = h
	s.mu.Unlock()
}

func (s *sink) current() slog.Handler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handler
}

// Logger is the main logging struct.
type Logger struct {
	sink      *sink
	component string
}

// New creates a new logger with the specified level and output.
func New(level Level, output io.Writer) *Logger {
	s := &sink{level: new(slog.LevelVar)}
	s.level.Set(level.slogLevel())
	s.setOutput(output)
	return &Logger{sink: s}
}

// Named returns a logger that tags every record with component=name.
// It shares level and output with its parent.
func (l *Logger) Named(name string) *Logger {
	return &Logger{sink: l.sink, component: name}
}

// SetLevel changes the minimum level of this logger and every logger sharing its output.
func (l *Logger) SetLevel(level Level) {
	l.sink.level.Set(level.slogLevel())
}

// SetOutput redirects this logger and every logger sharing its output.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.setOutput(w)
}

// log writes a log message with the given level.
func (l *Logger) log(level Level, format string, args ...interface{}) {
	h := l.sink.current()
	ctx := context.Background()
	lvl := level.slogLevel()
	if !h.Enabled(ctx, lvl) {
		return
	}
	var attrs []slog.Attr
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	slog.New(h).LogAttrs(ctx, lvl, fmt.Sprintf(format, args...), attrs...)
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Default logger instance
var defaultLogger = New(LevelInfo, os.Stderr)

// Default returns the process-wide logger.
func Default() *Logger { return defaultLogger }

// Named returns a component logger derived from the default logger.
func Named(name string) *Logger { return defaultLogger.Named(name) }

// SetLevel sets the minimum log level for the default logger.
func SetLevel(level Level) { defaultLogger.SetLevel(level) }

// SetOutput sets the output writer for the default logger.
func SetOutput(w io.Writer) { defaultLogger.SetOutput(w) }

// Debug logs a debug message using the default logger.
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }

// Info logs an informational message using the default logger.
func Info(format string, args ...interface{}) { defaultLogger.Info(format, args...) }

// Warn logs a warning message using the default logger.
func Warn(format string, args ...interface{}) { defaultLogger.Warn(format, args...) }

// Error logs an error message using the default logger.
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }
