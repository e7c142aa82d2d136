package logger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Logger is a named handle into the registry hierarchy. It holds an optional
// severity threshold and a list of handler sinks. A logger with no threshold
// of its own inherits the nearest ancestor's, falling back to the registry
// default (debug).
type Logger struct {
	name     string
	registry *Registry

	mutex    sync.Mutex
	level    slog.Level
	hasLevel bool
	handlers []slog.Handler
}

func (l *Logger) Name() string {
	return l.name
}

// SetLevel sets the logger's own severity threshold.
func (l *Logger) SetLevel(level slog.Level) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.level = level
	l.hasLevel = true
}

// AddHandler appends a sink. Handlers accumulate; there is no deduplication.
func (l *Logger) AddHandler(h slog.Handler) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.handlers = append(l.handlers, h)
}

// Handlers returns a snapshot of the attached sinks.
func (l *Logger) Handlers() []slog.Handler {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	snapshot := make([]slog.Handler, len(l.handlers))
	copy(snapshot, l.handlers)

	return snapshot
}

// Enabled reports whether a record at level would pass the severity gate.
func (l *Logger) Enabled(level slog.Level) bool {
	return level >= l.effectiveLevel()
}

// Log emits a record at the given level with optional contextual attributes.
// The record carries the logger's name and is delivered to the handlers of
// this logger and of every registered dotted ancestor.
func (l *Logger) Log(level slog.Level, msg string, attrs ...slog.Attr) {
	if !l.Enabled(level) {
		return
	}

	rec := slog.NewRecord(time.Now(), level, msg, 0)
	rec.AddAttrs(slog.String("logger", l.name))
	rec.AddAttrs(attrs...)

	ctx := context.Background()

	l.handle(ctx, rec)
	for _, ancestor := range l.registry.ancestors(l.name) {
		ancestor.handle(ctx, rec)
	}
}

// Logf emits a record at the given level, formatting msg fmt.Sprintf-style.
func (l *Logger) Logf(level slog.Level, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	l.Log(level, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(msg string, attrs ...slog.Attr) { l.Log(slog.LevelDebug, msg, attrs...) }
func (l *Logger) Info(msg string, attrs ...slog.Attr)  { l.Log(slog.LevelInfo, msg, attrs...) }
func (l *Logger) Warn(msg string, attrs ...slog.Attr)  { l.Log(slog.LevelWarn, msg, attrs...) }
func (l *Logger) Error(msg string, attrs ...slog.Attr) { l.Log(slog.LevelError, msg, attrs...) }

func (l *Logger) Debugf(format string, args ...any) { l.Logf(slog.LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.Logf(slog.LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.Logf(slog.LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.Logf(slog.LevelError, format, args...) }

func (l *Logger) handle(ctx context.Context, rec slog.Record) {
	for _, h := range l.Handlers() {
		if h.Enabled(ctx, rec.Level) {
			_ = h.Handle(ctx, rec.Clone())
		}
	}
}

func (l *Logger) effectiveLevel() slog.Level {
	l.mutex.Lock()
	if l.hasLevel {
		level := l.level
		l.mutex.Unlock()
		return level
	}
	l.mutex.Unlock()

	for _, ancestor := range l.registry.ancestors(l.name) {
		ancestor.mutex.Lock()
		if ancestor.hasLevel {
			level := ancestor.level
			ancestor.mutex.Unlock()
			return level
		}
		ancestor.mutex.Unlock()
	}

	return l.registry.defaultLevel
}
