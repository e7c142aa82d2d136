package tracer

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/angeloszaimis/gotracer/internal/metrics"
)

// MessageOptions selects the destination and shape of an ad-hoc message.
// The zero value targets the root logger at debug level with no extra
// fields.
type MessageOptions struct {
	// Logger is the destination logger name; empty means the root.
	Logger string
	// Level is the message severity; nil means debug.
	Level slog.Leveler
	// Fields are contextual values attached to the record as attributes,
	// available to custom handlers.
	Fields map[string]any
}

// Message emits a debug message to the root logger, interpolating args
// fmt.Sprintf-style. It is a no-op while tracing is disabled.
func (t *Tracer) Message(msg string, args ...any) {
	t.MessageWith(MessageOptions{}, msg, args...)
}

// MessageWith emits a message per the given options. While tracing is
// disabled it returns before any logger lookup. At severities strictly above
// info the current goroutine stack is attached to the record under the
// "stack" key.
func (t *Tracer) MessageWith(o MessageOptions, msg string, args ...any) {
	if !t.IsEnabled() {
		return
	}

	name := o.Logger
	if name == "" {
		name = t.rootName
	}

	level := slog.LevelDebug
	if o.Level != nil {
		level = o.Level.Level()
	}

	lg := t.registry.Get(name)

	attrs := make([]slog.Attr, 0, len(o.Fields)+1)
	for k, v := range o.Fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	if level > slog.LevelInfo {
		attrs = append(attrs, slog.String("stack", string(debug.Stack())))
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	if !lg.Enabled(level) {
		t.emit(metrics.EventRecordDropped, name, level)
		return
	}

	lg.Log(level, msg, attrs...)
	t.emit(metrics.EventRecordEmitted, name, level)
}
