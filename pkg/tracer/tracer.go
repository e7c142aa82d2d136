package tracer

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/angeloszaimis/gotracer/internal/metrics"
	"github.com/angeloszaimis/gotracer/pkg/logger"
)

// DefaultRootName is the root of the logger hierarchy and the default
// destination for ad-hoc messages.
const DefaultRootName = "gotracer"

// ErrNotEnabled is returned when an operation requires tracing to have been
// enabled first.
var ErrNotEnabled = errors.New("tracing is not enabled")

// Tracer is the tracing facility. The zero value is not usable; construct
// with New.
type Tracer struct {
	enabled   atomic.Bool
	rootName  string
	registry  *logger.Registry
	collector *metrics.Collector
}

type Option func(*Tracer)

// WithRootName overrides the root logger name.
func WithRootName(name string) Option {
	return func(t *Tracer) {
		t.rootName = name
	}
}

// WithRegistry uses an existing logger registry instead of a fresh one.
func WithRegistry(reg *logger.Registry) Option {
	return func(t *Tracer) {
		t.registry = reg
	}
}

// WithCollector wires an emission-metrics collector into the facility.
func WithCollector(c *metrics.Collector) Option {
	return func(t *Tracer) {
		t.collector = c
	}
}

func New(opts ...Option) *Tracer {
	t := &Tracer{
		rootName: DefaultRootName,
		registry: logger.NewRegistry(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

func (t *Tracer) RootName() string {
	return t.rootName
}

func (t *Tracer) Registry() *logger.Registry {
	return t.registry
}

// IsEnabled reports the current state of the tracing flag.
func (t *Tracer) IsEnabled() bool {
	return t.enabled.Load()
}

// Enable turns tracing on. It is meant to be used after Setup has run at
// least once; calling it beforehand is permitted but emissions then reach a
// root logger with no sinks attached.
func (t *Tracer) Enable() {
	t.enabled.Store(true)
}

// Disable turns tracing off.
func (t *Tracer) Disable() {
	t.enabled.Store(false)
}

// Setup enables tracing and configures the root logger: its severity
// threshold is set to level, a console sink is attached, and when logFile is
// non-empty a file sink appending to that path is attached as well. Sinks
// accumulate across calls; there is no deduplication, so calling Setup twice
// doubles console output.
//
// A file-open failure is returned unmodified; tracing stays enabled and the
// console sink remains attached.
func (t *Tracer) Setup(logFile string, level slog.Level) (*logger.Logger, error) {
	t.enabled.Store(true)

	root := t.registry.Get(t.rootName)
	root.SetLevel(level)

	root.AddHandler(logger.NewConsoleHandler())
	t.emit(metrics.EventSinkAttached, t.rootName, level)

	if logFile != "" {
		fh, err := logger.NewFileHandler(logFile)
		if err != nil {
			return nil, err
		}
		root.AddHandler(fh)
		t.emit(metrics.EventSinkAttached, t.rootName, level)
	}

	return root, nil
}

// AddChildLog derives a child of the root logger. It fails with
// ErrNotEnabled when tracing is off; the check happens before any registry
// lookup.
func (t *Tracer) AddChildLog(suffix string) (string, *logger.Logger, error) {
	return t.AddChildLogUnder(t.rootName, suffix)
}

// AddChildLogUnder derives a child of an arbitrary parent logger. The child
// name is parentName + "." + suffix. No sinks or level are configured on the
// child; it inherits through the registry hierarchy.
func (t *Tracer) AddChildLogUnder(parentName, suffix string) (string, *logger.Logger, error) {
	if !t.IsEnabled() {
		return "", nil, ErrNotEnabled
	}

	name := parentName + "." + suffix
	child := t.registry.Get(name)
	t.emit(metrics.EventChildAdded, name, 0)

	return name, child, nil
}

func (t *Tracer) emit(typ metrics.EventType, loggerName string, level slog.Level) {
	if t.collector == nil {
		return
	}

	t.collector.TryEmit(metrics.MetricEvent{
		Type:      typ,
		Timestamp: time.Now(),
		Logger:    loggerName,
		Level:     level,
	})
}
