package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/angeloszaimis/gotracer/pkg/logger"
)

type EventType string

const (
	EventRecordEmitted EventType = "record_emitted"
	EventRecordDropped EventType = "record_dropped"
	EventSinkAttached  EventType = "sink_attached"
	EventChildAdded    EventType = "child_added"
)

type MetricEvent struct {
	Type      EventType
	Timestamp time.Time
	Logger    string
	Level     slog.Level
}

type Collector struct {
	eventCh chan MetricEvent
	metrics *Metrics
	logger  *logger.Logger
}

func NewCollector(bufferSize int, lg *logger.Logger) *Collector {
	return &Collector{
		eventCh: make(chan MetricEvent, bufferSize),
		metrics: NewMetrics(),
		logger:  lg,
	}
}

func (c *Collector) EventChannel() chan<- MetricEvent {
	return c.eventCh
}

// TryEmit enqueues an event without blocking. It reports false when the
// buffer is full and the event was discarded.
func (c *Collector) TryEmit(event MetricEvent) bool {
	select {
	case c.eventCh <- event:
		return true
	default:
		return false
	}
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			// Drain remaining events before shutdown
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event MetricEvent) {
	switch event.Type {
	case EventRecordEmitted:
		c.metrics.RecordEmission(event.Logger, event.Level)

	case EventRecordDropped:
		c.metrics.RecordDrop(event.Logger)

	case EventSinkAttached:
		c.metrics.RecordSink()

	case EventChildAdded:
		c.metrics.RecordChild()
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot(root string) Snapshot {
	return c.metrics.Snapshot(root)
}
