// Package metrics provides emission accounting for the tracing facility.
//
// It uses a channel-based event pipeline to asynchronously count:
//   - Records emitted per logger name and per severity level
//   - Records dropped by the severity gate
//   - Sinks attached over the process lifetime
//   - Child loggers created
//
// The collector runs in a dedicated goroutine and processes events without
// blocking the log path. Events are enqueued with TryEmit, which discards
// rather than blocks when the buffer is full.
//
// Example usage:
//
//	collector := metrics.NewCollector(256, lg)
//	collector.Start(ctx)
//
//	collector.TryEmit(metrics.MetricEvent{
//		Type:      metrics.EventRecordEmitted,
//		Timestamp: time.Now(),
//		Logger:    "gotracer.worker",
//		Level:     slog.LevelDebug,
//	})
//
//	snapshot := collector.Snapshot("gotracer")
//
// The package provides thread-safe counter storage using sync.RWMutex and
// supports graceful shutdown with event draining to prevent data loss.
package metrics
