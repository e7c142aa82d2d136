package metrics

import (
	"log/slog"
	"sync"
	"time"
)

type Metrics struct {
	mutex     sync.RWMutex
	emitted   map[string]int64
	dropped   map[string]int64
	byLevel   map[slog.Level]int64
	sinks     int64
	children  int64
	startTime time.Time
}

type Snapshot struct {
	TotalEmitted int64                    `json:"total_emitted"`
	TotalDropped int64                    `json:"total_dropped"`
	Sinks        int64                    `json:"sinks"`
	Children     int64                    `json:"children"`
	Uptime       time.Duration            `json:"uptime"`
	Root         string                   `json:"root"`
	ByLevel      map[string]int64         `json:"by_level"`
	Loggers      map[string]LoggerMetrics `json:"loggers"`
}

type LoggerMetrics struct {
	Emitted int64 `json:"emitted"`
	Dropped int64 `json:"dropped"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		emitted:   make(map[string]int64),
		dropped:   make(map[string]int64),
		byLevel:   make(map[slog.Level]int64),
		startTime: time.Now(),
	}
}

func (m *Metrics) RecordEmission(loggerName string, level slog.Level) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.emitted[loggerName]++
	m.byLevel[level]++
}

func (m *Metrics) RecordDrop(loggerName string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.dropped[loggerName]++
}

func (m *Metrics) RecordSink() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sinks++
}

func (m *Metrics) RecordChild() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.children++
}

func (m *Metrics) Snapshot(root string) Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Sinks:    m.sinks,
		Children: m.children,
		Uptime:   time.Since(m.startTime),
		Root:     root,
		ByLevel:  make(map[string]int64),
		Loggers:  make(map[string]LoggerMetrics),
	}

	// Collect all logger names seen on either counter
	allLoggers := make(map[string]bool)
	for name := range m.emitted {
		allLoggers[name] = true
	}
	for name := range m.dropped {
		allLoggers[name] = true
	}

	for name := range allLoggers {
		snap.TotalEmitted += m.emitted[name]
		snap.TotalDropped += m.dropped[name]

		snap.Loggers[name] = LoggerMetrics{
			Emitted: m.emitted[name],
			Dropped: m.dropped[name],
		}
	}

	for level, count := range m.byLevel {
		snap.ByLevel[level.String()] = count
	}

	return snap
}
