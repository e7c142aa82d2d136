package metrics_test

import (
	"context"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/gotracer/internal/metrics"
	"github.com/angeloszaimis/gotracer/pkg/logger"
)

var _ = Describe("Collector", func() {
	var (
		collector *metrics.Collector
		lg        *logger.Logger
		ctx       context.Context
		cancel    context.CancelFunc
	)

	BeforeEach(func() {
		reg := logger.NewRegistry()
		lg = reg.Get("test.metrics")
		lg.SetLevel(slog.LevelError) // Suppress logs in tests
		ctx, cancel = context.WithCancel(context.Background())
		collector = metrics.NewCollector(100, lg)
	})

	AfterEach(func() {
		cancel()
		time.Sleep(10 * time.Millisecond) // Allow goroutine to finish
	})

	Describe("NewCollector", func() {
		It("should create a collector with specified buffer size", func() {
			c := metrics.NewCollector(500, lg)
			Expect(c).NotTo(BeNil())
		})
	})

	Describe("EventChannel", func() {
		It("should return a write-only channel", func() {
			Expect(collector.EventChannel()).NotTo(BeNil())
		})
	})

	Describe("Start and event processing", func() {
		It("should process EventRecordEmitted", func() {
			collector.Start(ctx)

			collector.EventChannel() <- metrics.MetricEvent{
				Type:      metrics.EventRecordEmitted,
				Timestamp: time.Now(),
				Logger:    "gotracer.worker",
				Level:     slog.LevelDebug,
			}

			Eventually(func() int64 {
				return collector.Snapshot("gotracer").TotalEmitted
			}).Should(Equal(int64(1)))
		})

		It("should process EventRecordDropped", func() {
			collector.Start(ctx)

			collector.EventChannel() <- metrics.MetricEvent{
				Type:      metrics.EventRecordDropped,
				Timestamp: time.Now(),
				Logger:    "gotracer.worker",
			}

			Eventually(func() int64 {
				return collector.Snapshot("gotracer").TotalDropped
			}).Should(Equal(int64(1)))
		})

		It("should process EventSinkAttached and EventChildAdded", func() {
			collector.Start(ctx)

			collector.EventChannel() <- metrics.MetricEvent{
				Type:      metrics.EventSinkAttached,
				Timestamp: time.Now(),
				Logger:    "gotracer",
			}
			collector.EventChannel() <- metrics.MetricEvent{
				Type:      metrics.EventChildAdded,
				Timestamp: time.Now(),
				Logger:    "gotracer.worker",
			}

			Eventually(func() int64 {
				return collector.Snapshot("gotracer").Sinks
			}).Should(Equal(int64(1)))
			Eventually(func() int64 {
				return collector.Snapshot("gotracer").Children
			}).Should(Equal(int64(1)))
		})
	})

	Describe("TryEmit", func() {
		It("should enqueue when the buffer has room", func() {
			ok := collector.TryEmit(metrics.MetricEvent{
				Type:      metrics.EventRecordEmitted,
				Timestamp: time.Now(),
				Logger:    "gotracer",
				Level:     slog.LevelInfo,
			})
			Expect(ok).To(BeTrue())
		})

		It("should drop instead of blocking when the buffer is full", func() {
			tiny := metrics.NewCollector(1, lg)

			first := tiny.TryEmit(metrics.MetricEvent{Type: metrics.EventRecordEmitted, Logger: "a"})
			second := tiny.TryEmit(metrics.MetricEvent{Type: metrics.EventRecordEmitted, Logger: "b"})

			Expect(first).To(BeTrue())
			Expect(second).To(BeFalse())
		})
	})

	Describe("shutdown", func() {
		It("should drain buffered events on cancel", func() {
			for i := 0; i < 10; i++ {
				collector.TryEmit(metrics.MetricEvent{
					Type:      metrics.EventRecordEmitted,
					Timestamp: time.Now(),
					Logger:    "gotracer",
					Level:     slog.LevelDebug,
				})
			}

			collector.Start(ctx)
			cancel()

			Eventually(func() int64 {
				return collector.Snapshot("gotracer").TotalEmitted
			}).Should(Equal(int64(10)))
		})
	})
})
