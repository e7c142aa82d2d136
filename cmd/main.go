package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/angeloszaimis/gotracer/config"
	"github.com/angeloszaimis/gotracer/internal/metrics"
	"github.com/angeloszaimis/gotracer/pkg/logger"
	"github.com/angeloszaimis/gotracer/pkg/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	level, err := logger.ParseLevel(cfg.Tracing.Level)
	if err != nil {
		slog.Error("failed to parse trace level", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reg := logger.NewRegistry()
	collector := metrics.NewCollector(cfg.Metrics.BufferSize, reg.Get(cfg.Tracing.RootName+".metrics"))

	t := tracer.New(
		tracer.WithRootName(cfg.Tracing.RootName),
		tracer.WithRegistry(reg),
		tracer.WithCollector(collector),
	)

	root, err := t.Setup(cfg.Tracing.LogFile, level)
	if err != nil {
		slog.Error("failed to set up tracing", slog.Any("err", err))
		os.Exit(1)
	}
	if !cfg.Tracing.Enabled {
		t.Disable()
	}

	collector.Start(ctx)

	if err := runDemo(t); err != nil {
		root.Errorf("demo run failed: %v", err)
	}

	cancel()
	time.Sleep(50 * time.Millisecond) // let the collector drain

	snap := collector.Snapshot(cfg.Tracing.RootName)
	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		slog.Error("failed to marshal metrics snapshot", slog.Any("err", err))
		os.Exit(1)
	}

	fmt.Println(string(out))
}

func runDemo(t *tracer.Tracer) error {
	workerName, worker, err := t.AddChildLog("worker")
	if err != nil {
		return err
	}
	worker.Info("worker logger ready")

	traced := t.TraceCallsNamed(workerName, "fibonacci")(fibonacci)
	result, err := traced(10)
	if err != nil {
		return err
	}

	guarded := t.TraceExceptionsNamed(workerName, "parseNumber")(parseNumber)
	if _, err := guarded("not-a-number"); err != nil {
		// demonstrates failure logging; the error is expected here
		t.Message("parse failed as expected: %v", err)
	}

	t.MessageWith(tracer.MessageOptions{
		Level:  slog.LevelWarn,
		Fields: map[string]any{"result": result},
	}, "demo finished")

	return nil
}

func fibonacci(args ...any) (any, error) {
	n, ok := args[0].(int)
	if !ok {
		return nil, fmt.Errorf("fibonacci: want int, got %T", args[0])
	}

	a, b := 0, 1
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}

	return a, nil
}

func parseNumber(args ...any) (any, error) {
	s, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("parseNumber: want string, got %T", args[0])
	}

	return strconv.Atoi(s)
}
