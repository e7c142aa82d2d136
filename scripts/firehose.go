// Firehose is a throughput measurement tool for the tracing facility. It
// spins up concurrent workers that push messages through a shared Tracer and
// reports emission rate and latency percentiles.
//
// Usage:
//
//	go run firehose.go -messages 100000 -workers 8
//	go run firehose.go -messages 50000 -logfile trace.log -level warn -out summary.json
//
// Features:
//   - Concurrent workers sharing one Tracer instance
//   - Per-worker child loggers exercising the dotted hierarchy
//   - Optional file sink; without one, lines go to a discard writer
//   - JSON summary with percentiles (p50, p90, p95, p99)
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/angeloszaimis/gotracer/pkg/logger"
	"github.com/angeloszaimis/gotracer/pkg/tracer"
)

func main() {
	var (
		messages  = flag.Int("messages", 100000, "Total number of messages to emit")
		workers   = flag.Int("workers", 8, "Number of concurrent workers")
		levelName = flag.String("level", "debug", "Severity to emit at (debug, info, warn, error)")
		logFile   = flag.String("logfile", "", "Append formatted lines to this file (optional)")
	)

	outJSON := flag.String("out", "", "Write JSON summary to this file (optional)")
	flag.Parse()

	level, err := logger.ParseLevel(*levelName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	t := tracer.New(tracer.WithRootName("firehose"))
	t.Enable()

	root := t.Registry().Get(t.RootName())
	if *logFile != "" {
		h, err := logger.NewFileHandler(*logFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		root.AddHandler(h)
	} else {
		root.AddHandler(logger.NewLineHandler(io.Discard))
	}

	perWorker := *messages / *workers

	var wg sync.WaitGroup
	latencies := make([][]time.Duration, *workers)

	start := time.Now()

	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()

			name, _, err := t.AddChildLog(fmt.Sprintf("worker-%d", w))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}

			lats := make([]time.Duration, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				begin := time.Now()
				t.MessageWith(tracer.MessageOptions{
					Logger: name,
					Level:  level,
					Fields: map[string]any{"seq": i},
				}, "message %d from worker %d", i, w)
				lats = append(lats, time.Since(begin))
			}
			latencies[w] = lats
		}(w)
	}

	wg.Wait()
	elapsed := time.Since(start)

	var all []time.Duration
	for _, lats := range latencies {
		all = append(all, lats...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	summary := struct {
		Messages   int           `json:"messages"`
		Workers    int           `json:"workers"`
		Level      string        `json:"level"`
		Elapsed    time.Duration `json:"elapsed_ns"`
		PerSecond  float64       `json:"per_second"`
		P50Latency time.Duration `json:"p50_ns"`
		P90Latency time.Duration `json:"p90_ns"`
		P95Latency time.Duration `json:"p95_ns"`
		P99Latency time.Duration `json:"p99_ns"`
	}{
		Messages:   len(all),
		Workers:    *workers,
		Level:      *levelName,
		Elapsed:    elapsed,
		PerSecond:  float64(len(all)) / elapsed.Seconds(),
		P50Latency: percentile(all, 0.50),
		P90Latency: percentile(all, 0.90),
		P95Latency: percentile(all, 0.95),
		P99Latency: percentile(all, 0.99),
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if *outJSON != "" {
		if err := os.WriteFile(*outJSON, out, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
