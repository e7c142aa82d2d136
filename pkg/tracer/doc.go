// Package tracer provides a toggleable diagnostic-tracing facility on top of
// the pkg/logger backend.
//
// A Tracer holds a process-visible enabled flag, a root logger name and a
// logger registry. Setup configures the root logger with console (and
// optionally file) sinks; AddChildLog derives dotted child loggers;
// TraceCalls and TraceExceptions wrap functions with call/return and error
// logging; Message emits ad-hoc diagnostics gated on the flag.
//
// Example usage:
//
//	t := tracer.New(tracer.WithRootName("myapp"))
//	root, err := t.Setup("myapp.log", slog.LevelDebug)
//	if err != nil { ... }
//
//	_, worker, _ := t.AddChildLog("worker")
//	worker.Info("worker ready")
//
//	traced := t.TraceCalls("myapp.worker")(process)
//	result, err := traced(job)
//
// The enabled flag is read at each call site, so toggling the tracer affects
// wrappers that were created earlier.
package tracer
