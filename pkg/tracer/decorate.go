package tracer

import (
	"log/slog"
	"reflect"
	"runtime"
	"strings"

	"github.com/angeloszaimis/gotracer/internal/metrics"
	"github.com/angeloszaimis/gotracer/pkg/logger"
)

// Fn is the function shape the decorators can wrap.
type Fn func(args ...any) (any, error)

// TraceCalls returns a wrapper factory that logs calls and returns through
// the named logger. The logger is resolved once, when TraceCalls itself is
// called. Each invocation of a wrapped function captures the enabled flag at
// call start; that captured value governs both the pre-call and the return
// log point, so toggling tracing mid-call has no effect on the current
// invocation. Error returns propagate unmodified and skip the return log.
func (t *Tracer) TraceCalls(loggerName string) func(Fn) Fn {
	lg := t.registry.Get(loggerName)

	return func(fn Fn) Fn {
		return t.traceCalls(lg, funcName(fn), fn)
	}
}

// TraceCallsNamed is TraceCalls with an explicit function name, for wrapping
// closures whose runtime name is unhelpful.
func (t *Tracer) TraceCallsNamed(loggerName, fnName string) func(Fn) Fn {
	lg := t.registry.Get(loggerName)

	return func(fn Fn) Fn {
		return t.traceCalls(lg, fnName, fn)
	}
}

func (t *Tracer) traceCalls(lg *logger.Logger, name string, fn Fn) Fn {
	return func(args ...any) (any, error) {
		enabled := t.IsEnabled()

		if enabled {
			lg.Debugf("calling %s with args: %v", name, args)
			t.emit(metrics.EventRecordEmitted, lg.Name(), slog.LevelDebug)
		}

		result, err := fn(args...)
		if err != nil {
			return result, err
		}

		if enabled {
			lg.Debugf("%s returned: %v", name, result)
			t.emit(metrics.EventRecordEmitted, lg.Name(), slog.LevelDebug)
		}

		return result, nil
	}
}

// TraceExceptions returns a wrapper factory that logs failures through the
// named logger. The logger is resolved once, when TraceExceptions itself is
// called. A non-nil error is logged at error level and returned identical to
// the caller; a panic is logged and re-raised with the same value. Failure
// logging happens regardless of the enabled flag. Successful results pass
// through silently.
func (t *Tracer) TraceExceptions(loggerName string) func(Fn) Fn {
	lg := t.registry.Get(loggerName)

	return func(fn Fn) Fn {
		return t.traceExceptions(lg, funcName(fn), fn)
	}
}

// TraceExceptionsNamed is TraceExceptions with an explicit function name.
func (t *Tracer) TraceExceptionsNamed(loggerName, fnName string) func(Fn) Fn {
	lg := t.registry.Get(loggerName)

	return func(fn Fn) Fn {
		return t.traceExceptions(lg, fnName, fn)
	}
}

func (t *Tracer) traceExceptions(lg *logger.Logger, name string, fn Fn) Fn {
	return func(args ...any) (result any, err error) {
		defer func() {
			if r := recover(); r != nil {
				lg.Errorf("panic in %s: %v", name, r)
				t.emit(metrics.EventRecordEmitted, lg.Name(), slog.LevelError)
				panic(r)
			}
		}()

		result, err = fn(args...)
		if err != nil {
			lg.Errorf("error in %s: %v", name, err)
			t.emit(metrics.EventRecordEmitted, lg.Name(), slog.LevelError)
		}

		return result, err
	}
}

func funcName(fn Fn) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "func"
	}

	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	return name
}
