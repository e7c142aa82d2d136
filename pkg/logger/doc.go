// Package logger provides a named, hierarchical logging backend built on
// log/slog. Loggers are identified by dotted names (e.g. "gotracer.worker")
// and are deduplicated by a Registry: repeated lookups of the same name
// return the same handle.
//
// A Logger carries an optional severity threshold and a list of slog.Handler
// sinks. When a record is emitted, the severity gate is applied at the logger
// the call was made on (using its own level, or the nearest dotted ancestor's
// when it has none), and the record is then delivered to the handlers of the
// logger and of every dotted ancestor. This mirrors the propagation model of
// classic hierarchical logging facilities.
//
// The package also ships a fixed-format LineHandler that renders records as
//
//	<timestamp> - <logger-name> - <level> - <message>
//
// with console and append-mode file constructors.
package logger
