package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// timestampLayout matches the classic "asctime" rendering with
// comma-separated milliseconds.
const timestampLayout = "2006-01-02 15:04:05,000"

// LineHandler is a slog.Handler that writes one fixed-format line per record:
//
//	<timestamp> - <logger-name> - <level> - <message>
//
// Extra record attributes are not rendered; they stay on the record for
// custom handlers. Writes are serialized with a mutex shared across
// WithAttrs/WithGroup derivatives.
type LineHandler struct {
	mutex *sync.Mutex
	out   io.Writer
	attrs []slog.Attr
}

func NewLineHandler(out io.Writer) *LineHandler {
	return &LineHandler{
		mutex: &sync.Mutex{},
		out:   out,
	}
}

// NewConsoleHandler returns a LineHandler writing to standard error.
func NewConsoleHandler() *LineHandler {
	return NewLineHandler(os.Stderr)
}

// NewFileHandler returns a LineHandler appending to the named file, creating
// it if absent. The file handle stays open for the life of the process.
func NewFileHandler(path string) (*LineHandler, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	return NewLineHandler(f), nil
}

// Enabled always reports true: severity gating happens at the Logger.
func (h *LineHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *LineHandler) Handle(_ context.Context, rec slog.Record) error {
	name := ""
	rec.Attrs(func(a slog.Attr) bool {
		if a.Key == "logger" {
			name = a.Value.String()
			return false
		}
		return true
	})

	line := fmt.Sprintf("%s - %s - %s - %s\n",
		rec.Time.Format(timestampLayout), name, rec.Level.String(), rec.Message)

	h.mutex.Lock()
	defer h.mutex.Unlock()

	_, err := io.WriteString(h.out, line)
	return err
}

func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)

	return &clone
}

func (h *LineHandler) WithGroup(_ string) slog.Handler {
	return h
}
