package logger

import (
	"log/slog"
	"strings"
	"sync"
)

// Registry owns the mapping from dotted logger names to Logger handles.
// Lookups are deduplicated: Get returns the same handle for the same name
// for the lifetime of the registry. Handles are never evicted.
type Registry struct {
	mutex        sync.Mutex
	loggers      map[string]*Logger
	defaultLevel slog.Level
}

func NewRegistry() *Registry {
	return &Registry{
		loggers:      make(map[string]*Logger),
		defaultLevel: slog.LevelDebug,
	}
}

// Get returns the logger registered under name, creating it on first use.
func (r *Registry) Get(name string) *Logger {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if l, ok := r.loggers[name]; ok {
		return l
	}

	l := &Logger{name: name, registry: r}
	r.loggers[name] = l

	return l
}

// Len reports how many distinct logger names have been looked up.
func (r *Registry) Len() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.loggers)
}

// Names returns the registered logger names in no particular order.
func (r *Registry) Names() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}

	return names
}

// lookup returns the logger registered under name without creating it.
func (r *Registry) lookup(name string) *Logger {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.loggers[name]
}

// ancestors returns the registered loggers above name in the dotted
// hierarchy, nearest first. Names that were never looked up have no
// handle and are skipped.
func (r *Registry) ancestors(name string) []*Logger {
	var chain []*Logger

	for {
		i := strings.LastIndex(name, ".")
		if i < 0 {
			return chain
		}
		name = name[:i]
		if l := r.lookup(name); l != nil {
			chain = append(chain, l)
		}
	}
}
