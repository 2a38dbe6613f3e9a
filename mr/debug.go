package mr

import (
	"io"
	"log"
	"sync"
)

// LogWriters holds the io.Writers for each diagnostics stream.
type LogWriters struct {
	// Ops receives warnings and lifecycle events
	Ops io.Writer
	// Diag receives informational events: units in use, probe counts per motion class
	Diag io.Writer
}

var (
	logMu      sync.RWMutex
	opsLogger  *log.Logger
	diagLogger *log.Logger
)

// SetLogWriters configures both streams at once.
// Pass nil for any writer to disable that stream. Both streams are disabled by default.
func SetLogWriters(w LogWriters) {
	logMu.Lock()
	defer logMu.Unlock()
	opsLogger = newLogger("[mr] ", w.Ops)
	diagLogger = newLogger("[mr] ", w.Diag)
}

func newLogger(prefix string, w io.Writer) *log.Logger {
	if w == nil {
		return nil
	}
	return log.New(w, prefix, log.LstdFlags|log.Lmicroseconds)
}

// Opsf logs to the ops stream
func Opsf(format string, args ...interface{}) {
	logMu.RLock()
	l := opsLogger
	logMu.RUnlock()
	if l != nil {
		l.Printf(format, args...)
	}
}

// Diagf logs to the diag stream
func Diagf(format string, args ...interface{}) {
	logMu.RLock()
	l := diagLogger
	logMu.RUnlock()
	if l != nil {
		l.Printf(format, args...)
	}
}
