// Package corelog provides subsystem-tagged diagnostic logging for the
// emulator core. It follows the teacher's convention of writing
// fmt.Fprintf-style lines to stderr prefixed with the originating
// subsystem rather than pulling in a structured logging library.
package corelog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Logger writes tagged diagnostic lines for one subsystem.
type Logger struct {
	tag     string
	out     io.Writer
	mu      *sync.Mutex
	enabled *atomic.Bool
}

var globalMu sync.Mutex

var (
	registryMu sync.Mutex
	registry   []*Logger
)

// New returns a Logger tagged with subsystem, writing to stderr.
// Loggers are disabled by default; the driver enables the ones named on
// the command line via Enable. Every Logger created by New registers
// itself so the driver can enumerate and enable subsystems by name
// without importing each owning package's logger variable directly.
func New(subsystem string) *Logger {
	var enabled atomic.Bool
	l := &Logger{
		tag:     subsystem,
		out:     os.Stderr,
		mu:      &globalMu,
		enabled: &enabled,
	}
	registryMu.Lock()
	registry = append(registry, l)
	registryMu.Unlock()
	return l
}

// All returns every Logger created so far, for the driver's -debug flag
// to enable by subsystem name.
func All() []*Logger {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]*Logger, len(registry))
	copy(out, registry)
	return out
}

// Enable turns on output for this logger.
func (l *Logger) Enable() { l.enabled.Store(true) }

// Tag returns the subsystem name this logger was created with.
func (l *Logger) Tag() string { return l.tag }

// Enabled reports whether this logger currently emits output.
func (l *Logger) Enabled() bool { return l.enabled.Load() }

// Printf writes a tagged line if the logger is enabled.
func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled.Load() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s: %s\n", l.tag, fmt.Sprintf(format, args...))
}

// Warn writes a tagged line regardless of the enabled flag. Reserved for
// anomalies that §7 documents as "absorbed... logged" rather than
// surfaced as errors (buffer drift, invalid VIC mode, unsupported mapper).
func (l *Logger) Warn(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s: warning: %s\n", l.tag, fmt.Sprintf(format, args...))
}
