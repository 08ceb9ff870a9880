// Package debug provides the opt-in diagnostic logger for triage runs.
// Output always goes to stderr so stdout stays a clean JSON document.
package debug

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger.
type Options struct {
	Level   string // trace, debug, info, warn, error, disabled
	Writer  io.Writer
	Console bool // human-readable output instead of JSON lines
}

var (
	mu     sync.Mutex
	logger atomic.Pointer[zerolog.Logger]
)

// Init builds the process logger. Calling it again replaces the logger.
func Init(opt Options) {
	mu.Lock()
	defer mu.Unlock()

	var w io.Writer = os.Stderr
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	l := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp().Logger()
	logger.Store(&l)
}

// Get returns the process logger. Before Init it is disabled.
func Get() *zerolog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}

// Log writes a debug message.
func Log(format string, args ...any) {
	Get().Debug().Msgf(format, args...)
}

// Close disables logging again.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	logger.Store(nil)
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}
