// Package logger writes structured logs to a file. The terminal belongs to
// the animation, so nothing is ever logged to stdout or stderr.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// DefaultLogPath is used when Init is never called.
const DefaultLogPath = "/tmp/sortvis-debug.log"

var (
	slogLogger *slog.Logger
	levelVar   = new(slog.LevelVar)
	logFile    *os.File
	mu         sync.Mutex
	initDone   bool
	debug      bool
)

// SetDebug enables debug level logging
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debug = enabled
	levelVar.Set(level())
}

func level() slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Init opens path for appending and routes all loggers to it. Calling Init
// again after a successful call is a no-op until Reset.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}
	return open(path)
}

func open(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logFile = f
	levelVar.Set(level())
	slogLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	initDone = true

	slogLogger.Info("Logger initialized", "path", path)
	return nil
}

func ensureInit() {
	if initDone {
		return
	}
	if err := open(DefaultLogPath); err != nil {
		// Logging is discarded; do not retry on every call.
		initDone = true
	}
}

// Close closes the log file. Loggers handed out before Close stop writing;
// a later Init opens a new file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	slogLogger = nil
	initDone = false
}

// Reset resets the logger state, allowing reinitialization.
// This is primarily for testing purposes.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	initDone = false
	debug = false
	slogLogger = nil
	levelVar = new(slog.LevelVar)
}

// ComponentLogger returns a slog.Logger with the component attribute pre-attached.
//
//	log := logger.ComponentLogger("render")
//	log.Info("loop exited", "frames", n)
func ComponentLogger(component string) *slog.Logger {
	return with(slog.String("component", component))
}

// WithRun returns a slog.Logger tagged with the run ID so the producer and the
// render loop of one invocation can be correlated.
func WithRun(runID string) *slog.Logger {
	return with(slog.String("run", runID))
}

func with(attr slog.Attr) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()
	if slogLogger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return slogLogger.With(attr)
}
