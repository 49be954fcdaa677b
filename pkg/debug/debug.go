// Package debug provides conditional debug logging for academy.
//
// Debug logging is enabled by setting the ACADEMY_DEBUG environment variable:
//
//	ACADEMY_DEBUG=1 academy
//
// Messages go to stderr unless ACADEMY_DEBUG_FILE (or SetOutput) points them
// at a file, which is the useful setting while the TUI owns the terminal.
// When disabled (default), all debug functions are no-ops.
//
// Usage:
//
//	debug.Log("loaded %d lessons", n)
//	defer debug.LogEnterExit("reloadCatalog")()
package debug

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	enabled bool
	output  = "stderr"
	logger  *zap.SugaredLogger
)

func init() {
	if path := os.Getenv("ACADEMY_DEBUG_FILE"); path != "" {
		output = path
	}
	if os.Getenv("ACADEMY_DEBUG") != "" {
		SetEnabled(true)
	}
}

func build(path string) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000")
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar().Named("academy"), nil
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = e
	if e && logger == nil {
		l, err := build(output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "debug: cannot open %s: %v\n", output, err)
			enabled = false
			return
		}
		logger = l
	}
}

// SetOutput redirects debug output to path ("stderr" and "stdout" are
// accepted). An active logger is rebuilt against the new sink.
func SetOutput(path string) error {
	if path == "" {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()
	output = path
	if logger == nil {
		return nil
	}
	l, err := build(path)
	if err != nil {
		return fmt.Errorf("debug output %s: %w", path, err)
	}
	_ = logger.Sync()
	logger = l
	return nil
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return nil
	}
	return logger
}

// Log writes a printf-style debug message if debug logging is enabled.
func Log(format string, args ...any) {
	if l := current(); l != nil {
		l.Debugf(format, args...)
	}
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if l := current(); l != nil {
		l.Debugw("timing", "op", name, "took", d)
	}
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	Log(format, args...)
}

// LogEnterExit logs function entry and exit with timing.
//
//	defer debug.LogEnterExit("reload")()
func LogEnterExit(name string) func() {
	l := current()
	if l == nil {
		return func() {}
	}
	l.Debugf("-> %s", name)
	start := time.Now()
	return func() {
		l.Debugf("<- %s (%v)", name, time.Since(start))
	}
}

// Sync flushes buffered log entries. Call before exit.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if logger != nil {
		_ = logger.Sync()
	}
}
