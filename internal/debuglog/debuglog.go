// ABOUTME: File-backed zerolog logger for the TUI and CLI
// ABOUTME: Keeps the terminal clean by writing structured logs to the config dir

package debuglog

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.Mutex
	logger  zerolog.Logger
	logFile *os.File
	enabled bool
)

// Init opens <configDir>/debug.log and routes all log output there.
// If configDir is empty, logging is disabled.
func Init(configDir, level string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		enabled = false
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		enabled = false
		return err
	}

	logPath := filepath.Join(configDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		enabled = false
		return err
	}

	logFile = f
	logger = zerolog.New(f).Level(parseLevel(level)).With().Timestamp().Logger()
	enabled = true
	return nil
}

// Close closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	enabled = false
}

// Log writes an info-level message.
func Log(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Info().Msgf(format, args...)
}

// Error logs an error with context. A nil error is ignored.
func Error(context string, err error) {
	if err == nil {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Error().Str("context", context).Err(err).Send()
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.Warn().Msgf(format, args...)
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
