// Package logging provides structured logging using slog.
// Logs are written to $XDG_STATE_HOME/glass/tui.log in append mode, since the
// terminal itself is owned by the TUI.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const (
	// LogFileName is the name of the log file inside the state directory.
	LogFileName = "tui.log"
	// AppDir is the directory name used under the XDG base directories.
	AppDir = "glass"
)

var (
	// defaultLogger is the package-level logger.
	defaultLogger *slog.Logger
	// logFile is the file handle for the log file.
	logFile *os.File
	// logPath is where the current log file lives, empty when discarding.
	logPath string
	// mu protects concurrent access to the logger.
	mu sync.RWMutex
)

// DefaultDir returns the directory logs are written to.
// It honours XDG_STATE_HOME and falls back to ~/.local/state.
func DefaultDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", AppDir)
}

// Init initializes the logger writing to <dir>/tui.log in append mode.
// If dir is empty, or the file cannot be opened, logging is disabled (writes to io.Discard).
func Init(dir string, level slog.Level) error {
	mu.Lock()
	defer mu.Unlock()

	// Close any existing log file.
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logPath = ""

	var w io.Writer = io.Discard
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err == nil {
			path := filepath.Join(dir, LogFileName)
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				logFile = f
				logPath = path
				w = f
			}
		}
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	defaultLogger = slog.New(handler)

	return nil
}

// Path returns the path of the active log file, or "" when logging is discarded.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		logPath = ""
		return err
	}
	return nil
}

// Logger returns the default logger.
// If not initialized, returns a no-op logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	if defaultLogger == nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return defaultLogger
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs at warning level.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// DebugContext logs at debug level with context.
func DebugContext(ctx context.Context, msg string, args ...any) {
	Logger().DebugContext(ctx, msg, args...)
}

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}
