// Package logging provides the shared zap logger for finnadmin, with
// named child loggers per subsystem. The interactive TUI owns the
// terminal, so logs go to a file under the user config dir rather than
// stderr; non-interactive commands may opt into console output.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a subsystem logger.
type Category string

const (
	CategoryGateway Category = "gateway"
	CategoryWizard  Category = "wizard"
	CategoryMenu    Category = "menu"
	CategoryConfig  Category = "config"
	CategoryUI      Category = "ui"
)

var (
	mu   sync.RWMutex
	root = zap.NewNop()
)

// Options controls logger construction.
type Options struct {
	// Verbose lowers the level to debug.
	Verbose bool
	// Console writes to stderr instead of the log file. Never set when
	// the TUI is running.
	Console bool
	// Dir overrides the log directory (defaults next to the user config).
	Dir string
}

// Initialize builds the process logger. Safe to call once at startup;
// before it runs every logger is a nop.
func Initialize(opts Options) error {
	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	var logger *zap.Logger
	var err error

	if opts.Console {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		logger, err = cfg.Build()
	} else {
		dir := opts.Dir
		if dir == "" {
			home, herr := os.UserHomeDir()
			if herr != nil {
				return fmt.Errorf("resolve home dir: %w", herr)
			}
			dir = filepath.Join(home, ".finnadmin", "logs")
		}
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return fmt.Errorf("create log dir: %w", mkErr)
		}
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.OutputPaths = []string{filepath.Join(dir, "finnadmin.log")}
		cfg.ErrorOutputPaths = cfg.OutputPaths
		logger, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	mu.Lock()
	root = logger
	mu.Unlock()
	return nil
}

// L returns the named logger for a category.
func L(cat Category) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(string(cat))
}

// Sync flushes buffered entries. Called from the command teardown path.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}

// SetLogger replaces the root logger. Tests use it to capture output.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	root = l
}
