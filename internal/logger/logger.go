// Package logger sets up the zap logger of the command line tools.
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu          sync.Mutex
	global      *zap.Logger
	atomicLevel = zap.NewAtomicLevel()
)

// New builds a logger writing to stderr.
// level: debug, info, warn, error
// format: json or console
func New(level, format string) (*zap.Logger, zap.AtomicLevel, error) {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, lvl, fmt.Errorf("parse log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	case "json", "":
		cfg = zap.NewProductionConfig()
	default:
		return nil, lvl, fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	log, err := cfg.Build()
	if err != nil {
		return nil, lvl, fmt.Errorf("build logger: %w", err)
	}

	return log, lvl, nil
}

// Init replaces the global logger.
func Init(level, format string) error {
	log, lvl, err := New(level, format)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	global = log
	atomicLevel = lvl
	return nil
}

// SetLevel changes the level of the global logger.
func SetLevel(level string) error {
	mu.Lock()
	defer mu.Unlock()
	return atomicLevel.UnmarshalText([]byte(level))
}

// GetLevel returns the current level of the global logger.
func GetLevel() zapcore.Level {
	mu.Lock()
	defer mu.Unlock()
	return atomicLevel.Level()
}

// L returns the global logger. It discards everything until Init is called.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		return zap.NewNop()
	}
	return global
}

// Sync flushes buffered entries of the global logger.
func Sync() error {
	mu.Lock()
	log := global
	mu.Unlock()

	if log == nil {
		return nil
	}
	return log.Sync()
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	global = nil
	atomicLevel = zap.NewAtomicLevel()
}
