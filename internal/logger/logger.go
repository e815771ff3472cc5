// Package logger provides structured logging using Zap.
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envProduction = "production"
	envTest       = "test"
)

var (
	mu    sync.RWMutex
	sugar *zap.SugaredLogger
)

// Init replaces the global logger with one built for env.
//
// Production logs JSON at info level with ISO 8601 timestamps. The test
// environment discards everything. Any other environment gets a colored
// console logger at debug level. A non-empty level ("debug", "warn", ...)
// overrides the environment's default.
func Init(env, level string) error {
	if env == envTest && level == "" {
		set(zap.NewNop().Sugar())
		return nil
	}

	cfg := configFor(env)
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level.SetLevel(lvl)
	}

	base, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	set(base.Sugar())
	return nil
}

func configFor(env string) zap.Config {
	if env == envProduction {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.InitialFields = map[string]interface{}{"service": "wealthtracker"}
		return cfg
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

func set(l *zap.SugaredLogger) {
	mu.Lock()
	old := sugar
	sugar = l
	mu.Unlock()
	if old != nil {
		_ = old.Sync()
	}
}

// Get returns the global sugared logger.
// If Init has not been called, it returns a development logger.
func Get() *zap.SugaredLogger {
	mu.RLock()
	l := sugar
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if sugar == nil {
		base, err := configFor("development").Build()
		if err != nil {
			base = zap.NewNop()
		}
		sugar = base.Sugar()
	}
	return sugar
}

// Named returns a child of the global logger tagged with a component name.
func Named(component string) *zap.SugaredLogger {
	return Get().Named(component)
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	mu.RLock()
	l := sugar
	mu.RUnlock()
	if l != nil {
		_ = l.Sync()
	}
}
