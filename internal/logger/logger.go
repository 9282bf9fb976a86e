// Package logger provides structured logging using Zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global logger. "production" selects the JSON encoder; every
// other environment gets the console encoder. An unparsable level keeps the
// environment default.
func Init(env string, level ...string) {
	once.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		if env == "production" {
			cfg = zap.NewProductionConfig()
		}
		if len(level) > 0 && level[0] != "" {
			if lvl, err := zapcore.ParseLevel(level[0]); err == nil {
				cfg.Level = zap.NewAtomicLevelAt(lvl)
			}
		}

		base, err := cfg.Build()
		if err != nil {
			base = zap.NewNop()
		}
		sugar = base.Sugar()
	})
}

// Get returns the global sugared logger, initializing a development logger on
// first use.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Named returns a child logger tagged with the given component name.
func Named(component string) *zap.SugaredLogger {
	return Get().Named(component)
}

// Sync flushes buffered entries.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
