package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op logger until Init runs.
var Log = zap.NewNop()

var once sync.Once

// Init builds the global logger. Only the first call has any effect.
func Init(level string, development bool) error {
	var err error
	once.Do(func() {
		var lvl zapcore.Level
		if err = lvl.UnmarshalText([]byte(level)); err != nil {
			err = fmt.Errorf("invalid log level %q: %w", level, err)
			return
		}

		cfg := zap.NewProductionConfig()
		if development {
			cfg = zap.NewDevelopmentConfig()
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)

		var l *zap.Logger
		l, err = cfg.Build()
		if err != nil {
			return
		}
		Log = l
	})
	return err
}

// UseNop swaps in a discarding logger, mostly for tests.
func UseNop() {
	Log = zap.NewNop()
}

// Sync flushes buffered entries.
func Sync() {
	_ = Log.Sync()
}
