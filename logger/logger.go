package logger

import (
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls the level of the logger built by New.
type Config struct {
	Level zapcore.Level `toml:"level"`
}

// NewConfig returns a new instance of Config with defaults.
func NewConfig() Config {
	return Config{
		Level: zapcore.InfoLevel,
	}
}

// New creates a console logger writing to w at the given level, with RFC3339
// UTC timestamps and human-readable durations.
func (c Config) New(w io.Writer) *zap.Logger {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = func(ts time.Time, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(ts.UTC().Format(time.RFC3339))
	}
	config.EncodeDuration = func(d time.Duration, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(d.String())
	}
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(config),
		zapcore.Lock(zapcore.AddSync(w)),
		c.Level,
	))
}

// New creates a debug-level console logger writing to w.
func New(w io.Writer) *zap.Logger {
	c := NewConfig()
	c.Level = zapcore.DebugLevel
	return c.New(w)
}
