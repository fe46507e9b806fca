// Package logger builds the process zap logger.
package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported output formats.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

type Config struct {
	Format string
	Level  zapcore.Level
}

// NewConfig returns a new instance of Config with defaults.
func NewConfig() Config {
	return Config{
		Format: FormatAuto,
		Level:  zapcore.InfoLevel,
	}
}

// ParseConfig builds a Config from textual format and level values.
func ParseConfig(format, level string) (Config, error) {
	c := NewConfig()
	if f := strings.ToLower(strings.TrimSpace(format)); f != "" {
		c.Format = f
	}
	if l := strings.TrimSpace(level); l != "" {
		parsed, err := zapcore.ParseLevel(l)
		if err != nil {
			return Config{}, fmt.Errorf("logger: %w", err)
		}
		c.Level = parsed
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch c.Format {
	case FormatAuto, FormatConsole, FormatJSON:
		return nil
	default:
		return fmt.Errorf("logger: unknown format %q", c.Format)
	}
}

// New returns a logger writing to w with the configured encoder and level.
func (c Config) New(w io.Writer) (*zap.Logger, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	encoder := zapcore.NewConsoleEncoder(encoderConfig())
	if c.Format == FormatJSON {
		encoder = zapcore.NewJSONEncoder(encoderConfig())
	}
	return zap.New(zapcore.NewCore(
		encoder,
		zapcore.Lock(zapcore.AddSync(w)),
		c.Level,
	)), nil
}

// New returns a debug-level console logger writing to w.
func New(w io.Writer) *zap.Logger {
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		zapcore.DebugLevel,
	))
}

func encoderConfig() zapcore.EncoderConfig {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = func(ts time.Time, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(ts.UTC().Format(time.RFC3339))
	}
	config.EncodeDuration = func(d time.Duration, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(d.String())
	}
	return config
}
