package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger = zap.NewNop()

// Init replaces Logger with one writing at the given level.
// format is "json" (production encoder) or "text" (console encoder).
func Init(level, format string) error {
	l, err := New(level, format)
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

// New builds a zap logger writing to stderr.
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "text", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}

	return cfg.Build()
}
