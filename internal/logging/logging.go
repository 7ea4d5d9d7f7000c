// Package logging builds the zap logger used across the CLI
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the log level and destination
type Options struct {
	// Level is a zap level name: debug, info, warn, error
	Level string

	// Output is a file path, "stderr" or "stdout"
	Output string

	// Debug forces the debug level regardless of Level
	Debug bool
}

// New creates a production-configured logger.
// Logs default to stderr so they never mix with the statistics on stdout.
func New(opts Options) (*zap.Logger, zap.AtomicLevel, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}
	if opts.Debug {
		level = zapcore.DebugLevel
	}
	logLevel := zap.NewAtomicLevelAt(level)

	output := opts.Output
	if output == "" {
		output = "stderr"
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{output}
	loggerConfig.ErrorOutputPaths = []string{"stderr"}
	loggerConfig.DisableStacktrace = !opts.Debug

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("failed to build logger: %w", err)
	}

	return logger, logLevel, nil
}

// ParseLevel converts a level name into a zap level; empty means warn
func ParseLevel(name string) (zapcore.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zapcore.WarnLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return zapcore.WarnLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
