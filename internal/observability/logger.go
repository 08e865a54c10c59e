// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package observability provides structured logging and run metrics for
// ads-parser. Loggers are zerolog; metrics live in a private Prometheus
// registry that can be written to a node-exporter textfile after a run.
package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LoggingConfig contains logger configuration options.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console, pretty).
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Output is the output destination (stdout, stderr).
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// AddSource adds source file and line number to log entries.
	AddSource bool `json:"add_source" yaml:"add_source" mapstructure:"add_source"`

	// TimeFormat is the time format for timestamps.
	TimeFormat string `json:"time_format" yaml:"time_format" mapstructure:"time_format"`

	// Writer overrides Output when set.
	Writer io.Writer `json:"-" yaml:"-" mapstructure:"-"`
}

// DefaultLoggingConfig logs at info level to stderr in console format, so
// stdout stays free for command output.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:      "info",
		Format:     "console",
		Output:     "stderr",
		TimeFormat: time.RFC3339,
	}
}

// NewLogger creates a zerolog logger from configuration.
func NewLogger(cfg LoggingConfig) zerolog.Logger {
	output := cfg.Writer
	if output == nil {
		switch strings.ToLower(cfg.Output) {
		case "stdout":
			output = os.Stdout
		default:
			output = os.Stderr
		}
	}

	if cfg.TimeFormat != "" {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	} else {
		zerolog.TimeFieldFormat = time.RFC3339
	}

	switch strings.ToLower(cfg.Format) {
	case "console", "pretty":
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: zerolog.TimeFieldFormat,
			NoColor:    cfg.Writer != nil,
		}
	}

	ctx := zerolog.New(output).With().Timestamp()
	if cfg.AddSource {
		ctx = ctx.Caller()
	}
	return ctx.Logger().Level(ParseLevel(cfg.Level))
}

// ParseLevel converts a string log level to zerolog.Level. Unknown values
// map to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// WithRunContext tags a logger with the run id and pipeline name.
func WithRunContext(logger zerolog.Logger, runID, pipeline string) zerolog.Logger {
	return logger.With().
		Str("run_id", runID).
		Str("pipeline", pipeline).
		Logger()
}

// WithBatchContext tags a logger with the batch position.
func WithBatchContext(logger zerolog.Logger, batch, batches, size int) zerolog.Logger {
	return logger.With().
		Int("batch", batch).
		Int("batches", batches).
		Int("batch_size", size).
		Logger()
}
