package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"docx-recovery/internal/domain"

	"github.com/rs/zerolog"
)

// Options controls how a logger is built
type Options struct {
	Level  string
	Format string // "json" or "pretty"
	Output io.Writer
}

// AppLogger implements the domain.Logger interface on top of zerolog
type AppLogger struct {
	logger zerolog.Logger
}

// NewLogger creates a new logger instance
func NewLogger(levelStr string) domain.Logger {
	return NewLoggerWithOptions(Options{Level: levelStr})
}

// NewLoggerWithOptions creates a logger with an explicit format and output
func NewLoggerWithOptions(opts Options) domain.Logger {
	var output io.Writer = os.Stdout
	if opts.Output != nil {
		output = opts.Output
	}
	if strings.EqualFold(opts.Format, "pretty") {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.DateTime,
		}
	}

	logger := zerolog.New(output).
		Level(parseLogLevel(opts.Level)).
		With().
		Timestamp().
		Logger()

	return &AppLogger{logger: logger}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	withFields(l.logger.Info(), fields).Msg(msg)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	withFields(l.logger.Error().Err(err), fields).Msg(msg)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	withFields(l.logger.Debug(), fields).Msg(msg)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	withFields(l.logger.Warn(), fields).Msg(msg)
}

// withFields attaches key-value pairs; a trailing key without a value is dropped.
func withFields(e *zerolog.Event, fields []interface{}) *zerolog.Event {
	if len(fields) < 2 {
		return e
	}
	return e.Fields(fields[:len(fields)-len(fields)%2])
}

// parseLogLevel converts string log level to a zerolog level
func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
