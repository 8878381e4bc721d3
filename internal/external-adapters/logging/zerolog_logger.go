// Package logging adapts zerolog to the domain Logger contract.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/verhound/verhound/internal/domain/interfaces"
)

// ZerologLogger implements interfaces.Logger on top of zerolog.
type ZerologLogger struct {
	logger zerolog.Logger
}

// New creates a console logger writing to stderr. Debug mode lowers the
// level so every attempt of the pipeline becomes visible; otherwise only
// warnings and errors are emitted, keeping stdout clean for the report.
func New(debug bool) *ZerologLogger {
	return NewWithWriter(os.Stderr, debug)
}

// NewWithWriter creates a console logger writing to w.
func NewWithWriter(w io.Writer, debug bool) *ZerologLogger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &ZerologLogger{logger: logger}
}

// Debug logs debug-level messages
func (z *ZerologLogger) Debug(msg string, fields ...interfaces.Field) {
	z.emit(z.logger.Debug(), msg, fields)
}

// Info logs informational messages
func (z *ZerologLogger) Info(msg string, fields ...interfaces.Field) {
	z.emit(z.logger.Info(), msg, fields)
}

// Warn logs warning messages
func (z *ZerologLogger) Warn(msg string, fields ...interfaces.Field) {
	z.emit(z.logger.Warn(), msg, fields)
}

// Error logs error messages
func (z *ZerologLogger) Error(msg string, fields ...interfaces.Field) {
	z.emit(z.logger.Error(), msg, fields)
}

func (z *ZerologLogger) emit(event *zerolog.Event, msg string, fields []interfaces.Field) {
	for _, f := range fields {
		event = event.Interface(f.Key, f.Value)
	}
	event.Msg(msg)
}

var _ interfaces.Logger = (*ZerologLogger)(nil)
