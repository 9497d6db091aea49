// Package logging adapts zerolog to the mdmapi.Logger interface.
package logging

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/cmdmnt/mdm-client/pkg/mdmapi"
)

// Logger implements mdmapi.Logger on top of zerolog.
type Logger struct {
	log zerolog.Logger
}

// New creates a logger writing structured JSON to w at the given level.
func New(w io.Writer, level zerolog.Level) *Logger {
	return &Logger{
		log: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

// Wrap adapts an existing zerolog logger.
func Wrap(log zerolog.Logger) *Logger {
	return &Logger{log: log}
}

// Debug implements mdmapi.Logger.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug().Fields(fields).Msg(msg)
}

// Info implements mdmapi.Logger.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log.Info().Fields(fields).Msg(msg)
}

// Warn implements mdmapi.Logger.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn().Fields(fields).Msg(msg)
}

// Error implements mdmapi.Logger.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.log.Error().Fields(fields).Msg(msg)
}

var _ mdmapi.Logger = (*Logger)(nil)
