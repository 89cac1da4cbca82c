package logging

import (
	"context"

	"github.com/pireader/provision/internal/ports"
)

// NopLogger discards all log entries. Useful in tests.
type NopLogger struct{}

// NewNopLogger creates a NopLogger.
func NewNopLogger() *NopLogger {
	return &NopLogger{}
}

// Debug discards the message.
func (l *NopLogger) Debug(context.Context, string, ...ports.Field) {}

// Info discards the message.
func (l *NopLogger) Info(context.Context, string, ...ports.Field) {}

// Warn discards the message.
func (l *NopLogger) Warn(context.Context, string, ...ports.Field) {}

// Error discards the message.
func (l *NopLogger) Error(context.Context, string, ...ports.Field) {}

// With returns the same NopLogger.
func (l *NopLogger) With(...ports.Field) ports.Logger { return l }

// Level returns LevelError so nothing is considered enabled.
func (l *NopLogger) Level() ports.Level { return ports.LevelError }

// Ensure NopLogger implements ports.Logger.
var _ ports.Logger = (*NopLogger)(nil)
