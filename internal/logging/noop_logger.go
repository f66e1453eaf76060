package logging

import "context"

// NoOpLogger discards everything. Used as the default when no logger is
// injected and in tests that do not assert on log output.
type NoOpLogger struct{}

// NewNoOpLogger creates a logger that discards all messages
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) Debug(msg string, fields ...Field) {}

func (n *NoOpLogger) Info(msg string, fields ...Field) {}

func (n *NoOpLogger) Warn(msg string, fields ...Field) {}

func (n *NoOpLogger) Error(msg string, fields ...Field) {}

func (n *NoOpLogger) WithTraceID(traceID string) Logger { return n }

func (n *NoOpLogger) WithContext(ctx context.Context) Logger { return n }

func (n *NoOpLogger) SetLevel(level LogLevel) {}

func (n *NoOpLogger) Close() error { return nil }
