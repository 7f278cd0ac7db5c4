// Package activity reports user-visible workflow events.
// Reporting is fire-and-forget: implementations must not block or fail the caller.
package activity

import "go.uber.org/zap"

const (
	ActionBulkPrepared        = "bulk request prepared"
	ActionBulkSubmitted       = "bulk request submitted"
	ActionBulkSubmitFailed    = "bulk request submission failed"
	ActionBulkWarningAccepted = "bulk request quantity warning accepted"
)

type Logger interface {
	Info(action string, fields ...zap.Field)
	Error(action string, err error, fields ...zap.Field)
}

type zapLogger struct {
	logger *zap.Logger
}

// NewZapLogger records activity as structured log entries tagged component=activity.
func NewZapLogger(logger *zap.Logger) Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapLogger{logger: logger.With(zap.String("component", "activity"))}
}

func (l *zapLogger) Info(action string, fields ...zap.Field) {
	l.logger.Info(action, fields...)
}

func (l *zapLogger) Error(action string, err error, fields ...zap.Field) {
	l.logger.Error(action, append(fields, zap.Error(err))...)
}

type nopLogger struct{}

func Nop() Logger { return nopLogger{} }

func (nopLogger) Info(string, ...zap.Field)         {}
func (nopLogger) Error(string, error, ...zap.Field) {}
