package logger

import (
	"context"
)

// Logger provides structured logging on top of Zap.
//
// This interface is implemented by the concrete *LoggerClient type. The daemon and
// tracer packages depend on narrower subsets of it.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})

	// Fatal logs and terminates the process.
	Fatal(msg string, err error, fields ...map[string]interface{})

	// Context-aware variants attach segment and span identifiers when tracing is enabled.

	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	FatalWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
