package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/aalemi-dev/stdlib-xray/segment"
)

// extractTracingFields returns the correlation fields found in ctx.
//
// An X-Ray segment stored with segment.NewContext contributes "xray_trace_id" (when
// the segment has one) and "segment_id" of the current open segment. A recording
// OpenTelemetry span contributes "trace_id" and "span_id". Nothing is returned when
// tracing is disabled or ctx is nil.
func (l *LoggerClient) extractTracingFields(ctx context.Context) []zap.Field {
	if !l.tracingEnabled || ctx == nil {
		return nil
	}

	var fields []zap.Field

	if seg, ok := segment.FromContext(ctx); ok {
		if traceID := seg.TraceID(); traceID != "" {
			fields = append(fields, zap.String("xray_trace_id", traceID))
		}
		fields = append(fields, zap.String("segment_id", seg.CurrentSegment().ID()))
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		if sc := span.SpanContext(); sc.IsValid() {
			fields = append(fields,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
	}

	return fields
}

// convertToZapFields turns an optional error and field maps into Zap fields.
// Later maps win on duplicate keys.
func (l *LoggerClient) convertToZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	var zapFields []zap.Field
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}
	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			zapFields = append(zapFields, zap.Any(key, value))
		}
	}
	return zapFields
}

// contextFields combines the regular fields with the correlation fields of ctx.
func (l *LoggerClient) contextFields(ctx context.Context, err error, fields ...map[string]interface{}) []zap.Field {
	return append(l.convertToZapFields(err, fields...), l.extractTracingFields(ctx)...)
}

// Info logs an informational message.
//
// Example:
//
//	logger.Info("segment submitted", nil, map[string]interface{}{
//	    "segment_id": seg.ID(),
//	    "bytes":      412,
//	})
func (l *LoggerClient) Info(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, l.convertToZapFields(err, fields...)...)
}

// Debug logs a debug-level message.
func (l *LoggerClient) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, l.convertToZapFields(err, fields...)...)
}

// Warn logs a warning, a condition worth attention that did not fail the operation.
func (l *LoggerClient) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, l.convertToZapFields(err, fields...)...)
}

// Error logs a failed operation.
//
// Example:
//
//	if err := client.SubmitSegment(seg); err != nil {
//	    logger.Error("segment submission failed", err, map[string]interface{}{
//	        "address": cfg.Address,
//	    })
//	}
func (l *LoggerClient) Error(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, l.convertToZapFields(err, fields...)...)
}

// Fatal logs a message and calls os.Exit(1).
func (l *LoggerClient) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Fatal(msg, l.convertToZapFields(err, fields...)...)
}

// InfoWithContext logs an informational message with the correlation fields of ctx.
//
// Example:
//
//	ctx, seg := tracer.BeginSegment(ctx, "checkout")
//	logger.InfoWithContext(ctx, "order accepted", nil, map[string]interface{}{
//	    "order_id": id,
//	})
func (l *LoggerClient) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, l.contextFields(ctx, err, fields...)...)
}

// DebugWithContext logs a debug-level message with the correlation fields of ctx.
func (l *LoggerClient) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, l.contextFields(ctx, err, fields...)...)
}

// WarnWithContext logs a warning with the correlation fields of ctx.
func (l *LoggerClient) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, l.contextFields(ctx, err, fields...)...)
}

// ErrorWithContext logs a failed operation with the correlation fields of ctx.
func (l *LoggerClient) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, l.contextFields(ctx, err, fields...)...)
}

// FatalWithContext logs with the correlation fields of ctx and calls os.Exit(1).
func (l *LoggerClient) FatalWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Fatal(msg, l.contextFields(ctx, err, fields...)...)
}
