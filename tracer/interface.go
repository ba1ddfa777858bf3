package tracer

import (
	"context"

	"github.com/aalemi-dev/stdlib-xray/segment"
)

// Tracer records X-Ray segments for the work carried by a context.
//
// The root segment travels in the context returned by BeginSegment; subsegments
// are attached to whichever segment of that tree is currently open.
//
// This interface is implemented by the concrete *TracerClient type.
type Tracer interface {
	// BeginSegment starts a root segment and returns a context carrying it.
	// An empty name falls back to Config.ServiceName.
	BeginSegment(ctx context.Context, name string) (context.Context, *segment.Segment)

	// BeginSubsegment starts a subsegment under the current segment in ctx.
	// Without a segment in ctx it returns a detached, unsampled segment.
	BeginSubsegment(ctx context.Context, name string) (context.Context, *segment.Segment)

	// EndSegment ends the current segment in ctx and returns it. Ending the
	// root submits the tree. It returns nil when nothing in ctx is open.
	EndSegment(ctx context.Context) *segment.Segment

	// RecordError marks the current segment as faulted and records err as its cause.
	RecordError(ctx context.Context, err error)

	// AddAnnotations indexes key-value pairs on the current segment.
	AddAnnotations(ctx context.Context, attrs map[string]interface{})

	// GetCarrier returns the X-Amzn-Trace-Id header for outgoing calls.
	GetCarrier(ctx context.Context) map[string]string

	// SetCarrierOnContext reads an incoming X-Amzn-Trace-Id header into ctx so the
	// next BeginSegment continues the caller's trace.
	SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context
}

// Logger is the subset of logger.Logger used by the tracer.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
