package tracer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/aalemi-dev/stdlib-xray/observability"
	"github.com/aalemi-dev/stdlib-xray/segment"
)

const (
	operationBeginSegment = "begin_segment"
	operationEndSegment   = "end_segment"
)

// BeginSegment starts a root segment and returns a context carrying it.
//
// The trace context is taken, in order, from an X-Amzn-Trace-Id header stored by
// SetCarrierOnContext, from a valid OpenTelemetry span context in ctx, or freshly
// generated. The header's Sampled field, when present, overrides Config.Sampled.
//
// Example:
//
//	func handle(w http.ResponseWriter, r *http.Request) {
//	    ctx := tracer.SetCarrierOnContext(r.Context(), map[string]string{
//	        tracer.HeaderName: r.Header.Get(tracer.HeaderName),
//	    })
//	    ctx, seg := tracer.BeginSegment(ctx, "checkout")
//	    defer tracer.EndSegment(ctx)
//
//	    seg.SetHTTP(&segment.HTTPData{Request: &segment.HTTPRequest{Method: r.Method, URL: r.URL.String()}})
//	    // ...
//	}
func (t *TracerClient) BeginSegment(ctx context.Context, name string) (context.Context, *segment.Segment) {
	if ctx == nil {
		ctx = context.Background()
	}
	if name == "" {
		name = t.cfg.ServiceName
	}

	seg := segment.New(t.segmentOptions()...).SetName(name)
	sampled := t.cfg.Sampled

	if header, ok := TraceHeaderFromContext(ctx); ok {
		seg.SetTraceID(header.TraceID)
		if header.ParentID != "" {
			seg.SetParentID(header.ParentID)
		}
		if header.Sampled != nil {
			sampled = *header.Sampled
		}
	} else if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		seg.SetTraceID(traceIDFromOTel(sc.TraceID())).SetParentID(sc.SpanID().String())
	} else {
		seg.SetTraceID(t.ids.NewTraceID())
	}

	seg.SetSampled(sampled).Begin()
	t.observeOperation(operationBeginSegment, seg, 0, nil)

	return segment.NewContext(ctx, seg), seg
}

// BeginSubsegment starts a subsegment under the current segment of the tree in
// ctx. The returned context is ctx; the tree already tracks the new subsegment.
//
// Without a segment in ctx the returned segment is detached and unsampled, so
// recording continues but nothing is submitted.
func (t *TracerClient) BeginSubsegment(ctx context.Context, name string) (context.Context, *segment.Segment) {
	root, ok := segment.FromContext(ctx)
	if !ok {
		t.logWarn(ctx, "no segment in context, subsegment is detached", nil, map[string]interface{}{
			"name": name,
		})
		return ctx, segment.New(t.segmentOptions()...).SetName(name).Begin()
	}

	return ctx, root.CurrentSegment().NewSubsegment(name).Begin()
}

// EndSegment ends the current segment of the tree in ctx. When that is the root,
// the tree is submitted if submission is enabled and the root is sampled.
//
// Example:
//
//	ctx, _ = tracer.BeginSubsegment(ctx, "query-orders")
//	rows, err := db.QueryContext(ctx, query)
//	if err != nil {
//	    tracer.RecordError(ctx, err)
//	}
//	tracer.EndSegment(ctx)
func (t *TracerClient) EndSegment(ctx context.Context) *segment.Segment {
	root, ok := segment.FromContext(ctx)
	if !ok || !root.IsOpen() {
		return nil
	}

	current := root.CurrentSegment().End()
	t.observeOperation(operationEndSegment, current, elapsed(current), nil)

	if current == root {
		t.submit(ctx, root)
	}
	return current
}

func (t *TracerClient) submit(ctx context.Context, root *segment.Segment) {
	if !t.cfg.EnableSubmit || t.submitter == nil || !root.IsSampled() {
		return
	}
	if err := t.submitter.SubmitSegment(root); err != nil {
		t.logWarn(ctx, "failed to submit segment", err, map[string]interface{}{
			"segment_id": root.ID(),
			"trace_id":   root.TraceID(),
		})
	}
}

// RecordError marks the current segment as faulted and sets a cause holding one
// exception with err's message. A nil error or a context without a segment is ignored.
func (t *TracerClient) RecordError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	root, ok := segment.FromContext(ctx)
	if !ok {
		return
	}

	exception := segment.NewException(t.ids.NewSegmentID()).SetMessage(err.Error())
	root.CurrentSegment().
		SetFault(true).
		SetCause(segment.NewExpandedCause().AddException(exception))
}

// AddAnnotations indexes attrs on the current segment. Strings, booleans and
// numbers are stored as is; any other value is stored as its fmt.Sprint form.
//
// Example:
//
//	tracer.AddAnnotations(ctx, map[string]interface{}{
//	    "user_id":  "usr_12345",
//	    "items":    5,
//	    "premium":  true,
//	    "cart":     cartItems, // stored as a string
//	})
func (t *TracerClient) AddAnnotations(ctx context.Context, attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}
	root, ok := segment.FromContext(ctx)
	if !ok {
		return
	}

	current := root.CurrentSegment()
	for k, v := range attrs {
		switch val := v.(type) {
		case string, bool, int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64, float32, float64:
			current.AddAnnotation(k, val)
		default:
			current.AddAnnotation(k, fmt.Sprint(val))
		}
	}
}

// GetCarrier returns the X-Amzn-Trace-Id header for an outgoing call. The parent
// is the current segment, so the callee's segment nests under it. A context that
// only carries an incoming header yields that header unchanged, and an empty
// context yields an empty map.
//
// Example:
//
//	for key, value := range tracer.GetCarrier(ctx) {
//	    req.Header.Set(key, value)
//	}
func (t *TracerClient) GetCarrier(ctx context.Context) map[string]string {
	carrier := map[string]string{}

	if root, ok := segment.FromContext(ctx); ok {
		header := TraceHeader{
			TraceID:  root.TraceID(),
			ParentID: root.CurrentSegment().ID(),
			Sampled:  boolPtr(root.IsSampled()),
		}
		carrier[HeaderName] = header.String()
		return carrier
	}

	if header, ok := TraceHeaderFromContext(ctx); ok {
		carrier[HeaderName] = header.String()
	}
	return carrier
}

// SetCarrierOnContext stores the X-Amzn-Trace-Id header of carrier in ctx. The key is
// matched case-insensitively. A missing or malformed header leaves ctx unchanged.
func (t *TracerClient) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	for key, value := range carrier {
		if !strings.EqualFold(key, HeaderName) || value == "" {
			continue
		}

		header, err := ParseTraceHeader(value)
		if err != nil {
			t.logWarn(ctx, "ignoring malformed trace header", err, map[string]interface{}{
				"header": value,
			})
			return ctx
		}
		return contextWithHeader(ctx, header)
	}
	return ctx
}

// traceIDFromOTel renders a 128-bit OpenTelemetry trace id in the X-Ray form.
func traceIDFromOTel(id trace.TraceID) string {
	hex := id.String()
	return "1-" + hex[:8] + "-" + hex[8:]
}

func elapsed(seg *segment.Segment) time.Duration {
	start, okStart := seg.StartTime()
	end, okEnd := seg.EndTime()
	if !okStart || !okEnd {
		return 0
	}
	return time.Duration((end - start) * float64(time.Second))
}

func (t *TracerClient) observeOperation(operation string, seg *segment.Segment, duration time.Duration, err error) {
	if t.observer != nil {
		t.observer.ObserveOperation(observability.OperationContext{
			Component:   "tracer",
			Operation:   operation,
			Resource:    seg.Name(),
			SubResource: seg.ID(),
			Duration:    duration,
			Error:       err,
			Metadata: map[string]interface{}{
				"trace_id": seg.TraceID(),
				"sampled":  seg.IsSampled(),
			},
		})
	}
}

func (t *TracerClient) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if t.logger != nil {
		t.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (t *TracerClient) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if t.logger != nil {
		t.logger.WarnWithContext(ctx, msg, err, fields)
	}
}
