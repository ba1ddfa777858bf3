package tracer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/aalemi-dev/stdlib-xray/observability"
	"github.com/aalemi-dev/stdlib-xray/segment"
)

type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequentialIDs) NewSegmentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%016x", s.n)
}

func (s *sequentialIDs) NewTraceID() string {
	return "1-00000001-000000000000000000000001"
}

type recordingSubmitter struct {
	mu   sync.Mutex
	segs []*segment.Segment
	err  error
}

func (r *recordingSubmitter) SubmitSegment(seg *segment.Segment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segs = append(r.segs, seg)
	return r.err
}

func (r *recordingSubmitter) submitted() []*segment.Segment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*segment.Segment(nil), r.segs...)
}

type recordingObserver struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (r *recordingObserver) ObserveOperation(op observability.OperationContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

type recordingLogger struct {
	mu       sync.Mutex
	warnings []string
	infos    []string
}

func (r *recordingLogger) InfoWithContext(_ context.Context, msg string, _ error, _ ...map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, msg)
}

func (r *recordingLogger) WarnWithContext(_ context.Context, msg string, _ error, _ ...map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, msg)
}

func newTestClient(t *testing.T, cfg Config, submitter segment.Submitter) (*TracerClient, *clockwork.FakeClock) {
	t.Helper()
	client, err := NewClient(cfg, submitter)
	require.NoError(t, err)

	clock := clockwork.NewFakeClockAt(time.Unix(1700000000, 0))
	client.clock = clock
	client.ids = &sequentialIDs{}
	return client, clock
}

func TestNewClient_RequiresSubmitterWhenEnabled(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{EnableSubmit: true}, nil)
	assert.ErrorIs(t, err, ErrMissingSubmitter)

	client, err := NewClient(Config{ServiceName: "svc"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestBeginSegment_FreshTrace(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, Config{ServiceName: "orders", Sampled: true}, nil)

	ctx, seg := client.BeginSegment(context.Background(), "")

	assert.Equal(t, "orders", seg.Name())
	assert.Equal(t, "1-00000001-000000000000000000000001", seg.TraceID())
	assert.Empty(t, seg.ParentID())
	assert.True(t, seg.IsSampled())
	assert.True(t, seg.IsOpen())
	start, ok := seg.StartTime()
	require.True(t, ok)
	assert.Equal(t, 1700000000.0, start)

	fromCtx, ok := segment.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, seg, fromCtx)
}

func TestBeginSegment_ExplicitNameWins(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, Config{ServiceName: "orders"}, nil)

	_, seg := client.BeginSegment(context.Background(), "checkout")

	assert.Equal(t, "checkout", seg.Name())
	assert.False(t, seg.IsSampled())
}

func TestBeginSegment_ContinuesIncomingHeader(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, Config{Sampled: true}, nil)

	ctx := client.SetCarrierOnContext(context.Background(), map[string]string{
		"x-amzn-trace-id": "Root=1-5759e988-bd862e3fe1be46a994272793;Parent=53995c3f42cd8ad8;Sampled=0",
	})
	_, seg := client.BeginSegment(ctx, "downstream")

	assert.Equal(t, "1-5759e988-bd862e3fe1be46a994272793", seg.TraceID())
	assert.Equal(t, "53995c3f42cd8ad8", seg.ParentID())
	assert.False(t, seg.IsSampled())
}

func TestBeginSegment_HeaderWithoutDecisionUsesConfig(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, Config{Sampled: true}, nil)

	ctx := client.SetCarrierOnContext(context.Background(), map[string]string{
		HeaderName: "Root=1-5759e988-bd862e3fe1be46a994272793",
	})
	_, seg := client.BeginSegment(ctx, "downstream")

	assert.True(t, seg.IsSampled())
	assert.Empty(t, seg.ParentID())
}

func TestBeginSegment_DerivesFromOpenTelemetry(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, Config{}, nil)

	traceID, err := trace.TraceIDFromHex("5759e988bd862e3fe1be46a994272793")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("53995c3f42cd8ad8")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	_, seg := client.BeginSegment(ctx, "bridged")

	assert.Equal(t, "1-5759e988-bd862e3fe1be46a994272793", seg.TraceID())
	assert.Equal(t, "53995c3f42cd8ad8", seg.ParentID())
}

func TestBeginSegment_NilContext(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, Config{}, nil)

	//nolint:staticcheck // nil context is handled explicitly
	ctx, seg := client.BeginSegment(nil, "nil-ctx")

	require.NotNil(t, ctx)
	fromCtx, ok := segment.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, seg, fromCtx)
}

func TestBeginSubsegment_AttachesToCurrent(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, Config{Sampled: true}, nil)

	ctx, root := client.BeginSegment(context.Background(), "root")
	ctx, outer := client.BeginSubsegment(ctx, "outer")
	ctx, inner := client.BeginSubsegment(ctx, "inner")

	require.Len(t, root.Subsegments(), 1)
	assert.Same(t, outer, root.Subsegments()[0])
	require.Len(t, outer.Subsegments(), 1)
	assert.Same(t, inner, outer.Subsegments()[0])
	assert.True(t, inner.IsSampled())
	assert.Same(t, inner, root.CurrentSegment())

	assert.Same(t, inner, client.EndSegment(ctx))
	ctx, sibling := client.BeginSubsegment(ctx, "sibling")
	assert.Equal(t, []*segment.Segment{inner, sibling}, outer.Subsegments())
}

func TestBeginSubsegment_WithoutSegmentIsDetached(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, Config{Sampled: true}, nil)
	log := &recordingLogger{}
	client.logger = log

	ctx, seg := client.BeginSubsegment(context.Background(), "orphan")

	assert.Equal(t, "orphan", seg.Name())
	assert.False(t, seg.IsSampled())
	_, ok := segment.FromContext(ctx)
	assert.False(t, ok)
	assert.Equal(t, []string{"no segment in context, subsegment is detached"}, log.warnings)
}

func TestEndSegment_SubmitsRootOnce(t *testing.T) {
	t.Parallel()
	submitter := &recordingSubmitter{}
	client, clock := newTestClient(t, Config{Sampled: true, EnableSubmit: true}, submitter)

	ctx, root := client.BeginSegment(context.Background(), "root")
	ctx, child := client.BeginSubsegment(ctx, "child")
	clock.Advance(250 * time.Millisecond)

	assert.Same(t, child, client.EndSegment(ctx))
	assert.Empty(t, submitter.submitted())

	clock.Advance(250 * time.Millisecond)
	assert.Same(t, root, client.EndSegment(ctx))
	require.Equal(t, []*segment.Segment{root}, submitter.submitted())

	end, ok := root.EndTime()
	require.True(t, ok)
	assert.Equal(t, 1700000000.5, end)

	assert.Nil(t, client.EndSegment(ctx))
	assert.Len(t, submitter.submitted(), 1)
}

func TestEndSegment_UnsampledNotSubmitted(t *testing.T) {
	t.Parallel()
	submitter := &recordingSubmitter{}
	client, _ := newTestClient(t, Config{Sampled: false, EnableSubmit: true}, submitter)

	ctx, _ := client.BeginSegment(context.Background(), "root")
	client.EndSegment(ctx)

	assert.Empty(t, submitter.submitted())
}

func TestEndSegment_SubmitDisabled(t *testing.T) {
	t.Parallel()
	submitter := &recordingSubmitter{}
	client, _ := newTestClient(t, Config{Sampled: true, EnableSubmit: false}, submitter)

	ctx, root := client.BeginSegment(context.Background(), "root")
	client.EndSegment(ctx)

	assert.False(t, root.IsOpen())
	assert.Empty(t, submitter.submitted())
}

func TestEndSegment_SubmitErrorIsLogged(t *testing.T) {
	t.Parallel()
	submitter := &recordingSubmitter{err: errors.New("socket closed")}
	client, _ := newTestClient(t, Config{Sampled: true, EnableSubmit: true}, submitter)
	log := &recordingLogger{}
	client.logger = log

	ctx, _ := client.BeginSegment(context.Background(), "root")
	assert.NotPanics(t, func() { client.EndSegment(ctx) })

	assert.Equal(t, []string{"failed to submit segment"}, log.warnings)
}

func TestEndSegment_WithoutSegment(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, Config{}, nil)

	assert.Nil(t, client.EndSegment(context.Background()))
}

func TestRecordError_SetsFaultAndCause(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, Config{}, nil)

	ctx, root := client.BeginSegment(context.Background(), "root")
	ctx, child := client.BeginSubsegment(ctx, "child")
	client.RecordError(ctx, errors.New("connection refused"))
	client.RecordError(ctx, nil)

	assert.True(t, child.HasFault())
	assert.False(t, root.HasFault())

	cause, ok := child.Cause().(*segment.ExpandedCause)
	require.True(t, ok)
	require.Len(t, cause.Exceptions, 1)
	assert.Equal(t, "connection refused", cause.Exceptions[0].Message)
	assert.NotEmpty(t, cause.Exceptions[0].ID)
}

func TestRecordError_WithoutSegment(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, Config{}, nil)

	assert.NotPanics(t, func() { client.RecordError(context.Background(), errors.New("boom")) })
}

func TestAddAnnotations_ConvertsNonScalars(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, Config{}, nil)

	ctx, root := client.BeginSegment(context.Background(), "root")
	client.AddAnnotations(ctx, map[string]interface{}{
		"str":     "hello",
		"int":     42,
		"int64":   int64(100),
		"float64": 3.14,
		"bool":    true,
		"other":   []string{"a", "b"},
	})
	client.AddAnnotations(ctx, nil)

	assert.Equal(t, map[string]interface{}{
		"str":     "hello",
		"int":     42,
		"int64":   int64(100),
		"float64": 3.14,
		"bool":    true,
		"other":   "[a b]",
	}, root.Annotations())
}

func TestGetCarrier_FromSegment(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, Config{Sampled: true}, nil)

	ctx, root := client.BeginSegment(context.Background(), "root")
	ctx, child := client.BeginSubsegment(ctx, "call-inventory")

	carrier := client.GetCarrier(ctx)

	assert.Equal(t, map[string]string{
		HeaderName: "Root=" + root.TraceID() + ";Parent=" + child.ID() + ";Sampled=1",
	}, carrier)
}

func TestGetCarrier_PassesThroughIncomingHeader(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, Config{}, nil)
	value := "Root=1-5759e988-bd862e3fe1be46a994272793;Parent=53995c3f42cd8ad8"

	ctx := client.SetCarrierOnContext(context.Background(), map[string]string{HeaderName: value})

	assert.Equal(t, map[string]string{HeaderName: value}, client.GetCarrier(ctx))
	assert.Empty(t, client.GetCarrier(context.Background()))
}

func TestSetCarrierOnContext_MalformedHeaderIgnored(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t, Config{}, nil)
	log := &recordingLogger{}
	client.logger = log

	base := context.Background()
	ctx := client.SetCarrierOnContext(base, map[string]string{HeaderName: "Parent=only"})

	_, ok := TraceHeaderFromContext(ctx)
	assert.False(t, ok)
	assert.Equal(t, []string{"ignoring malformed trace header"}, log.warnings)

	ctx = client.SetCarrierOnContext(base, map[string]string{"traceparent": "00-abc"})
	_, ok = TraceHeaderFromContext(ctx)
	assert.False(t, ok)
}

func TestObserver_ReceivesSegmentOperations(t *testing.T) {
	t.Parallel()
	client, clock := newTestClient(t, Config{Sampled: true}, nil)
	observer := &recordingObserver{}
	client.observer = observer

	ctx, root := client.BeginSegment(context.Background(), "root")
	clock.Advance(2 * time.Second)
	client.EndSegment(ctx)

	require.Len(t, observer.ops, 2)
	assert.Equal(t, "tracer", observer.ops[0].Component)
	assert.Equal(t, operationBeginSegment, observer.ops[0].Operation)
	assert.Equal(t, operationEndSegment, observer.ops[1].Operation)
	assert.Equal(t, root.ID(), observer.ops[1].SubResource)
	assert.Equal(t, 2*time.Second, observer.ops[1].Duration)
	assert.Equal(t, root.TraceID(), observer.ops[1].Metadata["trace_id"])
}

func TestTraceIDFromOTel(t *testing.T) {
	t.Parallel()
	id, err := trace.TraceIDFromHex("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	assert.Equal(t, "1-01234567-89abcdef0123456789abcdef", traceIDFromOTel(id))
}
