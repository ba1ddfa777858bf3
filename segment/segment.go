package segment

import (
	"encoding/json"
	"sync"
)

// Segment is a named, timed unit of work. A segment may own subsegments, which are
// themselves segments attached while the parent is open.
//
// Lifecycle: New -> Begin (open) -> AddSubsegment* -> End (closed) -> Submit.
// A closed segment is never reopened and rejects further subsegments silently.
//
// Mutators return the segment to allow chaining. Each segment guards its own fields
// with a mutex, so a tree may be read and extended from request-handling goroutines,
// but a single segment instance must not be attached to two parents.
type Segment struct {
	mu sync.Mutex

	id          string
	traceID     string
	parentID    string
	name        string
	namespace   string
	startTime   *float64
	endTime     *float64
	hasError    bool
	hasFault    bool
	independent bool
	sampled     *bool

	annotations map[string]interface{}
	metadata    map[string]interface{}
	http        *HTTPData
	sql         *SQLData
	cause       Cause
	exception   *Exception
	subsegments []*Segment

	ids   IDGenerator
	clock Clock
}

// Option configures a segment at construction.
type Option func(*Segment)

// WithIDGenerator sets the generator used for the segment identifier.
func WithIDGenerator(ids IDGenerator) Option {
	return func(s *Segment) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithClock sets the clock used by Begin and End.
func WithClock(clock Clock) Option {
	return func(s *Segment) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithName sets the segment name at construction.
func WithName(name string) Option {
	return func(s *Segment) {
		s.name = name
	}
}

// New creates a segment and assigns its identifier. The segment is neither begun
// nor sampled.
func New(opts ...Option) *Segment {
	s := &Segment{
		ids:   defaultIDGenerator,
		clock: defaultClock,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.id = s.ids.NewSegmentID()
	return s
}

// NewSubsegment creates a segment sharing this segment's providers, attaches it and
// returns it. The child is returned even when attachment is rejected because this
// segment is closed, so callers can keep recording without nil checks.
func (s *Segment) NewSubsegment(name string) *Segment {
	s.mu.Lock()
	ids, clock := s.ids, s.clock
	s.mu.Unlock()

	child := New(WithIDGenerator(ids), WithClock(clock), WithName(name))
	s.AddSubsegment(child)
	return child
}

// Begin stamps the start time. Calling it twice moves the start time forward.
func (s *Segment) Begin() *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := epochSeconds(s.clock.Now())
	s.startTime = &now
	return s
}

// End stamps the end time, closing the segment.
func (s *Segment) End() *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := epochSeconds(s.clock.Now())
	s.endTime = &now
	return s
}

// IsOpen reports whether End has not been called, regardless of Begin.
func (s *Segment) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endTime == nil
}

// SetName sets the human-readable name of the unit of work.
func (s *Segment) SetName(name string) *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
	return s
}

// SetTraceID sets the trace identifier. Dependent subsegments leave it empty and
// inherit the trace from their root.
func (s *Segment) SetTraceID(traceID string) *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.traceID = traceID
	return s
}

// SetParentID sets the identifier of the logical parent, which may live in another process.
func (s *Segment) SetParentID(parentID string) *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parentID = parentID
	return s
}

// SetError flags a client-side failure.
func (s *Segment) SetError(hasError bool) *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasError = hasError
	return s
}

// SetFault flags a server-side failure.
func (s *Segment) SetFault(hasFault bool) *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasFault = hasFault
	return s
}

// SetSampled records the sampling decision.
func (s *Segment) SetSampled(sampled bool) *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sampled = &sampled
	return s
}

// SetIndependent marks the segment as a separate logical segment that serializes
// with type "subsegment" and its own trace and parent identifiers.
func (s *Segment) SetIndependent(independent bool) *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.independent = independent
	return s
}

// SetNamespace sets the namespace of a downstream call, NamespaceRemote or NamespaceAWS.
func (s *Segment) SetNamespace(namespace string) *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.namespace = namespace
	return s
}

// SetHTTP attaches the http block.
func (s *Segment) SetHTTP(data *HTTPData) *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.http = data
	return s
}

// SetSQL attaches the sql block.
func (s *Segment) SetSQL(data *SQLData) *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sql = data
	return s
}

// SetCause sets the cause. Cause and exception are independent; setting both
// serializes both keys. A nil expanded cause or an empty reference clears it.
func (s *Segment) SetCause(cause Cause) *Segment {
	switch c := cause.(type) {
	case *ExpandedCause:
		if c == nil {
			cause = nil
		}
	case ReferenceCause:
		if c == "" {
			cause = nil
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cause = cause
	return s
}

// SetException sets the single exception of the segment.
func (s *Segment) SetException(exception *Exception) *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exception = exception
	return s
}

// AddAnnotation inserts or overwrites an indexed annotation. Only scalar values
// (strings, booleans and numbers) are accepted; anything else is ignored.
func (s *Segment) AddAnnotation(key string, value interface{}) *Segment {
	if !isScalar(value) {
		return s
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.annotations == nil {
		s.annotations = make(map[string]interface{})
	}
	s.annotations[key] = value
	return s
}

// AddMetadata inserts or overwrites a non-indexed metadata value.
func (s *Segment) AddMetadata(key string, value interface{}) *Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.metadata == nil {
		s.metadata = make(map[string]interface{})
	}
	s.metadata[key] = value
	return s
}

// AddSubsegment appends child when this segment is open. A closed segment, a nil
// child or the segment itself are ignored without error.
//
// When this segment carries a sampling decision it overwrites the child's.
func (s *Segment) AddSubsegment(child *Segment) *Segment {
	if child == nil || child == s {
		return s
	}

	s.mu.Lock()
	if s.endTime != nil {
		s.mu.Unlock()
		return s
	}
	s.subsegments = append(s.subsegments, child)
	sampled := s.sampled
	s.mu.Unlock()

	if sampled != nil {
		child.SetSampled(*sampled)
	}
	return s
}

// CurrentSegment returns the segment where the next unit of work should attach.
//
// Subsegments are scanned from the most recently added; the first open one is
// descended into. When no subsegment is open the segment itself is returned.
func (s *Segment) CurrentSegment() *Segment {
	children := s.Subsegments()
	for i := len(children) - 1; i >= 0; i-- {
		if children[i].IsOpen() {
			return children[i].CurrentSegment()
		}
	}
	return s
}

// Submit hands the segment to submitter when it is sampled. The submitter's error
// is discarded so that tracing failures never reach the traced code.
func (s *Segment) Submit(submitter Submitter) *Segment {
	if submitter == nil || !s.IsSampled() {
		return s
	}
	_ = submitter.SubmitSegment(s)
	return s
}

func (s *Segment) ID() string {
	return s.id
}

func (s *Segment) TraceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.traceID
}

func (s *Segment) ParentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parentID
}

func (s *Segment) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// StartTime returns the start time in epoch seconds and whether Begin was called.
func (s *Segment) StartTime() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startTime == nil {
		return 0, false
	}
	return *s.startTime, true
}

// EndTime returns the end time in epoch seconds and whether End was called.
func (s *Segment) EndTime() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.endTime == nil {
		return 0, false
	}
	return *s.endTime, true
}

// IsSampled reports whether the segment was explicitly sampled.
func (s *Segment) IsSampled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sampled != nil && *s.sampled
}

func (s *Segment) IsIndependent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.independent
}

func (s *Segment) HasError() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasError
}

func (s *Segment) HasFault() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasFault
}

func (s *Segment) Cause() Cause {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cause
}

func (s *Segment) Exception() *Exception {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exception
}

// Subsegments returns the attached subsegments in attachment order.
// The returned slice is a copy.
func (s *Segment) Subsegments() []*Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Segment(nil), s.subsegments...)
}

// Annotations returns a copy of the annotations, nil when none were added.
func (s *Segment) Annotations() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyMap(s.annotations)
}

// Metadata returns a copy of the metadata, nil when none was added.
func (s *Segment) Metadata() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyMap(s.metadata)
}

// document is the wire shape expected by the daemon. Field order follows the
// daemon documentation; every optional key is omitted when empty.
type document struct {
	ID          string                 `json:"id"`
	TraceID     string                 `json:"trace_id,omitempty"`
	ParentID    string                 `json:"parent_id,omitempty"`
	Name        string                 `json:"name,omitempty"`
	StartTime   *float64               `json:"start_time,omitempty"`
	EndTime     *float64               `json:"end_time,omitempty"`
	Error       bool                   `json:"error,omitempty"`
	Fault       bool                   `json:"fault,omitempty"`
	Type        string                 `json:"type,omitempty"`
	Namespace   string                 `json:"namespace,omitempty"`
	HTTP        *HTTPData              `json:"http,omitempty"`
	SQL         *SQLData               `json:"sql,omitempty"`
	Annotations map[string]interface{} `json:"annotations,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Cause       Cause                  `json:"cause,omitempty"`
	Exception   *Exception             `json:"exception,omitempty"`
	Subsegments []*Segment             `json:"subsegments,omitempty"`
}

func (s *Segment) snapshot() document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := document{
		ID:          s.id,
		TraceID:     s.traceID,
		ParentID:    s.parentID,
		Name:        s.name,
		StartTime:   s.startTime,
		EndTime:     s.endTime,
		Error:       s.hasError,
		Fault:       s.hasFault,
		Namespace:   s.namespace,
		HTTP:        s.http,
		SQL:         s.sql,
		Annotations: copyMap(s.annotations),
		Metadata:    copyMap(s.metadata),
		Cause:       s.cause,
		Exception:   s.exception,
		Subsegments: append([]*Segment(nil), s.subsegments...),
	}
	if s.independent {
		doc.Type = "subsegment"
	}
	return doc
}

// MarshalJSON encodes the segment tree depth-first into the daemon document.
func (s *Segment) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.snapshot())
}

// Document returns the serialized form decoded into a generic map, matching what
// the collector sees. Numbers decode as float64.
func (s *Segment) Document() (map[string]interface{}, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func isScalar(value interface{}) bool {
	switch value.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

func copyMap(in map[string]interface{}) map[string]interface{} {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
