package segment

import "time"

// Submitter hands a completed segment tree to a collector.
//
// Segment.Submit calls it only for sampled segments and ignores the returned error;
// retry, buffering and framing policy belong to the implementation. The daemon
// package provides the UDP implementation used in production.
type Submitter interface {
	SubmitSegment(seg *Segment) error
}

// IDGenerator produces the opaque identifiers assigned to segments and traces.
type IDGenerator interface {
	// NewSegmentID returns a new segment identifier, 16 hexadecimal digits.
	NewSegmentID() string

	// NewTraceID returns a new trace identifier in the "1-<epoch>-<random>" form.
	NewTraceID() string
}

// Clock supplies the current time for Begin and End.
// It is satisfied by clockwork.Clock, so a fake clock can drive tests.
type Clock interface {
	Now() time.Time
}
