package observability

import "time"

// Observer receives a notification each time a component of this module finishes an
// operation against the outside world, such as writing a segment datagram to the daemon.
//
// Observers are optional: every component works without one.
type Observer interface {
	// ObserveOperation is called when an operation completes, successfully or not.
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a completed operation.
type OperationContext struct {
	// Component identifies the package that performed the operation.
	// Examples: "daemon", "tracer"
	Component string

	// Operation describes what was performed.
	// Examples:
	//   daemon: "submit", "submit_fragment"
	//   tracer: "begin_segment", "end_segment"
	Operation string

	// Resource identifies the primary resource, typically the segment name.
	Resource string

	// SubResource provides additional resource context (optional), such as the
	// segment identifier.
	SubResource string

	// Duration is how long the operation took.
	Duration time.Duration

	// Error is the error returned by the operation, nil on success.
	Error error

	// Size is the number of bytes involved (optional), for the daemon the datagram size.
	Size int64

	// Metadata provides additional operation-specific information (optional).
	// Example for daemon: {"address": "127.0.0.1:2000", "fragments": 3}
	Metadata map[string]interface{}
}
