package tracer

import "errors"

var (
	// ErrInvalidTraceHeader is returned when an X-Amzn-Trace-Id value has no Root field
	// or carries an unknown Sampled value.
	ErrInvalidTraceHeader = errors.New("invalid trace header")

	// ErrMissingSubmitter is returned when submission is enabled without a submitter.
	ErrMissingSubmitter = errors.New("submission enabled but no submitter configured")
)
