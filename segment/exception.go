package segment

// Exception describes a single throwable recorded on a segment, either directly via
// Segment.SetException or as part of an ExpandedCause.
//
// The identifier is required and set at construction. All other fields are optional;
// remote, truncated and skipped are pointer-backed so that an explicit false or zero
// still reaches the collector.
type Exception struct {
	ID        string        `json:"id"`
	Message   string        `json:"message,omitempty"`
	Remote    *bool         `json:"remote,omitempty"`
	Truncated *int          `json:"truncated,omitempty"`
	Skipped   *int          `json:"skipped,omitempty"`
	Cause     string        `json:"cause,omitempty"`
	Stack     []*StackFrame `json:"stack,omitempty"`
}

// NewException creates an Exception with the given identifier.
func NewException(id string) *Exception {
	return &Exception{ID: id}
}

// SetMessage sets the exception message.
func (e *Exception) SetMessage(message string) *Exception {
	e.Message = message
	return e
}

// SetRemote marks whether the exception was caused by a downstream service.
func (e *Exception) SetRemote(remote bool) *Exception {
	e.Remote = &remote
	return e
}

// SetTruncated records how many stack frames were elided from Stack.
// Negative values are clamped to zero.
func (e *Exception) SetTruncated(truncated int) *Exception {
	truncated = nonNegative(truncated)
	e.Truncated = &truncated
	return e
}

// SetSkipped records how many intermediate exceptions were elided between this
// exception and its child. Negative values are clamped to zero.
func (e *Exception) SetSkipped(skipped int) *Exception {
	skipped = nonNegative(skipped)
	e.Skipped = &skipped
	return e
}

// SetCause sets the identifier of the exception that caused this one.
func (e *Exception) SetCause(cause string) *Exception {
	e.Cause = cause
	return e
}

// AddStackFrame appends a frame to the stack. Nil frames are ignored.
func (e *Exception) AddStackFrame(frame *StackFrame) *Exception {
	if frame == nil {
		return e
	}
	e.Stack = append(e.Stack, frame)
	return e
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
