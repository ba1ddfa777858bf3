package segment

import "encoding/json"

// Cause explains the error or fault state of a segment. It is a closed variant with
// two cases:
//   - ReferenceCause: the identifier of an exception recorded on another segment,
//     used when several segments share one root cause
//   - *ExpandedCause: a full description with working directory, paths and exceptions
//
// Both cases implement json.Marshaler and produce the shapes the daemon expects:
// a bare string for the reference case and an object for the expanded case.
type Cause interface {
	json.Marshaler
	isCause()
}

// ReferenceCause points at an exception identifier held by another segment.
type ReferenceCause string

// CauseFromID returns the reference case for the given exception identifier.
func CauseFromID(id string) ReferenceCause {
	return ReferenceCause(id)
}

func (ReferenceCause) isCause() {}

// MarshalJSON renders the reference as a bare JSON string.
func (r ReferenceCause) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

// ExpandedCause carries the full description of a cause. Empty fields are omitted
// from the serialized object rather than emitted as null or empty arrays.
type ExpandedCause struct {
	WorkingDirectory string
	Paths            []string
	Exceptions       []*Exception
}

// NewExpandedCause returns an empty expanded cause ready for the fluent setters.
func NewExpandedCause() *ExpandedCause {
	return &ExpandedCause{}
}

func (*ExpandedCause) isCause() {}

// SetWorkingDirectory sets the full path of the working directory at failure time.
func (c *ExpandedCause) SetWorkingDirectory(dir string) *ExpandedCause {
	c.WorkingDirectory = dir
	return c
}

// SetPaths replaces the list of library or module paths involved in the failure.
func (c *ExpandedCause) SetPaths(paths []string) *ExpandedCause {
	c.Paths = paths
	return c
}

// SetExceptions replaces the list of exceptions.
func (c *ExpandedCause) SetExceptions(exceptions []*Exception) *ExpandedCause {
	c.Exceptions = exceptions
	return c
}

// AddException appends one exception. Nil exceptions are ignored.
func (c *ExpandedCause) AddException(exception *Exception) *ExpandedCause {
	if exception != nil {
		c.Exceptions = append(c.Exceptions, exception)
	}
	return c
}

type expandedCauseDocument struct {
	WorkingDirectory string       `json:"working_directory,omitempty"`
	Paths            []string     `json:"paths,omitempty"`
	Exceptions       []*Exception `json:"exceptions,omitempty"`
}

// MarshalJSON renders only the non-empty fields of the cause.
func (c *ExpandedCause) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	return json.Marshal(expandedCauseDocument{
		WorkingDirectory: c.WorkingDirectory,
		Paths:            c.Paths,
		Exceptions:       c.Exceptions,
	})
}
