package segment

// StackFrame is a single frame of a captured stack trace attached to an Exception.
// Every field is optional and omitted from the serialized document when unset.
type StackFrame struct {
	Path  string `json:"path,omitempty"`
	Line  string `json:"line,omitempty"`
	Label string `json:"label,omitempty"`
}

// NewStackFrame returns an empty frame ready for the fluent setters.
func NewStackFrame() *StackFrame {
	return &StackFrame{}
}

// SetPath sets the source file path of the frame.
func (f *StackFrame) SetPath(path string) *StackFrame {
	f.Path = path
	return f
}

// SetLine sets the line reference of the frame. The daemon format treats it as a string.
func (f *StackFrame) SetLine(line string) *StackFrame {
	f.Line = line
	return f
}

// SetLabel sets the function or method label of the frame.
func (f *StackFrame) SetLabel(label string) *StackFrame {
	f.Label = label
	return f
}
