package segment

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying seg.
func NewContext(ctx context.Context, seg *Segment) context.Context {
	return context.WithValue(ctx, contextKey{}, seg)
}

// FromContext returns the segment stored in ctx by NewContext, if any.
func FromContext(ctx context.Context) (*Segment, bool) {
	if ctx == nil {
		return nil, false
	}
	seg, ok := ctx.Value(contextKey{}).(*Segment)
	return seg, ok && seg != nil
}
