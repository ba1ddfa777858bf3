package tracer

import (
	"context"
	"fmt"
	"strings"
)

// HeaderName is the HTTP header carrying X-Ray trace context between services.
const HeaderName = "X-Amzn-Trace-Id"

// TraceHeader is the parsed form of an X-Amzn-Trace-Id value:
//
//	Root=1-5759e988-bd862e3fe1be46a994272793;Parent=53995c3f42cd8ad8;Sampled=1
type TraceHeader struct {
	TraceID  string
	ParentID string

	// Sampled is nil when the caller left the decision to the receiver.
	Sampled *bool
}

// ParseTraceHeader parses an X-Amzn-Trace-Id value. Unknown fields such as
// Self or Lineage are ignored.
func ParseTraceHeader(value string) (TraceHeader, error) {
	var header TraceHeader

	for _, part := range strings.Split(value, ";") {
		key, val, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)

		switch key {
		case "Root":
			header.TraceID = val
		case "Parent":
			header.ParentID = val
		case "Sampled":
			switch val {
			case "1":
				header.Sampled = boolPtr(true)
			case "0":
				header.Sampled = boolPtr(false)
			case "?", "":
				header.Sampled = nil
			default:
				return TraceHeader{}, fmt.Errorf("%w: sampled value %q", ErrInvalidTraceHeader, val)
			}
		}
	}

	if header.TraceID == "" {
		return TraceHeader{}, fmt.Errorf("%w: missing Root in %q", ErrInvalidTraceHeader, value)
	}
	return header, nil
}

// String renders the header value. Parent and Sampled are omitted when unset.
func (h TraceHeader) String() string {
	var b strings.Builder
	b.WriteString("Root=")
	b.WriteString(h.TraceID)
	if h.ParentID != "" {
		b.WriteString(";Parent=")
		b.WriteString(h.ParentID)
	}
	if h.Sampled != nil {
		if *h.Sampled {
			b.WriteString(";Sampled=1")
		} else {
			b.WriteString(";Sampled=0")
		}
	}
	return b.String()
}

type headerKey struct{}

func contextWithHeader(ctx context.Context, header TraceHeader) context.Context {
	return context.WithValue(ctx, headerKey{}, header)
}

// TraceHeaderFromContext returns the header stored by SetCarrierOnContext.
func TraceHeaderFromContext(ctx context.Context) (TraceHeader, bool) {
	if ctx == nil {
		return TraceHeader{}, false
	}
	header, ok := ctx.Value(headerKey{}).(TraceHeader)
	return header, ok
}

func boolPtr(b bool) *bool {
	return &b
}
