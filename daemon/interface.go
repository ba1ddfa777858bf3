package daemon

import (
	"context"

	"github.com/aalemi-dev/stdlib-xray/segment"
)

// SegmentSubmitter is a segment.Submitter that owns a transport and must be closed.
//
// This interface is implemented by the concrete *Client type.
type SegmentSubmitter interface {
	segment.Submitter

	// Close releases the socket. Further submissions fail with ErrClientClosed.
	Close() error
}

// Logger is the subset of logger.Logger used by the client.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
