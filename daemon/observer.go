package daemon

import (
	"time"

	"github.com/aalemi-dev/stdlib-xray/observability"
)

// observeOperation reports a datagram write to the observer, if one is set.
func (c *Client) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64) {
	if c.observer != nil {
		c.observer.ObserveOperation(observability.OperationContext{
			Component:   "daemon",
			Operation:   operation,
			Resource:    resource,
			SubResource: subResource,
			Duration:    duration,
			Error:       err,
			Size:        size,
			Metadata: map[string]interface{}{
				"address": c.address,
			},
		})
	}
}
