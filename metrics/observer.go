package metrics

import (
	"github.com/aalemi-dev/stdlib-xray/observability"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// ObserveOperation records op. Every operation is counted by status; durations
// are observed only when measured and bytes only when non-zero.
//
// The metric vectors exist even when the application endpoint is disabled, so
// observing is always safe.
func (m *Metrics) ObserveOperation(op observability.OperationContext) {
	status := statusSuccess
	if op.Error != nil {
		status = statusError
	}

	m.operations.WithLabelValues(op.Component, op.Operation, status).Inc()
	if op.Duration > 0 {
		m.duration.WithLabelValues(op.Component, op.Operation).Observe(op.Duration.Seconds())
	}
	if op.Size > 0 {
		m.bytes.WithLabelValues(op.Component, op.Operation).Add(float64(op.Size))
	}
}
