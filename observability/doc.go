// Package observability defines the Observer hook that the daemon and tracer
// packages call after each operation they perform.
//
// Applications implement Observer to turn operations into metrics, logs or
// anything else; the metrics package ships a Prometheus implementation.
//
//	type logObserver struct{ log logger.Logger }
//
//	func (o *logObserver) ObserveOperation(op observability.OperationContext) {
//		if op.Error != nil {
//			o.log.Warn("xray operation failed", op.Error, map[string]interface{}{
//				"component": op.Component,
//				"operation": op.Operation,
//			})
//		}
//	}
//
// Several observers can be combined with Multi.
package observability
