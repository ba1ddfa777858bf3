// Package metrics exports X-Ray client operations to Prometheus.
//
// Metrics implements observability.Observer. Wired into the daemon and tracer
// packages it maintains:
//
//	xray_operations_total{component,operation,status}
//	xray_operation_duration_seconds{component,operation}
//	xray_operation_bytes_total{component,operation}
//
// with "service" added to every series from Config.ServiceName. Component is
// "daemon" or "tracer"; status is "success" or "error". A dropped oversized
// segment therefore shows up as
// xray_operations_total{component="daemon",operation="submit",status="error"}.
//
// # Endpoints
//
// Two HTTP endpoints are served:
//
//  1. System metrics (default :9090): Go runtime, process and build info collectors.
//  2. Application metrics (default :9091): the xray_* series only.
//
// Set an address to metrics.Ptr("") to disable that endpoint.
//
// # FX Integration
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		daemon.FXModule,
//		fx.Provide(
//			daemon.LoadConfig,
//			func() metrics.Config { return metrics.Config{ServiceName: "orders"} },
//			func() logger.Config { return logger.Config{Level: logger.Info, ServiceName: "orders"} },
//		),
//	)
package metrics
