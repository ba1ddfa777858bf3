package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes X-Ray client operations as Prometheus metrics.
//
// It implements observability.Observer: pass it to the daemon or tracer
// packages (or let FXModule do so) and every datagram write and segment
// lifecycle step is counted and timed.
//
// Two registries are kept apart. The system registry carries runtime
// collectors; the application registry carries only the xray_* metrics. Either
// is nil when its endpoint is disabled.
type Metrics struct {
	SystemServer      *http.Server
	ApplicationServer *http.Server

	SystemRegistry      *prometheus.Registry
	ApplicationRegistry *prometheus.Registry

	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	bytes      *prometheus.CounterVec
}

// NewMetrics builds the registries and servers described by cfg. The servers
// are started by RegisterMetricsLifecycle.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    ServiceName:          "orders",
//	    SystemMetricsAddress: metrics.Ptr(""), // disable runtime metrics
//	})
//	client, _ := daemon.NewClient(daemon.Config{})
//	tracerClient, _ := tracer.NewClient(tracer.Config{ServiceName: "orders"}, client)
func NewMetrics(cfg Config) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "xray_operations_total",
			Help: "Operations performed by the X-Ray client, by outcome.",
		}, []string{"component", "operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "xray_operation_duration_seconds",
			Help:    "Duration of X-Ray client operations.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5, 30},
		}, []string{"component", "operation"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "xray_operation_bytes_total",
			Help: "Bytes handled by X-Ray client operations.",
		}, []string{"component", "operation"}),
	}
	labels := prometheus.Labels{"service": cfg.ServiceName}

	if addr := addressOrDefault(cfg.SystemMetricsAddress, DefaultSystemMetricsAddress); addr != "" {
		registry := prometheus.NewRegistry()
		prometheus.WrapRegistererWith(labels, registry).MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)

		m.SystemRegistry = registry
		m.SystemServer = &http.Server{
			Addr:    addr,
			Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}
	}

	if addr := addressOrDefault(cfg.ApplicationMetricsAddress, DefaultApplicationMetricsAddress); addr != "" {
		registry := prometheus.NewRegistry()
		prometheus.WrapRegistererWith(labels, registry).MustRegister(m.operations, m.duration, m.bytes)

		m.ApplicationRegistry = registry
		m.ApplicationServer = &http.Server{
			Addr:    addr,
			Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}
	}

	return m
}
