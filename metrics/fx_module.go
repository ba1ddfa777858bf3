package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/aalemi-dev/stdlib-xray/logger"
	"github.com/aalemi-dev/stdlib-xray/observability"
)

// FXModule provides *Metrics and registers it as the observability.Observer of
// the daemon and tracer modules.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    daemon.FXModule,
//	    tracer.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{ServiceName: "orders"}
//	    }),
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		fx.Annotate(
			func(m *Metrics) observability.Observer { return m },
			fx.As(new(observability.Observer)),
		),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle serves both endpoints while the application runs and
// shuts them down on stop.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.LoggerClient) {
	servers := []struct {
		name   string
		server *http.Server
	}{
		{name: "system", server: m.SystemServer},
		{name: "application", server: m.ApplicationServer},
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for _, s := range servers {
				if s.server == nil {
					continue
				}
				go func(name string, server *http.Server) {
					log.Info("Starting metrics server", nil, map[string]interface{}{
						"endpoint": name,
						"address":  server.Addr,
					})
					if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Error("Error starting metrics server", err, map[string]interface{}{
							"endpoint": name,
						})
					}
				}(s.name, s.server)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			for _, s := range servers {
				if s.server == nil {
					continue
				}
				log.Info("Shutting down metrics server", nil, map[string]interface{}{
					"endpoint": s.name,
				})
				if err := s.server.Shutdown(ctx); err != nil {
					log.Error("Error shutting down metrics server", err, map[string]interface{}{
						"endpoint": s.name,
					})
				}
			}
			return nil
		},
	})
}
