package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/aalemi-dev/stdlib-xray/observability"
	"github.com/aalemi-dev/stdlib-xray/segment"
)

// FXModule provides the tracer as *TracerClient and Tracer.
//
// A segment.Submitter is picked up when one is in the graph, which is the case
// when daemon.FXModule is installed:
//
//	app := fx.New(
//	    daemon.FXModule,
//	    tracer.FXModule,
//	    fx.Provide(
//	        daemon.LoadConfig,
//	        func() tracer.Config {
//	            return tracer.Config{ServiceName: "user-service", Sampled: true, EnableSubmit: true}
//	        },
//	    ),
//	)
//	app.Run()
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClientWithDI,
		fx.Annotate(
			func(t *TracerClient) Tracer { return t },
			fx.As(new(Tracer)),
		),
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerParams groups the dependencies needed to create a tracer.
type TracerParams struct {
	fx.In

	Config      Config
	Submitter   segment.Submitter      `optional:"true"`
	IDGenerator segment.IDGenerator    `optional:"true"`
	Clock       segment.Clock          `optional:"true"`
	Logger      Logger                 `optional:"true"`
	Observer    observability.Observer `optional:"true"`
}

// NewClientWithDI creates a tracer from injected dependencies.
func NewClientWithDI(params TracerParams) (*TracerClient, error) {
	client, err := NewClient(params.Config, params.Submitter)
	if err != nil {
		return nil, err
	}

	if params.IDGenerator != nil {
		client.ids = params.IDGenerator
	}
	if params.Clock != nil {
		client.clock = params.Clock
	}
	if params.Logger != nil {
		client.logger = params.Logger
	}
	if params.Observer != nil {
		client.observer = params.Observer
	}

	return client, nil
}

// RegisterTracerLifecycle logs tracer startup and shutdown. Segments are submitted
// as their roots end, so there is nothing to flush on stop.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *TracerClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			tracer.logInfo(ctx, "tracer started", map[string]interface{}{
				"service":       tracer.cfg.ServiceName,
				"sampled":       tracer.cfg.Sampled,
				"enable_submit": tracer.cfg.EnableSubmit,
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			tracer.logInfo(ctx, "shutting down tracer", nil)
			return nil
		},
	})
}
