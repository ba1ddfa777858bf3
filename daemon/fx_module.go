package daemon

import (
	"context"

	"go.uber.org/fx"

	"github.com/aalemi-dev/stdlib-xray/observability"
	"github.com/aalemi-dev/stdlib-xray/segment"
)

// FXModule provides the daemon client as *Client, SegmentSubmitter and
// segment.Submitter, and closes the socket when the application stops.
//
// Usage:
//
//	app := fx.New(
//	    daemon.FXModule,
//	    fx.Provide(daemon.LoadConfig),
//	)
var FXModule = fx.Module("daemon",
	fx.Provide(
		NewClientWithDI,
		fx.Annotate(
			func(c *Client) SegmentSubmitter { return c },
			fx.As(new(SegmentSubmitter)),
		),
		fx.Annotate(
			func(c *Client) segment.Submitter { return c },
			fx.As(new(segment.Submitter)),
		),
	),
	fx.Invoke(RegisterDaemonLifecycle),
)

// DaemonParams groups the dependencies needed to create a daemon client.
type DaemonParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a client from injected dependencies. The logger and
// observer are optional.
func NewClientWithDI(params DaemonParams) (*Client, error) {
	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}

	if params.Logger != nil {
		client.logger = params.Logger
	}
	if params.Observer != nil {
		client.observer = params.Observer
	}

	return client, nil
}

// RegisterDaemonLifecycle logs startup and closes the client on stop.
func RegisterDaemonLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			client.logInfo(ctx, "X-Ray daemon client ready", map[string]interface{}{
				"address": client.Address(),
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			client.logInfo(ctx, "closing X-Ray daemon client", nil)
			return client.Close()
		},
	})
}
