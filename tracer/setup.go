package tracer

import (
	"github.com/aalemi-dev/stdlib-xray/observability"
	"github.com/aalemi-dev/stdlib-xray/segment"
)

// TracerClient records segment trees and submits finished roots.
//
// It keeps no per-request state: the tree lives in the context, so one client is
// shared by every goroutine of the service.
type TracerClient struct {
	cfg       Config
	submitter segment.Submitter

	ids   segment.IDGenerator
	clock segment.Clock

	logger   Logger
	observer observability.Observer
}

// NewClient creates a tracer. The submitter receives each root segment when it
// ends; it may be nil only when cfg.EnableSubmit is false.
//
// Example:
//
//	daemonClient, err := daemon.NewClient(daemon.Config{})
//	if err != nil {
//	    return err
//	}
//	tracerClient, err := tracer.NewClient(tracer.Config{
//	    ServiceName:  "user-service",
//	    Sampled:      true,
//	    EnableSubmit: true,
//	}, daemonClient)
//	if err != nil {
//	    return err
//	}
//
//	ctx, _ = tracerClient.BeginSegment(ctx, "")
//	defer tracerClient.EndSegment(ctx)
func NewClient(cfg Config, submitter segment.Submitter) (*TracerClient, error) {
	if cfg.EnableSubmit && submitter == nil {
		return nil, ErrMissingSubmitter
	}

	return &TracerClient{
		cfg:       cfg,
		submitter: submitter,
		ids:       segment.DefaultIDGenerator(),
		clock:     segment.DefaultClock(),
	}, nil
}

func (t *TracerClient) segmentOptions() []segment.Option {
	return []segment.Option{
		segment.WithIDGenerator(t.ids),
		segment.WithClock(t.clock),
	}
}
