package tracer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/aalemi-dev/stdlib-xray/segment"
)

func TestFXModule_ProvidesTracerClient(t *testing.T) {
	t.Parallel()
	var client *TracerClient

	app := fxtest.New(t,
		FXModule,
		fx.Provide(func() Config {
			return Config{ServiceName: "fx-test"}
		}),
		fx.Populate(&client),
	)

	app.RequireStart()
	defer app.RequireStop()

	assert.NotNil(t, client)
}

func TestFXModule_ProvidesTracerInterface(t *testing.T) {
	t.Parallel()
	var tr Tracer

	app := fxtest.New(t,
		FXModule,
		fx.Provide(func() Config {
			return Config{ServiceName: "fx-test"}
		}),
		fx.Populate(&tr),
	)

	app.RequireStart()
	defer app.RequireStop()

	assert.NotNil(t, tr)
}

func TestFXModule_UsesInjectedSubmitter(t *testing.T) {
	t.Parallel()
	submitter := &recordingSubmitter{}
	var tr Tracer

	app := fxtest.New(t,
		FXModule,
		fx.Provide(
			func() Config { return Config{ServiceName: "fx-test", Sampled: true, EnableSubmit: true} },
			func() segment.Submitter { return submitter },
			func() segment.IDGenerator { return &sequentialIDs{} },
		),
		fx.Populate(&tr),
	)
	app.RequireStart()
	defer app.RequireStop()

	ctx, root := tr.BeginSegment(context.Background(), "")
	tr.EndSegment(ctx)

	assert.Equal(t, "0000000000000001", root.ID())
	assert.Equal(t, []*segment.Segment{root}, submitter.submitted())
}

func TestFXModule_MissingSubmitterFails(t *testing.T) {
	t.Parallel()

	app := fx.New(
		FXModule,
		fx.Provide(func() Config { return Config{EnableSubmit: true} }),
		fx.NopLogger,
	)

	require.Error(t, app.Err())
	assert.ErrorIs(t, app.Err(), ErrMissingSubmitter)
}

func TestRegisterTracerLifecycle_Logs(t *testing.T) {
	t.Parallel()
	client, err := NewClient(Config{ServiceName: "lifecycle"}, nil)
	require.NoError(t, err)
	log := &recordingLogger{}
	client.logger = log

	app := fxtest.New(t,
		fx.Provide(func() *TracerClient { return client }),
		fx.Invoke(RegisterTracerLifecycle),
	)

	app.RequireStart()
	app.RequireStop()

	assert.Equal(t, []string{"tracer started", "shutting down tracer"}, log.infos)
}
