// Package tracer records X-Ray segment trees for request-scoped work.
//
// A root segment is started with BeginSegment and travels in the returned
// context. BeginSubsegment attaches new work to whichever segment of that tree
// is currently open, and EndSegment closes it. Ending the root hands the whole
// tree to a segment.Submitter, normally the daemon client.
//
// # Architecture
//
// The package follows the "accept interfaces, return structs" Go idiom:
//   - Tracer interface: the contract used by application code
//   - TracerClient struct: the concrete implementation
//   - FX module provides both *TracerClient and Tracer
//
// # Basic Usage
//
//	tracerClient, err := tracer.NewClient(tracer.Config{
//		ServiceName:  "orders",
//		Sampled:      true,
//		EnableSubmit: true,
//	}, daemonClient)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx, _ := tracerClient.BeginSegment(ctx, "")
//	defer tracerClient.EndSegment(ctx)
//
//	ctx, _ = tracerClient.BeginSubsegment(ctx, "load-cart")
//	cart, err := loadCart(ctx)
//	if err != nil {
//		tracerClient.RecordError(ctx, err)
//	}
//	tracerClient.EndSegment(ctx)
//
// # Propagation
//
// Trace context crosses service boundaries in the X-Amzn-Trace-Id header:
//
//	Root=1-5759e988-bd862e3fe1be46a994272793;Parent=53995c3f42cd8ad8;Sampled=1
//
// GetCarrier produces it for outgoing calls and SetCarrierOnContext reads it
// from incoming ones. When no header is present but ctx carries an
// OpenTelemetry span context, the root segment reuses its trace and span ids,
// so X-Ray and OpenTelemetry views of a request line up.
//
// # Thread Safety
//
// TracerClient keeps no per-request state and is safe for concurrent use.
// Segments guard their own fields.
package tracer
