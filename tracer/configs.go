package tracer

// Config defines how the tracer records and hands off segments.
type Config struct {
	// ServiceName names root segments started without an explicit name. It
	// should be stable, as the X-Ray console groups traces by segment name.
	//
	// Example values: "user-service", "payment-processor", "notification-worker"
	ServiceName string `yaml:"service_name" envconfig:"XRAY_SERVICE_NAME"`

	// Sampled is the sampling decision for traces that start in this service.
	// An incoming X-Amzn-Trace-Id header with a Sampled field overrides it.
	Sampled bool `yaml:"sampled" envconfig:"XRAY_SAMPLED"`

	// EnableSubmit controls whether a root segment is sent to the submitter when
	// it ends. When false, segments are still recorded and propagated, which is
	// handy in development and tests.
	EnableSubmit bool `yaml:"enable_submit" envconfig:"XRAY_ENABLE_SUBMIT"`
}
