package logger

// Log levels accepted by Config.Level.
const (
	// Debug outputs every message.
	Debug = "debug"

	// Info outputs info, warning and error messages.
	Info = "info"

	// Warning outputs warning and error messages.
	Warning = "warning"

	// Error outputs error messages only.
	Error = "error"
)

// Config defines the configuration of the logger.
type Config struct {
	// Level is the minimum level written. Unknown values fall back to "info".
	//
	// This setting can be configured via:
	//   - YAML configuration with the "level" key
	//   - Environment variable ZAP_LOGGER_LEVEL
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// EnableTracing adds trace correlation fields to the *WithContext methods.
	// When the context carries an X-Ray segment the entry gets:
	//   - "xray_trace_id": the trace identifier of the segment
	//   - "segment_id": the identifier of the current open segment
	//
	// When the context carries a recording OpenTelemetry span it also gets:
	//   - "trace_id" and "span_id"
	//
	// This setting can be configured via:
	//   - YAML configuration with the "enable_tracing" key
	//   - Environment variable LOGGER_ENABLE_TRACING
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`

	// ServiceName populates the "service" field of every entry.
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`

	// CallerSkip is the number of stack frames skipped when reporting the caller.
	// Use 1 (the default) when calling the logger directly and add one per wrapper layer.
	CallerSkip int `yaml:"caller_skip" envconfig:"LOGGER_CALLER_SKIP"`
}
