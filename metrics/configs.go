package metrics

// Default listen addresses of the two metrics endpoints.
const (
	DefaultSystemMetricsAddress      = ":9090"
	DefaultApplicationMetricsAddress = ":9091"
)

// Config controls the metrics endpoints.
//
// Addresses are pointers so that nil selects the default while an empty
// string disables the endpoint.
type Config struct {
	// SystemMetricsAddress serves Go runtime, process and build info collectors.
	//
	// Default: ":9090"
	SystemMetricsAddress *string `yaml:"system_metrics_address" envconfig:"METRICS_SYSTEM_ADDRESS"`

	// ApplicationMetricsAddress serves the xray_* operation metrics.
	//
	// Default: ":9091"
	ApplicationMetricsAddress *string `yaml:"application_metrics_address" envconfig:"METRICS_APPLICATION_ADDRESS"`

	// ServiceName is attached to every metric as the "service" label.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`
}

// Ptr returns a pointer to s, for filling the address fields inline.
func Ptr(s string) *string {
	return &s
}

func addressOrDefault(addr *string, def string) string {
	if addr == nil {
		return def
	}
	return *addr
}
