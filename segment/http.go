package segment

// Namespace values accepted by the daemon for downstream calls.
const (
	NamespaceRemote = "remote"
	NamespaceAWS    = "aws"
)

// HTTPData is the "http" block of a segment, describing an incoming request or an
// outgoing call made by a subsegment.
type HTTPData struct {
	Request  *HTTPRequest  `json:"request,omitempty"`
	Response *HTTPResponse `json:"response,omitempty"`
}

// HTTPRequest holds the request half of HTTPData.
type HTTPRequest struct {
	Method        string `json:"method,omitempty"`
	URL           string `json:"url,omitempty"`
	ClientIP      string `json:"client_ip,omitempty"`
	UserAgent     string `json:"user_agent,omitempty"`
	XForwardedFor bool   `json:"x_forwarded_for,omitempty"`
	Traced        bool   `json:"traced,omitempty"`
}

// HTTPResponse holds the response half of HTTPData.
type HTTPResponse struct {
	Status        int   `json:"status,omitempty"`
	ContentLength int64 `json:"content_length,omitempty"`
}

// SQLData is the "sql" block of a subsegment describing a database query.
// SanitizedQuery must not contain user-supplied values.
type SQLData struct {
	URL             string `json:"url,omitempty"`
	Preparation     string `json:"preparation,omitempty"`
	DatabaseType    string `json:"database_type,omitempty"`
	DatabaseVersion string `json:"database_version,omitempty"`
	DriverVersion   string `json:"driver_version,omitempty"`
	User            string `json:"user,omitempty"`
	SanitizedQuery  string `json:"sanitized_query,omitempty"`
}
