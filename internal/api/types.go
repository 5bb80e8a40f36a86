package api

const (
	// EventInit names the snapshot frame written once when a viewer connects.
	EventInit = "init"
	// EventUpdate names frames carrying newly appended lines.
	EventUpdate = "update"
)

// HeartbeatFrame keeps idle connections open through proxies.
const HeartbeatFrame = ": heartbeat\n\n"

// LinesPayload is the data body of init and update events.
type LinesPayload struct {
	Lines []string `json:"lines"`
}

// NewLinesPayload wraps lines, substituting an empty slice for nil so the
// payload always encodes as a JSON array.
func NewLinesPayload(lines []string) LinesPayload {
	if lines == nil {
		lines = []string{}
	}
	return LinesPayload{Lines: lines}
}

// HealthResponse is the body served at /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Clients  int    `json:"clients"`
	Position int64  `json:"pos"`
}

// ErrorResponse is the body of non-2xx JSON responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
