package ctxkey

const (
	// RequestId is the per-request unique identifier.
	// Set in: middleware/request-id. Read in: controllers for log correlation.
	RequestId = "X-Relay-Request-Id"
)
