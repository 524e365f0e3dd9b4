package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx answer from the backend.
//
// Detail carries the backend's own explanation ({"detail": ...}) when the body
// has one, otherwise the HTTP status text.
type APIError struct {
	Endpoint   string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.StatusCode, e.Detail)
}

// newAPIError extracts the detail message from an error body.
// FastAPI sends a string for HTTPException and a list of objects for
// validation failures; the latter is kept as compact JSON.
func newAPIError(endpoint string, status int, body []byte) *APIError {
	e := &APIError{Endpoint: endpoint, StatusCode: status, Detail: http.StatusText(status)}

	var wire struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &wire); err != nil || len(wire.Detail) == 0 || string(wire.Detail) == "null" {
		return e
	}
	var s string
	if err := json.Unmarshal(wire.Detail, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			e.Detail = s
		}
		return e
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, wire.Detail); err == nil {
		e.Detail = compact.String()
	}
	return e
}
