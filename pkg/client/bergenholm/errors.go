package bergenholm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned by Get when the resource does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrMalformedBody is returned when a successful read does not carry a JSON object.
var ErrMalformedBody = errors.New("malformed response body")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Reason     string
}

// Error formats the failure the way HTTP client libraries usually report it,
// for example "404 Client Error: Not Found for url: http://host/api/1.0/hosts/x".
func (e *StatusError) Error() string {
	class := "Client"
	if e.StatusCode >= http.StatusInternalServerError {
		class = "Server"
	}

	reason := e.Reason
	if reason == "" {
		reason = http.StatusText(e.StatusCode)
	}

	return fmt.Sprintf("%d %s Error: %s for url: %s", e.StatusCode, class, reason, e.URL)
}

// HTTPStatusCode returns the response status code.
func (e *StatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Is makes errors.Is(err, ErrNotFound) hold for 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
