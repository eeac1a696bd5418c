package collector

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport covers network failures, timeouts and non-2xx responses.
	ErrTransport = errors.New("transport error")
	// ErrNotFound is reported when the API answers with status NOT FOUND.
	ErrNotFound = errors.New("not found")
	ErrNoData   = errors.New("no data returned")
	ErrDecode   = errors.New("decode response")
)

// HTTPError is a failed round trip: either no response at all (StatusCode 0) or a non-2xx one.
type HTTPError struct {
	StatusCode int
	Status     string
	Err        error
}

func newHTTPError(statusCode int, err error) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Err:        err,
	}
}

func (e *HTTPError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("%d %s: %v", e.StatusCode, e.Status, e.Err)
}

func (e *HTTPError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// APIError is an application-level failure reported in the response body.
type APIError struct {
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api status %s", e.Status)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return ErrNotFound
}
