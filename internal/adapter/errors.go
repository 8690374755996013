package adapter

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-chat-client/models"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")

	// ErrTransport wraps failures that produced no HTTP response at all
	// (connection refused, timeout, cancelled context).
	ErrTransport = errors.New("transport unavailable")

	// ErrEmptyToken is returned when a login or refresh response carries no
	// access token.
	ErrEmptyToken = errors.New("server returned an empty access token")
)

// HTTPError is a non-2xx response. It carries the status and the request
// that produced it, unchanged.
type HTTPError struct {
	StatusCode int
	Body       string
	Request    models.APIRequest

	sentinel error
}

func (e *HTTPError) Error() string {
	body := e.Body
	if body == "" {
		body = http.StatusText(e.StatusCode)
	}
	if e.sentinel != nil {
		return fmt.Sprintf("%s %s: %v: %s", e.Request.Method, e.Request.Path, e.sentinel, body)
	}
	return fmt.Sprintf("%s %s: http %d: %s", e.Request.Method, e.Request.Path, e.StatusCode, body)
}

// Unwrap returns the status sentinel, nil for statuses without one.
func (e *HTTPError) Unwrap() error {
	return e.sentinel
}

// StatusOf returns the HTTP status carried by err, or zero when err is not
// an *HTTPError.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
