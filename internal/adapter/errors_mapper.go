package adapter

import (
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-chat-client/models"
)

func mapHTTPError(resp *resty.Response, req models.APIRequest) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	return NewHTTPError(resp.StatusCode(), strings.TrimSpace(string(resp.Body())), req)
}

// NewHTTPError builds the error for a non-2xx status, wrapping the matching
// status sentinel.
func NewHTTPError(status int, body string, req models.APIRequest) *HTTPError {
	httpErr := &HTTPError{
		StatusCode: status,
		Body:       body,
		Request:    req,
	}

	switch status {
	case http.StatusBadRequest:
		httpErr.sentinel = ErrBadRequest
	case http.StatusUnauthorized:
		httpErr.sentinel = ErrUnauthorized
	case http.StatusForbidden:
		httpErr.sentinel = ErrForbidden
	case http.StatusNotFound:
		httpErr.sentinel = ErrNotFound
	case http.StatusConflict:
		httpErr.sentinel = ErrConflict
	case http.StatusBadGateway:
		httpErr.sentinel = ErrBadGateway
	case http.StatusInternalServerError:
		httpErr.sentinel = ErrInternalServerError
	}

	return httpErr
}
