// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/segmentio/encoding/json"
)

// APIRequest describes one outbound call on the request/response channel.
// It is kept as a plain value so that the refresh coordinator can store it in
// its pending queue and resubmit it unchanged apart from the Authorization
// header.
type APIRequest struct {
	// Method is the HTTP method, e.g. http.MethodGet.
	Method string

	// Path is the request path relative to the API base URL,
	// e.g. "/api/chat/send".
	Path string

	// Query holds optional query parameters.
	Query url.Values

	// Header holds extra request headers. An explicit Authorization header
	// takes precedence over the credential store.
	Header http.Header

	// Body is serialised as JSON when non-nil.
	Body any
}

// WithBearer returns a copy of r whose Authorization header is set to token.
// The receiver's header map is not modified.
func (r APIRequest) WithBearer(token string) APIRequest {
	h := make(http.Header, len(r.Header)+1)
	for k, v := range r.Header {
		h[k] = append([]string(nil), v...)
	}
	h.Set("Authorization", "Bearer "+token)
	r.Header = h
	return r
}

// String implements fmt.Stringer for log output.
func (r APIRequest) String() string {
	return r.Method + " " + r.Path
}

// APIResponse is a successful (2xx) response of the request/response channel.
type APIResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// DecodeJSON unmarshals the response body into v.
func (r APIResponse) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
