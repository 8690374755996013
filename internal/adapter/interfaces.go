// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the request/response channel to the chat server.
//
// The primary abstraction is [APITransport], which decouples the service
// layer from HTTP. The package ships a resty-based implementation
// ([NewHTTPTransport]) that attaches the bearer token from a [TokenSource]
// to every call except the login and refresh endpoints.
//
// Non-2xx responses are returned as [*HTTPError], which also wraps the
// status-specific sentinel from errors.go so that callers can use
// [errors.Is] (e.g. [ErrForbidden] for 403, [ErrUnauthorized] for 401) or
// [errors.As] to reach the status and the original request.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-chat-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/api_transport_mock.go -package=mock

// TokenSource yields the access token to attach to outbound requests.
// store.CredentialStore satisfies it.
type TokenSource interface {
	AccessToken() string
}

// APITransport sends requests to the chat server. It never interprets
// 401/403 itself; recovery is the refresh coordinator's job.
type APITransport interface {
	// Send performs req. The Authorization header is taken from req.Header
	// when present, otherwise from the TokenSource, and is omitted for
	// auth endpoints. Non-2xx statuses are returned as *HTTPError together
	// with the response.
	Send(ctx context.Context, req models.APIRequest) (models.APIResponse, error)

	// IsAuthEndpoint reports whether path ends with the login or the
	// refresh path.
	IsAuthEndpoint(path string) bool

	// Login posts the credentials to the login endpoint. The refresh
	// cookie set by the server is kept in the transport's cookie jar.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	// Refresh exchanges the refresh cookie for a new access token.
	Refresh(ctx context.Context) (models.LoginResponse, error)

	// Logout tells the server to drop the refresh cookie.
	Logout(ctx context.Context) error

	// RefreshCookie returns the refresh artifact held in the cookie jar,
	// empty when none is held.
	RefreshCookie() string

	// SetRefreshCookie puts a persisted refresh artifact back into the
	// cookie jar. An empty value expires the cookie.
	SetRefreshCookie(value string)
}
