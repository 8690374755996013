// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserInfo is the identity snapshot returned by the login, refresh and
// /api/auth/me endpoints and persisted next to the access token.
type UserInfo struct {
	// ID is the server-side user identifier. It addresses the per-user
	// notification topic.
	ID int64 `json:"id"`

	// Username is the login name.
	Username string `json:"username"`

	// Nickname is the display name.
	Nickname string `json:"nickname"`

	// AvatarURL points at the user's avatar image.
	AvatarURL string `json:"avatarUrl"`
}

// Credential is the process-wide session credential held by the credential
// store. It is mutated only by login, refresh and logout.
type Credential struct {
	// AccessToken is the short-lived bearer token attached to API calls and
	// to the realtime connect frame. Empty means "no credential".
	AccessToken string `json:"-"`

	// UserInfo is the cached identity snapshot. Nil until the first login,
	// refresh or /me call succeeds.
	UserInfo *UserInfo `json:"-"`

	// RefreshToken is the cached refresh artifact (the value of the refresh
	// cookie). The refresh endpoint reads it from the cookie jar, never from
	// this field directly.
	RefreshToken string `json:"-"`
}

// IsEmpty reports whether the credential carries no access token.
func (c Credential) IsEmpty() bool {
	return c.AccessToken == ""
}

// UserID returns the identity's ID, or zero when no identity is cached.
func (c Credential) UserID() int64 {
	if c.UserInfo == nil {
		return 0
	}
	return c.UserInfo.ID
}

// ExpiresAt returns the "exp" claim of the access token. The token is parsed
// without signature verification because the client never holds the signing
// key. A zero time is returned when the token is empty or carries no expiry.
func (c Credential) ExpiresAt() time.Time {
	if c.AccessToken == "" {
		return time.Time{}
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.AccessToken, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}

	return claims.ExpiresAt.Time
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// LoginResponse is returned by both the login and the refresh endpoints.
type LoginResponse struct {
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType,omitempty"`
	UserInfo    UserInfo `json:"userInfo"`
}
