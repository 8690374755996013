// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the response-body strings the chat server writes for
// authentication failures. The client matches them to tell a rejected
// password from a rejected refresh artifact.
package app

const (
	// MsgLoginFailedPrefix starts the 401 body of a rejected login.
	MsgLoginFailedPrefix = "登录失败"

	// MsgInvalidRefreshToken is the 401 body of a refresh call whose cookie
	// is missing, expired or forged.
	MsgInvalidRefreshToken = "Invalid Refresh Token"

	// MsgRefreshUserDisabled is the 401 body of a refresh call whose user
	// was disabled or locked since the cookie was issued.
	MsgRefreshUserDisabled = "User associated with Refresh Token is invalid or disabled."

	// MsgNotAuthenticated is the 401 body of /api/auth/me without a
	// principal.
	MsgNotAuthenticated = "Not authenticated"
)
