package service

import "errors"

var (
	// ErrSessionExpired is returned to every caller of a refresh cycle that
	// failed. The credential has been cleared and the session terminated.
	ErrSessionExpired = errors.New("session expired")

	// ErrRefreshFailed wraps the cause of a failed refresh call.
	ErrRefreshFailed = errors.New("token refresh failed")

	// ErrRefreshTokenInvalid is the refresh cause when the server rejected
	// the refresh artifact.
	ErrRefreshTokenInvalid = errors.New("refresh token is invalid")

	// ErrWrongPassword is returned by Login for rejected credentials.
	ErrWrongPassword = errors.New("wrong username or password")

	// ErrNotLoggedIn is returned by Initialize when no credential is
	// persisted.
	ErrNotLoggedIn = errors.New("not logged in")

	ErrLoginOnServer       = errors.New("error logging in on server")
	ErrLoadingCredential   = errors.New("error loading persisted credential")
	ErrClearingCredential  = errors.New("error clearing credential")
	ErrDecodingResponse    = errors.New("error decoding server response")
	ErrInvalidDataProvided = errors.New("invalid data provided")
)
