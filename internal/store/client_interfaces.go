package store

import (
	"context"

	"github.com/MKhiriev/go-chat-client/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// Keys under which the credential parts are persisted.
const (
	KeyAccessToken  = "accessToken"
	KeyUserInfo     = "userInfo"
	KeyRefreshToken = "refreshToken"
)

// CredentialKeys lists every persisted key, in write order.
var CredentialKeys = []string{KeyAccessToken, KeyUserInfo, KeyRefreshToken}

// CredentialStore holds the process-wide session credential. Reads never
// block on persistence; writes go through to the configured repository.
type CredentialStore interface {
	// Get returns a copy of the current credential.
	Get() models.Credential
	// AccessToken returns the current access token, empty when absent.
	AccessToken() string
	// Set replaces the credential and persists it.
	Set(ctx context.Context, cred models.Credential) error
	// Clear removes the credential from memory and from persistence.
	Clear(ctx context.Context) error
	// Load restores the persisted credential into memory.
	Load(ctx context.Context) error
}

// CredentialRepository is a low-level key/value persistence boundary for
// credential parts.
type CredentialRepository interface {
	Put(ctx context.Context, key, value string) error
	// Get returns ErrCredentialNotFound for a missing key.
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
