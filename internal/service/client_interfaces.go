package service

import (
	"context"

	"github.com/MKhiriev/go-chat-client/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// RefreshCoordinator is the application's entry point for authenticated API
// calls. It recovers from an expired access token by running at most one
// refresh at a time and replaying every call that failed meanwhile.
type RefreshCoordinator interface {
	// Do sends req. When the server reports an expired token, Do refreshes
	// the credential (or queues behind the refresh in progress) and replays
	// req with the new token. A failed refresh clears the credential, ends
	// the session and is returned to every waiting caller.
	Do(ctx context.Context, req models.APIRequest) (models.APIResponse, error)

	// OnSessionExpired registers the callback run once per failed refresh
	// cycle. A later registration replaces the earlier one.
	OnSessionExpired(fn func())

	// LoginRequired is signalled when the session ends and no callback is
	// registered.
	LoginRequired() <-chan struct{}
}

// ClientAuthService manages the login session on top of the coordinator.
type ClientAuthService interface {
	// Login authenticates against the server and stores the credential
	// together with the refresh cookie.
	Login(ctx context.Context, req models.LoginRequest) (models.UserInfo, error)

	// Initialize restores the persisted credential and verifies it with
	// GET /api/auth/me, refreshing it when expired. Concurrent calls share
	// one flight. ErrNotLoggedIn is returned when nothing is persisted.
	Initialize(ctx context.Context) (models.UserInfo, error)

	// Logout tells the server to drop the refresh cookie and clears the
	// credential. The server call is best effort.
	Logout(ctx context.Context) error

	// PendingRequests lists friend and group requests awaiting the user.
	PendingRequests(ctx context.Context) ([]models.PendingRequest, error)
}
