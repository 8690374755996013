package adapter

import (
	"net/http"

	"github.com/MKhiriev/go-chat-client/models"
)

// Paths of the endpoints the session layer calls besides login and refresh.
const (
	MePath              = "/api/auth/me"
	LogoutPath          = "/api/auth/logout"
	PendingRequestsPath = "/api/user/pending-requests"
)

// RefreshCookieName is the cookie carrying the refresh artifact.
const RefreshCookieName = "refreshToken"

// MeRequest fetches the identity behind the current access token.
func MeRequest() models.APIRequest {
	return models.APIRequest{Method: http.MethodGet, Path: MePath}
}

// PendingRequestsRequest lists friend and group requests awaiting the user.
func PendingRequestsRequest() models.APIRequest {
	return models.APIRequest{Method: http.MethodGet, Path: PendingRequestsPath}
}
