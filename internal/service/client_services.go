package service

import (
	"github.com/MKhiriev/go-chat-client/internal/adapter"
	"github.com/MKhiriev/go-chat-client/internal/config"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/metrics"
	"github.com/MKhiriev/go-chat-client/internal/store"
)

type ClientServices struct {
	Coordinator RefreshCoordinator
	AuthService ClientAuthService
}

func NewClientServices(cfg *config.ClientConfig, transport adapter.APITransport, creds store.CredentialStore, m *metrics.Metrics, log *logger.Logger) *ClientServices {
	coordinator := NewRefreshCoordinator(transport, creds, cfg.Adapter.AuthExpiredStatuses, cfg.App.LoginURL, m, log)

	return &ClientServices{
		Coordinator: coordinator,
		AuthService: NewClientAuthService(transport, creds, coordinator, log),
	}
}
