package config

import (
	"fmt"
	"time"
)

// Storage drivers accepted by [ClientStorage.Driver].
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// CredentialKey seals persisted credentials when non-empty.
	CredentialKey string
	// LoginURL is the login boundary for the fallback termination path.
	LoginURL string
}

// ClientAdapter holds network settings used by the request transport.
type ClientAdapter struct {
	// HTTPAddress is the API base address.
	HTTPAddress string
	// RequestTimeout is the timeout for every outbound request.
	RequestTimeout time.Duration
	// LoginPath and RefreshPath are exempt from bearer attachment and
	// from triggering a refresh.
	LoginPath   string
	RefreshPath string
	// AuthExpiredStatuses are the statuses that start a refresh cycle.
	AuthExpiredStatuses []int
}

// ClientRealtime holds the websocket/STOMP transport settings.
type ClientRealtime struct {
	WebsocketURL      string
	ReconnectDelay    time.Duration
	HandshakeTimeout  time.Duration
	HeartbeatOutgoing time.Duration
	HeartbeatIncoming time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the sqlite file path.
	DSN string
}

// ClientRedis contains redis connection settings for the client.
type ClientRedis struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// Driver is DriverSQLite or DriverRedis.
	Driver string
	// DB holds local database settings.
	DB ClientDB
	// Redis holds redis settings.
	Redis ClientRedis
	// CredentialKey seals persisted values when non-empty.
	CredentialKey string
}

// ClientLogging holds log destination settings.
type ClientLogging struct {
	File  string
	Level string
}

// ClientMetrics holds the metrics worker settings.
type ClientMetrics struct {
	// Address is empty when the worker is disabled.
	Address string
}

// ClientSession holds the headless-login settings.
type ClientSession struct {
	Username      string
	Password      string
	Conversations []int64
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App      ClientApp
	Adapter  ClientAdapter
	Realtime ClientRealtime
	Storage  ClientStorage
	Logging  ClientLogging
	Metrics  ClientMetrics
	Session  ClientSession
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps the fields of cfg relevant to the client runtime.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			CredentialKey: cfg.App.CredentialKey,
			LoginURL:      cfg.App.LoginURL,
		},
		Adapter: ClientAdapter{
			HTTPAddress:         cfg.Adapter.HTTPAddress,
			RequestTimeout:      cfg.Adapter.RequestTimeout,
			LoginPath:           cfg.Adapter.LoginPath,
			RefreshPath:         cfg.Adapter.RefreshPath,
			AuthExpiredStatuses: append([]int(nil), cfg.Adapter.AuthExpiredStatuses...),
		},
		Realtime: ClientRealtime{
			WebsocketURL:      cfg.Realtime.WebsocketURL,
			ReconnectDelay:    cfg.Realtime.ReconnectDelay,
			HandshakeTimeout:  cfg.Realtime.HandshakeTimeout,
			HeartbeatOutgoing: cfg.Realtime.HeartbeatOutgoing,
			HeartbeatIncoming: cfg.Realtime.HeartbeatIncoming,
		},
		Storage: ClientStorage{
			Driver: cfg.Storage.Driver,
			DB:     ClientDB{DSN: cfg.Storage.DB.DSN},
			Redis: ClientRedis{
				Address:  cfg.Storage.Redis.Address,
				Password: cfg.Storage.Redis.Password,
				DB:       cfg.Storage.Redis.DB,
				Prefix:   cfg.Storage.Redis.Prefix,
			},
			CredentialKey: cfg.App.CredentialKey,
		},
		Logging: ClientLogging{File: cfg.Logging.File, Level: cfg.Logging.Level},
		Metrics: ClientMetrics{Address: cfg.Metrics.Address},
		Session: ClientSession{
			Username:      cfg.Session.Username,
			Password:      cfg.Session.Password,
			Conversations: append([]int64(nil), cfg.Session.Conversations...),
		},
	}
}
