// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-chat-client application. It is populated by merging built-in defaults,
// an optional JSON file, environment variables and command-line flags.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Adapter holds the request/response API settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Realtime holds the websocket/STOMP settings.
	Realtime Realtime `envPrefix:"REALTIME_"`

	// Storage holds credential persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Logging controls log destination and level.
	Logging Logging `envPrefix:"LOG_"`

	// Metrics controls the metrics/health HTTP worker.
	Metrics Metrics `envPrefix:"METRICS_"`

	// Session holds optional login credentials and conversations to follow
	// for the headless client.
	Session Session `envPrefix:"SESSION_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// CredentialKey is the passphrase used to seal the persisted access
	// token and refresh artifact. Empty stores them unsealed.
	// Env: APP_CREDENTIAL_KEY
	CredentialKey string `env:"CREDENTIAL_KEY"`

	// LoginURL is the login boundary reported when the session terminates
	// and no termination callback is registered.
	// Env: APP_LOGIN_URL
	LoginURL string `env:"LOGIN_URL"`
}

// Adapter holds the settings of the request/response channel.
type Adapter struct {
	// HTTPAddress is the API base address, e.g. "http://localhost:8080".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound API call, the refresh call
	// included.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// LoginPath is the login endpoint path. Requests whose path ends with it
	// never carry a bearer token and never trigger a refresh.
	// Env: ADAPTER_LOGIN_PATH
	LoginPath string `env:"LOGIN_PATH"`

	// RefreshPath is the refresh endpoint path, exempt like LoginPath.
	// Env: ADAPTER_REFRESH_PATH
	RefreshPath string `env:"REFRESH_PATH"`

	// AuthExpiredStatuses lists the HTTP statuses treated as an expired
	// access token.
	// Env: ADAPTER_AUTH_EXPIRED_STATUSES (comma separated)
	AuthExpiredStatuses []int `env:"AUTH_EXPIRED_STATUSES" envSeparator:","`
}

// Realtime holds the settings of the publish/subscribe channel.
type Realtime struct {
	// WebsocketURL is the broker endpoint, e.g. "ws://localhost:8080/ws/websocket".
	// Env: REALTIME_URL
	WebsocketURL string `env:"URL"`

	// ReconnectDelay is the fixed delay between reconnect attempts.
	// Env: REALTIME_RECONNECT_DELAY
	ReconnectDelay time.Duration `env:"RECONNECT_DELAY"`

	// HandshakeTimeout bounds the websocket upgrade.
	// Env: REALTIME_HANDSHAKE_TIMEOUT
	HandshakeTimeout time.Duration `env:"HANDSHAKE_TIMEOUT"`

	// HeartbeatOutgoing is the STOMP heart-beat the client offers to send.
	// Env: REALTIME_HEARTBEAT_OUTGOING
	HeartbeatOutgoing time.Duration `env:"HEARTBEAT_OUTGOING"`

	// HeartbeatIncoming is the STOMP heart-beat the client wants to receive.
	// Env: REALTIME_HEARTBEAT_INCOMING
	HeartbeatIncoming time.Duration `env:"HEARTBEAT_INCOMING"`
}

// Storage groups credential persistence settings.
type Storage struct {
	// Driver selects the repository: "sqlite" or "redis".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DB holds the sqlite settings.
	DB DB `envPrefix:"DB_"`

	// Redis holds the redis settings.
	Redis Redis `envPrefix:"REDIS_"`
}

// DB holds sqlite connection settings.
type DB struct {
	// DSN is the sqlite file path.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Redis holds redis connection settings.
type Redis struct {
	// Address is "host:port".
	// Env: STORAGE_REDIS_ADDRESS
	Address string `env:"ADDRESS"`
	// Password is optional.
	// Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`
	// DB is the logical database index.
	// Env: STORAGE_REDIS_DB
	DB int `env:"DB"`
	// Prefix namespaces the credential keys.
	// Env: STORAGE_REDIS_PREFIX
	Prefix string `env:"PREFIX"`
}

// Logging controls the client log output.
type Logging struct {
	// File is the log file path. Empty writes next to the executable.
	// Env: LOG_FILE
	File string `env:"FILE"`
	// Level is a zerolog level name.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// Metrics controls the metrics/health HTTP worker.
type Metrics struct {
	// Address is "host:port"; empty disables the worker.
	// Env: METRICS_ADDRESS
	Address string `env:"ADDRESS"`
}

// Session holds optional headless-login settings.
type Session struct {
	// Username used when no credential is persisted.
	// Env: SESSION_USERNAME
	Username string `env:"USERNAME"`
	// Password used when no credential is persisted.
	// Env: SESSION_PASSWORD
	Password string `env:"PASSWORD"`
	// Conversations lists conversation IDs to follow.
	// Env: SESSION_CONVERSATIONS (comma separated)
	Conversations []int64 `env:"CONVERSATIONS" envSeparator:","`
}

// defaults returns the built-in values that every other source overrides.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{LoginURL: "/login"},
		Adapter: Adapter{
			HTTPAddress:         "http://localhost:8080",
			RequestTimeout:      15 * time.Second,
			LoginPath:           "/api/auth/login",
			RefreshPath:         "/api/auth/refresh",
			AuthExpiredStatuses: []int{401, 403},
		},
		Realtime: Realtime{
			WebsocketURL:     "ws://localhost:8080/ws/websocket",
			ReconnectDelay:   5 * time.Second,
			HandshakeTimeout: 15 * time.Second,
		},
		Storage: Storage{
			Driver: DriverSQLite,
			DB:     DB{DSN: "chat-client.db"},
			Redis:  Redis{Prefix: "chat-client"},
		},
		Logging: Logging{Level: "debug"},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources. Later sources win for non-zero
// fields:
//  1. Built-in defaults
//  2. JSON file (path resolved from env and flags)
//  3. Environment variables
//  4. Command-line flags
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags().
		withJSON().
		build()
}
