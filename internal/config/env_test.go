// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_CREDENTIAL_KEY": "passphrase",
		"APP_LOGIN_URL":      "/signin",

		"ADAPTER_ADDRESS":               "http://localhost:8080",
		"ADAPTER_REQUEST_TIMEOUT":       "30s",
		"ADAPTER_LOGIN_PATH":            "/api/auth/login",
		"ADAPTER_REFRESH_PATH":          "/api/auth/refresh",
		"ADAPTER_AUTH_EXPIRED_STATUSES": "401,403",

		"REALTIME_URL":                "ws://localhost:8080/ws/websocket",
		"REALTIME_RECONNECT_DELAY":    "5s",
		"REALTIME_HANDSHAKE_TIMEOUT":  "10s",
		"REALTIME_HEARTBEAT_OUTGOING": "20s",

		"STORAGE_DRIVER":        "redis",
		"STORAGE_DB_DSN":        "/tmp/chat.db",
		"STORAGE_REDIS_ADDRESS": "localhost:6379",
		"STORAGE_REDIS_DB":      "2",

		"LOG_LEVEL":             "info",
		"METRICS_ADDRESS":       "localhost:9100",
		"SESSION_USERNAME":      "alice",
		"SESSION_CONVERSATIONS": "5,9",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "passphrase", cfg.App.CredentialKey)
	assert.Equal(t, "/signin", cfg.App.LoginURL)

	assert.Equal(t, "http://localhost:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, []int{401, 403}, cfg.Adapter.AuthExpiredStatuses)

	assert.Equal(t, "ws://localhost:8080/ws/websocket", cfg.Realtime.WebsocketURL)
	assert.Equal(t, 5*time.Second, cfg.Realtime.ReconnectDelay)
	assert.Equal(t, 10*time.Second, cfg.Realtime.HandshakeTimeout)
	assert.Equal(t, 20*time.Second, cfg.Realtime.HeartbeatOutgoing)

	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/chat.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Address)
	assert.Equal(t, 2, cfg.Storage.Redis.DB)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "localhost:9100", cfg.Metrics.Address)
	assert.Equal(t, "alice", cfg.Session.Username)
	assert.Equal(t, []int64{5, 9}, cfg.Session.Conversations)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"ADAPTER_REQUEST_TIMEOUT": "soon"})

	err := parseEnv(&StructuredConfig{})
	assert.Error(t, err)
}

func TestParseEnv_Empty(t *testing.T) {
	setEnvVars(t, map[string]string{})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",
		"APP_CREDENTIAL_KEY", "APP_LOGIN_URL",
		"ADAPTER_ADDRESS", "ADAPTER_REQUEST_TIMEOUT", "ADAPTER_LOGIN_PATH",
		"ADAPTER_REFRESH_PATH", "ADAPTER_AUTH_EXPIRED_STATUSES",
		"REALTIME_URL", "REALTIME_RECONNECT_DELAY", "REALTIME_HANDSHAKE_TIMEOUT",
		"REALTIME_HEARTBEAT_OUTGOING", "REALTIME_HEARTBEAT_INCOMING",
		"STORAGE_DRIVER", "STORAGE_DB_DSN", "STORAGE_REDIS_ADDRESS",
		"STORAGE_REDIS_PASSWORD", "STORAGE_REDIS_DB", "STORAGE_REDIS_PREFIX",
		"LOG_FILE", "LOG_LEVEL", "METRICS_ADDRESS",
		"SESSION_USERNAME", "SESSION_PASSWORD", "SESSION_CONVERSATIONS",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}
