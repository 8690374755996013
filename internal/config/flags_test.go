package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP with port", addr: NetAddress{Host: "127.0.0.1", Port: 9100}, expected: "127.0.0.1:9100"},
		{name: "empty host", addr: NetAddress{Port: 9100}, expected: ":9100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected NetAddress
		wantErr  bool
	}{
		{name: "localhost", input: "localhost:9100", expected: NetAddress{Host: "localhost", Port: 9100}},
		{name: "ip", input: "10.0.0.1:80", expected: NetAddress{Host: "10.0.0.1", Port: 80}},
		{name: "empty host", input: ":9100", expected: NetAddress{Port: 9100}},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "non numeric port", input: "localhost:abc", wantErr: true},
		{name: "zero port", input: "localhost:0", wantErr: true},
		{name: "bad ip", input: "not-an-ip:80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, addr)
		})
	}
}

func TestInt64List_Set(t *testing.T) {
	var l int64List
	require.NoError(t, l.Set("1, 2,,3"))
	require.NoError(t, l.Set("4"))

	assert.Equal(t, int64List{1, 2, 3, 4}, l)
	assert.Equal(t, "1,2,3,4", l.String())

	assert.Error(t, l.Set("x"))
}

func TestParseFlags_AllFlags(t *testing.T) {
	args := []string{
		"-api", "http://api:8080",
		"-ws", "ws://api:8080/ws/websocket",
		"-request-timeout", "20s",
		"-reconnect-delay", "3s",
		"-handshake-timeout", "4s",
		"-storage", "redis",
		"-d", "/tmp/chat.db",
		"-redis", "localhost:6379",
		"-credential-key", "secret",
		"-login-url", "/signin",
		"-metrics-address", "localhost:9100",
		"-log-file", "/tmp/client.log",
		"-log-level", "warn",
		"-login", "alice",
		"-password", "pw",
		"-conversations", "5,7",
		"-config", "/etc/chat.json",
	}

	cfg, err := ParseFlags(args)
	require.NoError(t, err)

	assert.Equal(t, "http://api:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 20*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "ws://api:8080/ws/websocket", cfg.Realtime.WebsocketURL)
	assert.Equal(t, 3*time.Second, cfg.Realtime.ReconnectDelay)
	assert.Equal(t, 4*time.Second, cfg.Realtime.HandshakeTimeout)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/chat.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Address)
	assert.Equal(t, "secret", cfg.App.CredentialKey)
	assert.Equal(t, "/signin", cfg.App.LoginURL)
	assert.Equal(t, "localhost:9100", cfg.Metrics.Address)
	assert.Equal(t, "/tmp/client.log", cfg.Logging.File)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "alice", cfg.Session.Username)
	assert.Equal(t, "pw", cfg.Session.Password)
	assert.Equal(t, []int64{5, 7}, cfg.Session.Conversations)
	assert.Equal(t, "/etc/chat.json", cfg.JSONFilePath)
}

func TestParseFlags_NoArgs(t *testing.T) {
	cfg, err := ParseFlags(nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.Adapter.HTTPAddress)
	assert.Empty(t, cfg.Metrics.Address)
	assert.Nil(t, cfg.Session.Conversations)
}

func TestParseFlags_ShortConfigAlias(t *testing.T) {
	cfg, err := ParseFlags([]string{"-c", "/etc/chat.json"})
	require.NoError(t, err)
	assert.Equal(t, "/etc/chat.json", cfg.JSONFilePath)
}

func TestParseFlags_InvalidMetricsAddress(t *testing.T) {
	_, err := ParseFlags([]string{"-metrics-address", "nope"})
	assert.Error(t, err)
}
