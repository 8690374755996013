package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with snake_case JSON keys
// and string durations.
type StructuredJSONConfig struct {
	App struct {
		CredentialKey string `json:"credential_key"`
		LoginURL      string `json:"login_url"`
	} `json:"app,omitempty"`

	Adapter struct {
		HTTPAddress         string   `json:"http_address"`
		RequestTimeout      Duration `json:"request_timeout"`
		LoginPath           string   `json:"login_path"`
		RefreshPath         string   `json:"refresh_path"`
		AuthExpiredStatuses []int    `json:"auth_expired_statuses"`
	} `json:"adapter,omitempty"`

	Realtime struct {
		WebsocketURL      string   `json:"websocket_url"`
		ReconnectDelay    Duration `json:"reconnect_delay"`
		HandshakeTimeout  Duration `json:"handshake_timeout"`
		HeartbeatOutgoing Duration `json:"heartbeat_outgoing"`
		HeartbeatIncoming Duration `json:"heartbeat_incoming"`
	} `json:"realtime,omitempty"`

	Storage struct {
		Driver string `json:"driver"`
		DB     struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
			Prefix   string `json:"prefix"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Logging struct {
		File  string `json:"file"`
		Level string `json:"level"`
	} `json:"logging,omitempty"`

	Metrics struct {
		Address string `json:"address"`
	} `json:"metrics,omitempty"`

	Session struct {
		Username      string  `json:"username"`
		Password      string  `json:"password"`
		Conversations []int64 `json:"conversations"`
	} `json:"session,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			CredentialKey: jsonCfg.App.CredentialKey,
			LoginURL:      jsonCfg.App.LoginURL,
		},
		Adapter: Adapter{
			HTTPAddress:         jsonCfg.Adapter.HTTPAddress,
			RequestTimeout:      time.Duration(jsonCfg.Adapter.RequestTimeout),
			LoginPath:           jsonCfg.Adapter.LoginPath,
			RefreshPath:         jsonCfg.Adapter.RefreshPath,
			AuthExpiredStatuses: jsonCfg.Adapter.AuthExpiredStatuses,
		},
		Realtime: Realtime{
			WebsocketURL:      jsonCfg.Realtime.WebsocketURL,
			ReconnectDelay:    time.Duration(jsonCfg.Realtime.ReconnectDelay),
			HandshakeTimeout:  time.Duration(jsonCfg.Realtime.HandshakeTimeout),
			HeartbeatOutgoing: time.Duration(jsonCfg.Realtime.HeartbeatOutgoing),
			HeartbeatIncoming: time.Duration(jsonCfg.Realtime.HeartbeatIncoming),
		},
		Storage: Storage{
			Driver: jsonCfg.Storage.Driver,
			DB:     DB{DSN: jsonCfg.Storage.DB.DSN},
			Redis: Redis{
				Address:  jsonCfg.Storage.Redis.Address,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
				Prefix:   jsonCfg.Storage.Redis.Prefix,
			},
		},
		Logging: Logging{File: jsonCfg.Logging.File, Level: jsonCfg.Logging.Level},
		Metrics: Metrics{Address: jsonCfg.Metrics.Address},
		Session: Session{
			Username:      jsonCfg.Session.Username,
			Password:      jsonCfg.Session.Password,
			Conversations: jsonCfg.Session.Conversations,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
