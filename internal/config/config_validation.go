// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/http"
	"strings"
)

// validate checks that the merged [StructuredConfig] is usable. Only the
// checks that do not depend on the selected storage driver live here.
func (cfg *StructuredConfig) validate() error {
	for _, status := range cfg.Adapter.AuthExpiredStatuses {
		if status < http.StatusBadRequest || status > 599 {
			return ErrInvalidAdapterConfigs
		}
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.LoginPath == "" || cfg.Adapter.RefreshPath == "" || len(cfg.Adapter.AuthExpiredStatuses) == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Realtime.WebsocketURL == "" || cfg.Realtime.ReconnectDelay <= 0 {
		return ErrInvalidRealtimeConfigs
	}
	if !strings.HasPrefix(cfg.Realtime.WebsocketURL, "ws://") && !strings.HasPrefix(cfg.Realtime.WebsocketURL, "wss://") {
		return ErrInvalidRealtimeConfigs
	}

	switch cfg.Storage.Driver {
	case DriverSQLite:
		if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
			return ErrInvalidStorageConfigs
		}
	case DriverRedis:
		if cfg.Storage.Redis.Address == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.App.LoginURL == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
