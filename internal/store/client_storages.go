package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chat-client/internal/config"
	"github.com/MKhiriev/go-chat-client/internal/crypto"
	"github.com/MKhiriev/go-chat-client/internal/logger"
)

// ClientStorages groups all client-side storage components into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// Credentials is the process-wide credential store.
	Credentials CredentialStore

	// Repository is the persistence boundary behind Credentials. It is
	// closed by [ClientStorages.Close].
	Repository CredentialRepository
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens the repository selected by cfg.Driver: an SQLite file at
//     cfg.DB.DSN (migrated on open) or a redis connection.
//  2. Wraps the repository with a [crypto.Sealer] when cfg.CredentialKey is
//     set.
//  3. Constructs the [CredentialStore] on top of it.
//
// The credential is not loaded; call Credentials.Load.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("driver", cfg.Driver).Msg("creating new storages...")

	var repo CredentialRepository
	switch cfg.Driver {
	case config.DriverSQLite, "":
		db, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		repo = NewSQLiteCredentialRepository(db, log)
	case config.DriverRedis:
		client, err := NewConnectRedis(ctx, cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("redis connection error: %w", err)
		}
		repo = NewRedisCredentialRepository(client, cfg.Redis.Prefix, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	if cfg.CredentialKey != "" {
		sealer, err := crypto.NewSealer(cfg.CredentialKey)
		if err != nil {
			repo.Close()
			return nil, fmt.Errorf("credential sealer: %w", err)
		}
		repo = NewSealedCredentialRepository(repo, sealer)
	}

	return &ClientStorages{
		Credentials: NewCredentialStore(repo, log),
		Repository:  repo,
	}, nil
}

// Close releases the underlying connection.
func (s *ClientStorages) Close() error {
	if s == nil || s.Repository == nil {
		return nil
	}
	return s.Repository.Close()
}
