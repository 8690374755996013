package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/segmentio/encoding/json"

	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/models"
)

type credentialStore struct {
	repo   CredentialRepository
	logger *logger.Logger

	mu      sync.RWMutex
	current models.Credential
}

// NewCredentialStore returns a [CredentialStore] that writes through to
// repo. A nil repo keeps the credential in memory only.
func NewCredentialStore(repo CredentialRepository, log *logger.Logger) CredentialStore {
	return &credentialStore{repo: repo, logger: log}
}

func cloneCredential(c models.Credential) models.Credential {
	if c.UserInfo != nil {
		info := *c.UserInfo
		c.UserInfo = &info
	}
	return c
}

func (s *credentialStore) Get() models.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCredential(s.current)
}

func (s *credentialStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.AccessToken
}

// Set updates the in-memory credential first, so a persistence failure never
// leaves callers with a stale token.
func (s *credentialStore) Set(ctx context.Context, cred models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = cloneCredential(cred)
	if exp := cred.ExpiresAt(); !exp.IsZero() {
		s.logger.Debug().Time("expires_at", exp).Msg("access token updated")
	}
	if s.repo == nil {
		return nil
	}

	var errs []error
	putOrDelete := func(key, value string) {
		var err error
		if value == "" {
			err = s.repo.Delete(ctx, key)
		} else {
			err = s.repo.Put(ctx, key, value)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	putOrDelete(KeyAccessToken, cred.AccessToken)

	var userInfo string
	if cred.UserInfo != nil {
		raw, err := json.Marshal(cred.UserInfo)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", KeyUserInfo, err))
		} else {
			userInfo = string(raw)
		}
	}
	putOrDelete(KeyUserInfo, userInfo)
	putOrDelete(KeyRefreshToken, cred.RefreshToken)

	if len(errs) > 0 {
		err := errors.Join(errs...)
		s.logger.Err(err).Str("func", "credentialStore.Set").Msg("credential kept in memory only")
		return fmt.Errorf("%w: %w", ErrPersistingCredential, err)
	}
	return nil
}

func (s *credentialStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = models.Credential{}
	if s.repo == nil {
		return nil
	}

	if err := s.repo.Delete(ctx, CredentialKeys...); err != nil {
		s.logger.Err(err).Str("func", "credentialStore.Clear").Msg("failed to erase persisted credential")
		return fmt.Errorf("%w: %w", ErrPersistingCredential, err)
	}
	return nil
}

// Load reads every persisted part. Missing parts stay empty; an unreadable
// identity is dropped and re-fetched by session initialisation.
func (s *credentialStore) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	var cred models.Credential
	get := func(key string) (string, error) {
		v, err := s.repo.Get(ctx, key)
		if errors.Is(err, ErrCredentialNotFound) {
			return "", nil
		}
		return v, err
	}

	var err error
	if cred.AccessToken, err = get(KeyAccessToken); err != nil {
		return fmt.Errorf("load %s: %w", KeyAccessToken, err)
	}
	if cred.RefreshToken, err = get(KeyRefreshToken); err != nil {
		return fmt.Errorf("load %s: %w", KeyRefreshToken, err)
	}

	raw, err := get(KeyUserInfo)
	if err != nil {
		return fmt.Errorf("load %s: %w", KeyUserInfo, err)
	}
	if raw != "" {
		var info models.UserInfo
		if err := json.Unmarshal([]byte(raw), &info); err != nil {
			s.logger.Warn().Err(err).Str("func", "credentialStore.Load").Msg("dropping unreadable persisted identity")
		} else {
			cred.UserInfo = &info
		}
	}

	s.mu.Lock()
	s.current = cred
	s.mu.Unlock()

	s.logger.Debug().
		Str("func", "credentialStore.Load").
		Bool("has_token", cred.AccessToken != "").
		Bool("has_identity", cred.UserInfo != nil).
		Msg("credential restored")
	return nil
}
