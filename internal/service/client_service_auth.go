package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-chat-client/internal/adapter"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/store"
	"github.com/MKhiriev/go-chat-client/models"
)

type clientAuthService struct {
	transport   adapter.APITransport
	creds       store.CredentialStore
	coordinator RefreshCoordinator
	log         *logger.Logger

	flight singleflight.Group
}

func NewClientAuthService(transport adapter.APITransport, creds store.CredentialStore, coordinator RefreshCoordinator, log *logger.Logger) ClientAuthService {
	return &clientAuthService{
		transport:   transport,
		creds:       creds,
		coordinator: coordinator,
		log:         log.Component("auth"),
	}
}

func (a *clientAuthService) Login(ctx context.Context, req models.LoginRequest) (models.UserInfo, error) {
	if req.Username == "" || req.Password == "" {
		return models.UserInfo{}, fmt.Errorf("%w: username and password are required", ErrInvalidDataProvided)
	}

	resp, err := a.transport.Login(ctx, req)
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAdapterError(err))
	}

	userInfo := resp.UserInfo
	cred := models.Credential{
		AccessToken:  resp.AccessToken,
		UserInfo:     &userInfo,
		RefreshToken: a.transport.RefreshCookie(),
	}
	if err = a.creds.Set(ctx, cred); err != nil {
		a.log.Err(err).Msg("credential kept in memory only")
	}

	a.log.Info().Int64("user_id", userInfo.ID).Str("username", userInfo.Username).Msg("logged in")
	return userInfo, nil
}

func (a *clientAuthService) Initialize(ctx context.Context) (models.UserInfo, error) {
	v, err, shared := a.flight.Do("initialize", func() (any, error) {
		return a.initialize(ctx)
	})
	if shared {
		a.log.Debug().Msg("initialize shared with a concurrent caller")
	}
	if err != nil {
		return models.UserInfo{}, err
	}
	return v.(models.UserInfo), nil
}

func (a *clientAuthService) initialize(ctx context.Context) (models.UserInfo, error) {
	if err := a.creds.Load(ctx); err != nil {
		return models.UserInfo{}, fmt.Errorf("%w: %w", ErrLoadingCredential, err)
	}

	cred := a.creds.Get()
	if cred.IsEmpty() {
		return models.UserInfo{}, ErrNotLoggedIn
	}
	if cred.RefreshToken != "" {
		a.transport.SetRefreshCookie(cred.RefreshToken)
	}

	resp, err := a.coordinator.Do(ctx, adapter.MeRequest())
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return models.UserInfo{}, err
		}
		return models.UserInfo{}, fmt.Errorf("error verifying persisted credential: %w", mapAdapterError(err))
	}

	var userInfo models.UserInfo
	if err = resp.DecodeJSON(&userInfo); err != nil {
		return models.UserInfo{}, fmt.Errorf("%w: %w", ErrDecodingResponse, err)
	}

	// the coordinator may have refreshed the token meanwhile
	cred = a.creds.Get()
	cred.UserInfo = &userInfo
	if err = a.creds.Set(ctx, cred); err != nil {
		a.log.Err(err).Msg("identity kept in memory only")
	}

	a.log.Info().Int64("user_id", userInfo.ID).Msg("session restored")
	return userInfo, nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	if err := a.transport.Logout(ctx); err != nil {
		a.log.Warn().Err(err).Msg("server logout failed, clearing local credential anyway")
	}

	if err := a.creds.Clear(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrClearingCredential, err)
	}

	a.log.Info().Msg("logged out")
	return nil
}

func (a *clientAuthService) PendingRequests(ctx context.Context) ([]models.PendingRequest, error) {
	resp, err := a.coordinator.Do(ctx, adapter.PendingRequestsRequest())
	if err != nil {
		return nil, err
	}

	var pending []models.PendingRequest
	if err = resp.DecodeJSON(&pending); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingResponse, err)
	}
	return pending, nil
}
