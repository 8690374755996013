// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-chat-client/internal/adapter"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/metrics"
	"github.com/MKhiriev/go-chat-client/internal/store"
	"github.com/MKhiriev/go-chat-client/models"
)

type callResult struct {
	resp models.APIResponse
	err  error
}

// pendingCall is a request that hit an expired token while a refresh was
// already running. result is buffered so the replay loop never blocks on a
// caller that stopped waiting.
type pendingCall struct {
	ctx    context.Context
	req    models.APIRequest
	result chan callResult
}

type refreshCoordinator struct {
	transport       adapter.APITransport
	creds           store.CredentialStore
	expiredStatuses []int
	loginURL        string
	metrics         *metrics.Metrics
	log             *logger.Logger

	mu         sync.Mutex
	refreshing bool
	queue      []*pendingCall
	onExpired  func()

	loginRequired chan struct{}
}

// NewRefreshCoordinator builds the coordinator. expiredStatuses are the HTTP
// statuses that mean "access token expired"; loginURL is logged when the
// session ends without a registered callback.
func NewRefreshCoordinator(
	transport adapter.APITransport,
	creds store.CredentialStore,
	expiredStatuses []int,
	loginURL string,
	m *metrics.Metrics,
	log *logger.Logger,
) RefreshCoordinator {
	return &refreshCoordinator{
		transport:       transport,
		creds:           creds,
		expiredStatuses: slices.Clone(expiredStatuses),
		loginURL:        loginURL,
		metrics:         m,
		log:             log.Component("refresh"),
		loginRequired:   make(chan struct{}, 1),
	}
}

func (c *refreshCoordinator) OnSessionExpired(fn func()) {
	c.mu.Lock()
	c.onExpired = fn
	c.mu.Unlock()
}

func (c *refreshCoordinator) LoginRequired() <-chan struct{} {
	return c.loginRequired
}

func (c *refreshCoordinator) Do(ctx context.Context, req models.APIRequest) (models.APIResponse, error) {
	resp, err := c.transport.Send(ctx, req)
	if err == nil || !c.isAuthExpired(req, err) {
		return resp, err
	}

	c.mu.Lock()
	if c.refreshing {
		call := &pendingCall{ctx: ctx, req: req, result: make(chan callResult, 1)}
		c.queue = append(c.queue, call)
		c.mu.Unlock()

		c.metrics.RefreshQueued()
		c.log.Debug().Str("request", req.String()).Msg("refresh in progress, request queued")

		select {
		case res := <-call.result:
			return res.resp, res.err
		case <-ctx.Done():
			return models.APIResponse{}, ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	return c.refresh(ctx, req)
}

func (c *refreshCoordinator) isAuthExpired(req models.APIRequest, err error) bool {
	return slices.Contains(c.expiredStatuses, adapter.StatusOf(err)) && !c.transport.IsAuthEndpoint(req.Path)
}

// refresh runs one refresh cycle on behalf of req. The caller has set the
// refreshing flag.
func (c *refreshCoordinator) refresh(ctx context.Context, req models.APIRequest) (models.APIResponse, error) {
	c.log.Info().Str("request", req.String()).Msg("access token expired, refreshing")

	// a cancelled trigger must not end the session of every queued caller
	loginResp, err := c.transport.Refresh(context.WithoutCancel(ctx))
	if err != nil {
		return models.APIResponse{}, c.fail(ctx, err)
	}

	userInfo := loginResp.UserInfo
	cred := models.Credential{
		AccessToken:  loginResp.AccessToken,
		UserInfo:     &userInfo,
		RefreshToken: c.transport.RefreshCookie(),
	}
	if err = c.creds.Set(context.WithoutCancel(ctx), cred); err != nil {
		c.log.Err(err).Msg("refreshed credential kept in memory only")
	}
	c.metrics.RefreshSucceeded()
	c.clearLoginRequired()
	c.log.Info().Int64("user_id", userInfo.ID).Msg("access token refreshed")

	token := loginResp.AccessToken
	for {
		call, ok := c.pop(true)
		if !ok {
			break
		}
		if err = call.ctx.Err(); err != nil {
			call.result <- callResult{err: err}
			continue
		}
		var res callResult
		res.resp, res.err = c.transport.Send(call.ctx, call.req.WithBearer(token))
		call.result <- res
	}

	return c.transport.Send(ctx, req.WithBearer(token))
}

// fail ends the session after a failed refresh and rejects every queued call.
func (c *refreshCoordinator) fail(ctx context.Context, cause error) error {
	err := fmt.Errorf("%w: %w: %w", ErrSessionExpired, ErrRefreshFailed, mapAdapterError(cause))
	c.log.Err(cause).Msg("token refresh failed, ending session")

	if clearErr := c.creds.Clear(context.WithoutCancel(ctx)); clearErr != nil {
		c.log.Err(clearErr).Msg("failed to clear persisted credential")
	}
	c.transport.SetRefreshCookie("")
	c.metrics.RefreshFailed()

	c.reject(err, false)
	c.terminate()
	// calls queued while the callback ran
	c.reject(err, true)

	return err
}

func (c *refreshCoordinator) reject(err error, reset bool) {
	for {
		call, ok := c.pop(reset)
		if !ok {
			return
		}
		call.result <- callResult{err: err}
	}
}

// pop removes the oldest queued call. When the queue is empty and reset is
// set, the refreshing flag is cleared under the same lock.
func (c *refreshCoordinator) pop(reset bool) (*pendingCall, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.queue) == 0 {
		if reset {
			c.refreshing = false
		}
		return nil, false
	}

	call := c.queue[0]
	c.queue[0] = nil
	c.queue = c.queue[1:]
	return call, true
}

func (c *refreshCoordinator) terminate() {
	c.mu.Lock()
	fn := c.onExpired
	c.mu.Unlock()

	if fn != nil {
		fn()
		return
	}

	c.log.Warn().Str("login_url", c.loginURL).Msg("session expired, login required")
	select {
	case c.loginRequired <- struct{}{}:
	default:
	}
}

// clearLoginRequired drops a signal left by an earlier session end.
func (c *refreshCoordinator) clearLoginRequired() {
	select {
	case <-c.loginRequired:
	default:
	}
}
