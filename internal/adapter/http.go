package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-chat-client/internal/config"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/utils"
	"github.com/MKhiriev/go-chat-client/models"
)

type httpTransport struct {
	client  *utils.HTTPClient
	baseURL *url.URL
	tokens  TokenSource
	ids     *utils.UUIDGenerator

	loginPath   string
	refreshPath string

	logger *logger.Logger
}

// NewHTTPTransport constructs the resty implementation of [APITransport].
// It normalises and validates the base URL from cfg.HTTPAddress and
// configures the underlying client with it and the request timeout.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPTransport(cfg config.ClientAdapter, tokens TokenSource, log *logger.Logger) (APITransport, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	loginPath, refreshPath := cfg.LoginPath, cfg.RefreshPath
	if loginPath == "" {
		loginPath = "/api/auth/login"
	}
	if refreshPath == "" {
		refreshPath = "/api/auth/refresh"
	}

	return &httpTransport{
		client:      utils.NewAPIClient(baseURL, cfg.RequestTimeout),
		baseURL:     parsed,
		tokens:      tokens,
		ids:         utils.NewUUIDGenerator(),
		loginPath:   loginPath,
		refreshPath: refreshPath,
		logger:      log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// IsAuthEndpoint implements [APITransport].
func (h *httpTransport) IsAuthEndpoint(path string) bool {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return strings.HasSuffix(path, h.loginPath) || strings.HasSuffix(path, h.refreshPath)
}

// Send implements [APITransport].
func (h *httpTransport) Send(ctx context.Context, req models.APIRequest) (models.APIResponse, error) {
	requestID, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = h.ids.Generate()
	}

	r := h.client.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID)

	for name, values := range req.Header {
		for _, v := range values {
			r.Header.Add(name, v)
		}
	}

	if r.Header.Get("Authorization") == "" && !h.IsAuthEndpoint(req.Path) {
		if token := h.tokens.AccessToken(); token != "" {
			r.SetHeader("Authorization", "Bearer "+token)
		}
	}
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.Body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		h.logger.Warn().Err(err).
			Str("func", "httpTransport.Send").
			Str("request_id", requestID).
			Str("request", req.String()).
			Msg("request failed without response")
		return models.APIResponse{}, fmt.Errorf("%w: %s: %w", ErrTransport, req, err)
	}

	h.logger.Debug().
		Str("func", "httpTransport.Send").
		Str("request_id", requestID).
		Str("request", req.String()).
		Int("status", resp.StatusCode()).
		Dur("took", resp.Time()).
		Msg("request done")

	out := models.APIResponse{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}
	return out, mapHTTPError(resp, req)
}

// Login implements [APITransport].
func (h *httpTransport) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	resp, err := h.Send(ctx, models.APIRequest{Method: http.MethodPost, Path: h.loginPath, Body: req})
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	return decodeLoginResponse(resp)
}

// Refresh implements [APITransport].
func (h *httpTransport) Refresh(ctx context.Context) (models.LoginResponse, error) {
	resp, err := h.Send(ctx, models.APIRequest{Method: http.MethodPost, Path: h.refreshPath})
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("refresh request: %w", err)
	}
	return decodeLoginResponse(resp)
}

func decodeLoginResponse(resp models.APIResponse) (models.LoginResponse, error) {
	var out models.LoginResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return models.LoginResponse{}, err
	}
	if out.AccessToken == "" {
		return models.LoginResponse{}, ErrEmptyToken
	}
	return out, nil
}

// Logout implements [APITransport]. The cookie jar is emptied even when the
// server call fails.
func (h *httpTransport) Logout(ctx context.Context) error {
	_, err := h.Send(ctx, models.APIRequest{Method: http.MethodPost, Path: LogoutPath})
	h.SetRefreshCookie("")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	return nil
}

// RefreshCookie implements [APITransport]. The jar is queried with the
// refresh URL because the server scopes the rotated cookie to that path.
func (h *httpTransport) RefreshCookie() string {
	jar := h.client.GetClient().Jar
	if jar == nil {
		return ""
	}
	for _, c := range jar.Cookies(h.baseURL.JoinPath(h.refreshPath)) {
		if c.Name == RefreshCookieName {
			return c.Value
		}
	}
	return ""
}

// SetRefreshCookie implements [APITransport]. Whatever the jar holds on
// the root and on the refresh path is dropped first; a restored value is
// scoped to the root.
func (h *httpTransport) SetRefreshCookie(value string) {
	jar := h.client.GetClient().Jar
	if jar == nil {
		return
	}

	jar.SetCookies(h.baseURL, []*http.Cookie{
		{Name: RefreshCookieName, Path: "/", MaxAge: -1},
		{Name: RefreshCookieName, Path: h.refreshPath, MaxAge: -1},
	})
	if value == "" {
		return
	}
	jar.SetCookies(h.baseURL, []*http.Cookie{{Name: RefreshCookieName, Value: value, Path: "/", HttpOnly: true}})
}
