package service

import (
	"context"
	"net/http"
	"sync"

	"github.com/MKhiriev/go-chat-client/internal/adapter"
	"github.com/MKhiriev/go-chat-client/models"
)

func httpError(status int, body string) error {
	return adapter.NewHTTPError(status, body, models.APIRequest{Method: http.MethodGet, Path: "/api/test"})
}

func get(path string) models.APIRequest {
	return models.APIRequest{Method: http.MethodGet, Path: path}
}

// fakeServer answers like the chat server: requests carrying the current
// token succeed and echo their path, everything else gets a 403.
type fakeServer struct {
	mu     sync.Mutex
	token  string
	served []string
}

func (s *fakeServer) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *fakeServer) send(_ context.Context, req models.APIRequest) (models.APIResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Header.Get("Authorization") != "Bearer "+s.token {
		return models.APIResponse{StatusCode: http.StatusForbidden}, adapter.NewHTTPError(http.StatusForbidden, "", req)
	}
	s.served = append(s.served, req.Path)
	return models.APIResponse{StatusCode: http.StatusOK, Body: []byte(req.Path)}, nil
}

func (s *fakeServer) servedPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.served...)
}

func (c *refreshCoordinator) queueLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

func (c *refreshCoordinator) isRefreshing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshing
}
