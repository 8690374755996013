package workers

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/metrics"
	"github.com/MKhiriev/go-chat-client/models"
)

type fixedState models.ConnectionState

func (s fixedState) State() models.ConnectionState { return models.ConnectionState(s) }

func TestMetricsRouter_Healthz(t *testing.T) {
	tests := []struct {
		name       string
		state      models.ConnectionState
		wantStatus int
		wantBody   string
	}{
		{name: "connected", state: models.Connected, wantStatus: http.StatusOK, wantBody: `{"realtime":"connected"}`},
		{name: "connecting", state: models.Connecting, wantStatus: http.StatusServiceUnavailable, wantBody: `{"realtime":"connecting"}`},
		{name: "disconnected", state: models.Disconnected, wantStatus: http.StatusServiceUnavailable, wantBody: `{"realtime":"disconnected"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newMetricsRouter(prometheus.NewRegistry(), fixedState(tt.state), logger.Nop())

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestMetricsRouter_Metrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := metrics.New(registry)
	require.NoError(t, err)
	m.RefreshSucceeded()

	router := newMetricsRouter(registry, fixedState(models.Connected), logger.Nop())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `chat_client_session_refresh_total{result="success"} 1`)
}

func TestMetricsServer_ServeAndShutdown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewMetricsServer(listener.Addr().String(), prometheus.NewRegistry(), fixedState(models.Connected), logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"realtime":"connected"}`, string(body))

	cancel()
	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}

func TestMetricsServer_ListenError(t *testing.T) {
	srv := NewMetricsServer("256.0.0.1:bad", prometheus.NewRegistry(), fixedState(models.Connected), logger.Nop())
	assert.Error(t, srv.Run(context.Background()))
}

func TestMetricsRouter_TraceID(t *testing.T) {
	router := newMetricsRouter(prometheus.NewRegistry(), fixedState(models.Connected), logger.Nop())

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(traceIDHeader, "trace-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, "trace-1", rec.Header().Get(traceIDHeader))
	})
}
