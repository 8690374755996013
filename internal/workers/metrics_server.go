// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"

	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/models"
)

const shutdownTimeout = 5 * time.Second

type healthResponse struct {
	Realtime string `json:"realtime"`
}

// MetricsServer serves /metrics and /healthz until its context is
// cancelled.
type MetricsServer struct {
	server *http.Server
	logger *logger.Logger
}

func NewMetricsServer(address string, gatherer prometheus.Gatherer, state StateSource, log *logger.Logger) *MetricsServer {
	log = log.Component("metrics-server")
	return &MetricsServer{
		server: &http.Server{
			Addr:              address,
			Handler:           newMetricsRouter(gatherer, state, log),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: log,
	}
}

func newMetricsRouter(gatherer prometheus.Gatherer, state StateSource, log *logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(withTraceID(log), withLogging, middleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s := state.State()
		status := http.StatusOK
		if s != models.Connected {
			status = http.StatusServiceUnavailable
		}

		body, err := json.Marshal(healthResponse{Realtime: s.String()})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	})

	return r
}

func (m *MetricsServer) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", m.server.Addr)
	if err != nil {
		return fmt.Errorf("metrics server listen: %w", err)
	}
	return m.serve(ctx, listener)
}

func (m *MetricsServer) serve(ctx context.Context, listener net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		m.logger.Info().Str("address", listener.Addr().String()).Msg("metrics server started")
		errCh <- m.server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := m.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("metrics server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}

	m.logger.Info().Msg("metrics server stopped")
	return nil
}
