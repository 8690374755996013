package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/go-chat-client/internal/adapter"
	"github.com/MKhiriev/go-chat-client/internal/client"
	"github.com/MKhiriev/go-chat-client/internal/config"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/metrics"
	"github.com/MKhiriev/go-chat-client/internal/realtime"
	"github.com/MKhiriev/go-chat-client/internal/service"
	"github.com/MKhiriev/go-chat-client/internal/store"
	"github.com/MKhiriev/go-chat-client/internal/workers"
	"github.com/MKhiriev/go-chat-client/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("go-chat-client", cfg.Logging.File, cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m, err := metrics.New(registry)
	if err != nil {
		log.Fatal().Err(err).Msg("register metrics")
	}

	transport, err := adapter.NewHTTPTransport(cfg.Adapter, storages.Credentials, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create request transport")
	}

	services := service.NewClientServices(cfg, transport, storages.Credentials, m, log)

	manager := realtime.NewManager(realtime.NewStompTransport(cfg.Realtime, log), storages.Credentials, m, log)
	dispatcher := realtime.NewDispatcher(manager, m, log)
	conversations := realtime.NewConversations(manager, m, log)

	w := workers.NewWorkers()
	if cfg.Metrics.Address != "" {
		w.Add(workers.NewMetricsServer(cfg.Metrics.Address, registry, manager, log))
	}

	app := client.NewApp(services, manager, dispatcher, conversations, newConsole(os.Stdout), w, cfg.Session, log)

	err = app.Run(ctx)
	switch {
	case errors.Is(err, client.ErrLoginRequired):
		fmt.Fprintln(os.Stderr, "session ended, log in again")
		log.Warn().Err(err).Str("login_url", cfg.App.LoginURL).Msg("login required")
		os.Exit(2)
	case err != nil:
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", orNA(info.BuildVersion()))
	fmt.Printf("Build date: %s\n", orNA(info.BuildDate()))
	fmt.Printf("Build commit: %s\n", orNA(info.BuildCommit()))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
