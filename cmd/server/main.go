package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-guardian/internal/config"
	handler "github.com/MKhiriev/go-guardian/internal/handler/http"
	"github.com/MKhiriev/go-guardian/internal/interceptor"
	"github.com/MKhiriev/go-guardian/internal/logger"
	"github.com/MKhiriev/go-guardian/internal/server"
	"github.com/MKhiriev/go-guardian/internal/service"
	"github.com/MKhiriev/go-guardian/internal/store"
	"github.com/MKhiriev/go-guardian/internal/utils"
	"github.com/MKhiriev/go-guardian/internal/workers"
	"github.com/MKhiriev/go-guardian/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const healthcheckTimeout = 3 * time.Second

func main() {
	args, healthcheck := extractHealthcheckFlag(os.Args[1:])

	cfg, err := config.GetStructuredConfig(args)
	if err != nil {
		logger.NewLogger("go-guardian", "").Fatal().Err(err).Msg("error getting configs")
	}

	if healthcheck {
		os.Exit(runHealthcheck(cfg.Server.HTTPAddress))
	}

	printBuildInfo()

	log := logger.NewLogger("go-guardian", cfg.App.LogLevel)
	log.Info().
		Str("address", cfg.Server.HTTPAddress).
		Str("environment", cfg.App.Environment).
		Msg("received configs")

	if err = run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(cfg *config.StructuredConfig, log *logger.Logger) error {
	ctx, stop := server.NotifyContext(context.Background())
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, *cfg, build, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	prometheus := interceptor.NewPrometheusCollector()
	h := handler.NewHandler(services, *cfg, prometheus, utils.NewUUIDGenerator(), log)

	monitor, err := workers.NewDependencyMonitor(
		services.HealthService,
		services.AlertService,
		cfg.Monitoring.HealthCheckInterval,
		prometheus.Registry(),
		log,
	)
	if err != nil {
		return fmt.Errorf("error creating dependency monitor: %w", err)
	}

	srv, err := server.NewServer(h.Init(), cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	background := workers.NewWorkers(monitor)
	background.Start(ctx)

	serveErr := srv.Run(ctx)

	// the server may have failed on its own; background work stops either way
	stop()
	if err := background.Wait(); err != nil {
		log.Err(err).Msg("worker stopped with error")
	}

	return serveErr
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
