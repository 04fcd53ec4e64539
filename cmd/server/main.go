// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/erp-accounts/internal/adapter"
	"github.com/MKhiriev/erp-accounts/internal/cache"
	"github.com/MKhiriev/erp-accounts/internal/config"
	"github.com/MKhiriev/erp-accounts/internal/handler"
	"github.com/MKhiriev/erp-accounts/internal/handler/http"
	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/internal/metrics"
	"github.com/MKhiriev/erp-accounts/internal/server"
	"github.com/MKhiriev/erp-accounts/internal/service"
	"github.com/MKhiriev/erp-accounts/internal/store"
	"github.com/MKhiriev/erp-accounts/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("erp-accounts-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}
	log.Debug().Str("address", cfg.Server.HTTPAddress).Str("site_url", cfg.App.SiteURL).Msg("received configs")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	identity, err := adapter.NewIdentityClient(cfg.Identity)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating identity provider client")
	}

	mailer, err := adapter.NewMailerClient(cfg.Mailer)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mailer client")
	}

	queue := workers.NewNotificationQueue(cfg.Workers.QueueSize, m)
	notificationWorker := workers.NewNotificationWorker(queue, mailer, cfg.Workers.NotificationWorkers, m, log)

	views := cache.NewViewCache(0, 0)

	services, err := service.NewServices(service.Deps{
		Storages:    storages,
		Identity:    identity,
		Notifier:    queue,
		Revalidator: views,
		Metrics:     m,
	}, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, views, http.Observability{Metrics: m, Gatherer: registry}, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log, workers.NewWorkers(notificationWorker))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
