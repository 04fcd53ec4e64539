// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/erp-accounts/internal/cache"
	"github.com/MKhiriev/erp-accounts/internal/config"
	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/internal/metrics"
	"github.com/MKhiriev/erp-accounts/internal/service"
)

type Handler struct {
	services *service.Services

	// views caches rendered admin list responses. Nil disables caching.
	views *cache.ViewCache

	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer

	cookieSecure   bool
	requestTimeout time.Duration

	logger *logger.Logger
}

// Observability carries the metrics the handler records and the registry
// served on /metrics.
type Observability struct {
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

func NewHandler(services *service.Services, views *cache.ViewCache, obs Observability, cfg config.Server, logger *logger.Logger) *Handler {
	if obs.Metrics == nil {
		obs.Metrics = metrics.Nop()
	}
	if obs.Gatherer == nil {
		obs.Gatherer = prometheus.NewRegistry()
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		views:          views,
		metrics:        obs.Metrics,
		gatherer:       obs.Gatherer,
		cookieSecure:   cfg.CookieSecure,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
