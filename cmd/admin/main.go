// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/erp-accounts/internal/adapter"
	"github.com/MKhiriev/erp-accounts/internal/config"
	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/internal/service"
	"github.com/MKhiriev/erp-accounts/internal/tui"
	"github.com/MKhiriev/erp-accounts/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewFileLogger("erp-accounts-admin", cfg.LogFile)

	api, err := adapter.NewAdminAPIClient(*cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating admin api client")
	}

	ui, err := tui.New(service.NewClientServices(api), buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err = ui.Run(ctx); err != nil {
		log.Error().Err(err).Msg("admin client stopped with error")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
