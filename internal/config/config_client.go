// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// ClientConfig configures the admin terminal client.
type ClientConfig struct {
	// ServerURL is the erp-accounts server base URL.
	// Env: ADMIN_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// RequestTimeout bounds each API call.
	// Env: ADMIN_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// LogFile receives client logs so they do not draw over the screen.
	// Env: ADMIN_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// GetClientConfig loads the admin client configuration from ADMIN_*
// environment variables and the -s / -timeout / -log flags.
func GetClientConfig() (*ClientConfig, error) {
	return parseClientConfig(os.Args[1:])
}

func parseClientConfig(args []string) (*ClientConfig, error) {
	cfg := &ClientConfig{
		ServerURL:      "http://localhost:8080",
		RequestTimeout: 10 * time.Second,
		LogFile:        "erp-admin.log",
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "ADMIN_"}); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	fs := flag.NewFlagSet("erp-admin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "Server base URL")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "Request timeout")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Log file path")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return cfg, cfg.validate()
}
