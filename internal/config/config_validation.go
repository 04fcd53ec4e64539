// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks that the merged [StructuredConfig] is usable at startup.
// A fully empty config (no sources at all) is accepted so unit tests can
// build partial configs; GetStructuredConfig always merges defaults first.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN != "" && !hasScheme(cfg.Storage.DB.DSN, "postgres", "postgresql", "sqlite3") {
		return fmt.Errorf("%w: unsupported DSN scheme", ErrInvalidStorageConfigs)
	}

	if cfg.App.SiteURL != "" {
		if u, err := url.Parse(cfg.App.SiteURL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: site URL must be absolute", ErrInvalidAppConfigs)
		}
	}

	if cfg.App.TempPasswordLength < 0 || (cfg.App.TempPasswordLength > 0 && cfg.App.TempPasswordLength < 8) {
		return fmt.Errorf("%w: temporary password length must be at least 8", ErrInvalidAppConfigs)
	}

	if cfg.Workers.NotificationWorkers < 0 || cfg.Workers.QueueSize < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// Validate checks the settings the server cannot start without.
func (cfg *StructuredConfig) Validate() error {
	if err := cfg.validate(); err != nil {
		return err
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Identity.URL == "" || cfg.Identity.AnonKey == "" || cfg.Identity.ServiceKey == "" {
		return ErrInvalidIdentityConfigs
	}

	if cfg.Mailer.APIKey == "" || cfg.Mailer.AudienceID == "" || cfg.Mailer.From == "" {
		return ErrInvalidMailerConfigs
	}

	if cfg.Workers.NotificationWorkers == 0 || cfg.Workers.QueueSize == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.ServerURL == "" || !hasScheme(cfg.ServerURL, "http", "https") {
		return ErrInvalidAdapterConfigs
	}

	if cfg.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}

func hasScheme(raw string, schemes ...string) bool {
	for _, s := range schemes {
		if strings.HasPrefix(raw, s+"://") {
			return true
		}
	}
	return false
}
