// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/erp-accounts/internal/access"
	"github.com/MKhiriev/erp-accounts/internal/adapter"
	"github.com/MKhiriev/erp-accounts/internal/config"
	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/internal/metrics"
	"github.com/MKhiriev/erp-accounts/internal/store"
	"github.com/MKhiriev/erp-accounts/internal/utils"
	"github.com/MKhiriev/erp-accounts/internal/validators"
	"github.com/MKhiriev/erp-accounts/internal/workers"
)

// defaultTempPasswordLength is used when the configuration leaves the
// temporary password length unset.
const defaultTempPasswordLength = 12

type Services struct {
	AuthService      AuthService
	UserAdminService UserAdminService
	AppInfoService   AppInfoService
}

// Deps are the collaborators shared by the server-side services.
type Deps struct {
	Storages    *store.Storages
	Identity    adapter.IdentityProvider
	Notifier    workers.Notifier
	Revalidator Revalidator
	Metrics     *metrics.Metrics
}

func NewServices(deps Deps, cfg config.StructuredConfig, log *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, log)
	if err != nil {
		return nil, err
	}

	m := deps.Metrics
	if m == nil {
		m = metrics.Nop()
	}
	if deps.Revalidator == nil {
		deps.Revalidator = nopRevalidator{}
	}

	users := deps.Storages.UserRepository
	events := deps.Storages.ReconciliationRepository
	rules := access.NewRules(users)
	validator := validators.NewAccountValidator()
	rec := &reconciler{
		identity: deps.Identity,
		users:    users,
		events:   events,
		ids:      utils.NewUUIDGenerator(),
		metrics:  m,
	}

	passwordLength := cfg.App.TempPasswordLength
	if passwordLength <= 0 {
		passwordLength = defaultTempPasswordLength
	}

	return &Services{
		AuthService: &authService{
			users:       users,
			rules:       rules,
			identity:    deps.Identity,
			notifier:    deps.Notifier,
			validator:   validator,
			reconciler:  rec,
			revalidator: deps.Revalidator,
			siteURL:     cfg.App.SiteURL,
			jwtSecret:   cfg.Identity.JWTSecret,
		},
		UserAdminService: &userAdminService{
			users:              users,
			events:             events,
			rules:              rules,
			identity:           deps.Identity,
			notifier:           deps.Notifier,
			validator:          validator,
			reconciler:         rec,
			revalidator:        deps.Revalidator,
			tempPasswordLength: passwordLength,
			siteURL:            cfg.App.SiteURL,
			supportEmail:       cfg.App.SupportEmail,
		},
		AppInfoService: appInfo,
	}, nil
}

type nopRevalidator struct{}

func (nopRevalidator) Revalidate(context.Context, string) {}
