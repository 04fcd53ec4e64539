// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the admin terminal client: a login page and the users
// table with paging, sorting and the admin actions.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/internal/service"
	"github.com/MKhiriev/erp-accounts/models"
)

const (
	pageLogin = "login"
	pageUsers = "users"
)

type TUI struct {
	services  *service.ClientServices
	buildInfo models.BuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.BuildInfo, log *logger.Logger) (*TUI, error) {
	if services == nil || services.AuthService == nil || services.UsersService == nil {
		return nil, errNoServices
	}
	return &TUI{services: services, buildInfo: buildInfo, logger: log}, nil
}

// Run shows the login page and, once an admin signs in, the users table.
// It returns when the user quits; the session is signed out on the way.
func (t *TUI) Run(ctx context.Context) error {
	serverVersion, err := t.services.UsersService.ServerVersion(ctx)
	if err != nil {
		t.logger.Warn().Err(err).Msg("server version unavailable")
		serverVersion = ""
	}

	pages := map[string]tea.Model{
		pageLogin: NewLoginModel(ctx, t.services.AuthService),
		pageUsers: NewUsersModel(ctx, t.services.UsersService, t.services.AuthService),
	}
	root := NewRootModel(pages, pageLogin, t.buildInfo, serverVersion)

	finalModel, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	if result, ok := finalModel.(RootModel); ok && result.signedIn() {
		if err = t.services.AuthService.Logout(ctx); err != nil {
			t.logger.Warn().Err(err).Msg("logout on exit failed")
		}
	}
	clearSessionAdmin()
	return nil
}
