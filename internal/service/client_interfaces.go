// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/erp-accounts/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService defines the admin terminal's session with the server.
type ClientAuthService interface {
	// Login signs in with email and password and checks that the account is
	// an admin. A non-admin session is closed again and ErrNotAdmin is
	// returned.
	Login(ctx context.Context, email, password string) (models.UserWithRole, error)

	// Logout closes the session. It is safe to call when not logged in.
	Logout(ctx context.Context) error
}

// ClientUsersService defines the user management actions of the admin
// terminal. Every method requires a prior successful Login.
type ClientUsersService interface {
	// List returns one page of the directory.
	List(ctx context.Context, req models.PageRequest) (models.UserPage, error)

	// Create validates form locally before sending it.
	Create(ctx context.Context, form models.CreateUserForm) error

	Disable(ctx context.Context, userID string) error
	Enable(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string) error

	// ServerVersion returns the version reported by the server.
	ServerVersion(ctx context.Context) (string, error)
}
