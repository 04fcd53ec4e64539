// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/erp-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService covers the self-service account flows. Every error it
// returns is a *Error.
type AuthService interface {
	// Signup registers an identity and its directory row. The first
	// successful signup ever becomes admin, every later one guest.
	Signup(ctx context.Context, form models.SignupForm) error

	// Login rejects disabled accounts before the provider is contacted.
	Login(ctx context.Context, form models.LoginForm) (*models.Session, error)

	// GoogleLogin returns where to send the browser: the provider authorize
	// URL, or the login page with an error when session belongs to a
	// disabled account. session may be nil.
	GoogleLogin(ctx context.Context, session *models.Session) (models.Redirect, error)

	// OAuthCallback completes the OAuth flow and provisions the directory
	// row of a first-time user.
	OAuthCallback(ctx context.Context, code, codeVerifier string) (*models.Session, error)

	// Authenticate verifies an access token and returns its session.
	Authenticate(ctx context.Context, accessToken string) (*models.Session, error)

	Logout(ctx context.Context, session *models.Session) error
	ResetPassword(ctx context.Context, form models.ResetPasswordForm) error

	// GetUserDataAndRole returns the caller's row. A session without a row
	// is an inconsistent state; a disabled row is rejected.
	GetUserDataAndRole(ctx context.Context, session *models.Session) (models.UserWithRole, error)
}

// UserAdminService covers the admin operations over the directory. Every
// method checks that actor is an active admin first.
type UserAdminService interface {
	CreateUser(ctx context.Context, actor models.Principal, form models.CreateUserForm) (models.User, error)
	RestrictUserAccess(ctx context.Context, actor models.Principal, userID string) error
	EnableUserAccess(ctx context.Context, actor models.Principal, userID string) error
	DeleteUser(ctx context.Context, actor models.Principal, userID string) error
	ListUsers(ctx context.Context, actor models.Principal, req models.PageRequest) (models.UserPage, error)
	ListReconciliation(ctx context.Context, actor models.Principal) ([]models.ReconciliationEvent, error)
	ResolveReconciliation(ctx context.Context, actor models.Principal, eventID string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// Revalidator drops cached views under path so the next read is fresh.
type Revalidator interface {
	Revalidate(ctx context.Context, path string)
}
