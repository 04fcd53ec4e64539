// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the outbound HTTP clients of erp-accounts:
//
//   - [IdentityProvider] delegates credentials to the GoTrue-style identity
//     service (signup, login, OAuth, recovery, admin user management).
//   - [Mailer] talks to the Resend-style email and contacts service.
//   - [AdminAPI] is the erp-accounts API client used by the admin terminal.
//
// Non-2xx responses are mapped by mapHTTPError to a [*ProviderError] that
// carries the remote human-readable message verbatim and unwraps to one of
// the status sentinels (e.g. [ErrUnauthorized] for 401), so callers can use
// [errors.Is] or [errors.As].
package adapter

import (
	"context"

	"github.com/MKhiriev/erp-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// IdentityProvider is the external credential store. It owns passwords
// and sessions; erp-accounts never sees a password hash.
type IdentityProvider interface {
	// SignUp registers an identity with the given password and display name.
	SignUp(ctx context.Context, email, password, fullName string) (models.Identity, error)

	// SignInWithPassword exchanges credentials for a session.
	SignInWithPassword(ctx context.Context, email, password string) (*models.Session, models.Identity, error)

	// ExchangeCodeForSession completes a PKCE OAuth flow.
	ExchangeCodeForSession(ctx context.Context, authCode, codeVerifier string) (*models.Session, models.Identity, error)

	// SignOut revokes the session owning accessToken.
	SignOut(ctx context.Context, accessToken string) error

	// GetUser returns the identity owning accessToken.
	GetUser(ctx context.Context, accessToken string) (models.Identity, error)

	// ResetPasswordForEmail sends a recovery email linking to redirectTo.
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error

	// AdminCreateUser creates a confirmed identity with the service key.
	AdminCreateUser(ctx context.Context, req AdminCreateUserRequest) (models.Identity, error)

	// AdminDeleteUser removes an identity with the service key.
	AdminDeleteUser(ctx context.Context, userID string) error

	// OAuthURL builds the authorize URL for provider with a PKCE S256
	// challenge derived from codeVerifier.
	OAuthURL(provider, redirectTo, codeVerifier string) string

	// Issuer is the iss claim of the access tokens this provider signs.
	Issuer() string
}

// Mailer is the email and contacts service.
type Mailer interface {
	CreateContact(ctx context.Context, email, firstName, lastName string) error
	RemoveContact(ctx context.Context, email string) error
	SendEmail(ctx context.Context, to, subject, html string) error
}

// AdminAPI is the erp-accounts HTTP API as seen by the admin terminal.
// Login stores the bearer token used by every later call.
type AdminAPI interface {
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Token() string
	CurrentUser(ctx context.Context) (models.UserWithRole, error)
	ListUsers(ctx context.Context, req models.PageRequest) (models.UserPage, error)
	CreateUser(ctx context.Context, form models.CreateUserForm) error
	DisableUser(ctx context.Context, userID string) error
	EnableUser(ctx context.Context, userID string) error
	DeleteUser(ctx context.Context, userID string) error
	Version(ctx context.Context) (string, error)
}
