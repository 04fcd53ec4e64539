// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/MKhiriev/erp-accounts/internal/access"
	"github.com/MKhiriev/erp-accounts/internal/adapter"
	"github.com/MKhiriev/erp-accounts/internal/app"
	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/internal/store"
	"github.com/MKhiriev/erp-accounts/internal/utils"
	"github.com/MKhiriev/erp-accounts/internal/validators"
	"github.com/MKhiriev/erp-accounts/internal/workers"
	"github.com/MKhiriev/erp-accounts/models"
)

// Paths the browser is sent to by the auth flows, relative to the site URL.
const (
	LoginPath         = "/login"
	OAuthCallbackPath = "/auth/callback"
	ResetPasswordPath = "/reset-password"
	AdminUsersPath    = "/admin/users"

	oauthProviderGoogle = "google"
)

// authService is the concrete implementation of AuthService.
type authService struct {
	// users is the directory the provider identities are mirrored into.
	users store.UserRepository

	// rules evaluates the disabled-account and first-admin checks.
	rules *access.Rules

	// identity owns credentials and sessions.
	identity adapter.IdentityProvider

	// notifier receives best-effort contact sync tasks.
	notifier workers.Notifier

	validator   validators.Validator
	reconciler  *reconciler
	revalidator Revalidator

	// siteURL is the public base URL redirects are built from.
	siteURL string

	// jwtSecret verifies access tokens locally. Empty means every token is
	// checked with the provider.
	jwtSecret string
}

// Login returns the session of a successful password sign-in.
//
// The directory row is consulted first: a disabled account is rejected
// with ErrAccountDisabled and the provider is never contacted. Provider
// errors are forwarded verbatim. LastLogin is updated best effort and the
// cached users table is dropped when it changes.
func (a *authService) Login(ctx context.Context, form models.LoginForm) (*models.Session, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, form); err != nil {
		return nil, validationError(err)
	}

	email := normalizeEmail(form.Email)
	if err := a.rules.CheckDisabled(ctx, email); err != nil {
		if errors.Is(err, access.ErrAccountDisabled) {
			return nil, disabledError()
		}
		log.Err(err).Str("email", email).Msg("account state lookup failed")
		return nil, directoryError(app.MsgInternalServerError, err)
	}

	session, _, err := a.identity.SignInWithPassword(ctx, email, form.Password)
	if err != nil {
		log.Info().Err(err).Str("email", email).Msg("provider rejected sign in")
		return nil, providerError(err)
	}

	a.touchLastLogin(ctx, session.UserID)
	log.Info().Str("user_id", session.UserID).Msg("user logged in")
	return session, nil
}

// Signup registers a new account.
//
// Order of effects: provider identity, first-admin pre-check, directory row
// (with the bootstrap claim when the pre-check passed), contact sync. A
// failed directory write deletes the new identity again; if that fails
// too the orphan is recorded for reconciliation.
func (a *authService) Signup(ctx context.Context, form models.SignupForm) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, form); err != nil {
		return validationError(err)
	}

	email := normalizeEmail(form.Email)
	fullName := strings.TrimSpace(form.FullName)

	identity, err := a.identity.SignUp(ctx, email, form.Password, fullName)
	if err != nil {
		log.Info().Err(err).Str("email", email).Msg("provider rejected sign up")
		return providerError(err)
	}

	user, err := a.provision(ctx, identity, email, fullName)
	if err != nil {
		a.reconciler.compensateIdentity(ctx, identity, err)
		return err
	}

	a.notifier.Notify(ctx, models.ContactTask(user.Email, user.Name))
	a.revalidator.Revalidate(ctx, AdminUsersPath)

	log.Info().Str("user_id", user.UserID).Str("role", string(user.Role)).Msg("user signed up")
	return nil
}

// provision writes the directory row of a self-registered identity.
func (a *authService) provision(ctx context.Context, identity models.Identity, email, fullName string) (models.User, error) {
	firstAdmin, err := a.rules.IsFirstAdmin(ctx)
	if err != nil {
		return models.User{}, directoryError(app.MsgInternalServerError, err)
	}

	user, err := a.users.Create(ctx, models.User{
		UserID: identity.ID,
		Email:  email,
		Name:   fullName,
		Role:   access.SignupRole(false),
	}, firstAdmin)
	if errors.Is(err, store.ErrUserAlreadyExists) {
		return models.User{}, directoryError(app.MsgUserAlreadyExists, err)
	}
	if err != nil {
		return models.User{}, directoryError(app.MsgInternalServerError, err)
	}
	return user, nil
}

// GoogleLogin starts the OAuth flow. The returned CodeVerifier must be kept
// by the caller for OAuthCallback.
func (a *authService) GoogleLogin(ctx context.Context, session *models.Session) (models.Redirect, error) {
	if session != nil && session.UserID != "" {
		user, err := a.users.FindByID(ctx, session.UserID)
		if err == nil && user.IsDisabled {
			a.signOutQuietly(ctx, session)
			return loginRedirect(app.MsgAccountDisabled), nil
		}
	}

	verifier := oauth2.GenerateVerifier()
	location := a.identity.OAuthURL(oauthProviderGoogle, a.siteURL+OAuthCallbackPath, verifier)

	return models.Redirect{Location: location, CodeVerifier: verifier}, nil
}

// OAuthCallback exchanges the authorization code for a session.
//
// A disabled row signs the new session out again. A missing row is
// created with the signup role rules. The identity is not deleted when that
// insert fails, since it may predate this login; the orphan is recorded
// instead.
func (a *authService) OAuthCallback(ctx context.Context, code, codeVerifier string) (*models.Session, error) {
	log := logger.FromContext(ctx)

	if code == "" || codeVerifier == "" {
		return nil, &Error{Kind: ErrValidation, Message: app.MsgOAuthFailed}
	}

	session, identity, err := a.identity.ExchangeCodeForSession(ctx, code, codeVerifier)
	if err != nil {
		log.Info().Err(err).Msg("code exchange failed")
		return nil, providerError(err)
	}

	user, err := a.users.FindByID(ctx, session.UserID)
	switch {
	case err == nil:
		if user.IsDisabled {
			a.signOutQuietly(ctx, session)
			return nil, disabledError()
		}

	case errors.Is(err, store.ErrUserNotFound):
		email := normalizeEmail(identity.Email)
		if email == "" {
			email = normalizeEmail(session.Email)
		}

		user, err = a.provision(ctx, identity, email, identity.FullName())
		if err != nil {
			a.reconciler.record(ctx, models.OrphanedIdentity, identity.ID, email, "oauth provisioning failed: "+err.Error())
			a.signOutQuietly(ctx, session)
			return nil, err
		}
		a.notifier.Notify(ctx, models.ContactTask(user.Email, user.Name))
		a.revalidator.Revalidate(ctx, AdminUsersPath)
		log.Info().Str("user_id", user.UserID).Str("role", string(user.Role)).Msg("user provisioned from oauth")

	default:
		return nil, directoryError(app.MsgInternalServerError, err)
	}

	a.touchLastLogin(ctx, session.UserID)
	return session, nil
}

// Authenticate verifies accessToken locally when a JWT secret is
// configured, otherwise with the provider.
func (a *authService) Authenticate(ctx context.Context, accessToken string) (*models.Session, error) {
	if accessToken == "" {
		return nil, unauthenticatedError(nil)
	}

	if a.jwtSecret != "" {
		claims, err := utils.ValidateAccessToken(accessToken, a.jwtSecret, a.identity.Issuer())
		if err != nil {
			return nil, unauthenticatedError(err)
		}

		session := &models.Session{AccessToken: accessToken, UserID: claims.Subject, Email: claims.Email}
		if claims.ExpiresAt != nil {
			session.ExpiresAt = claims.ExpiresAt.UTC()
		}
		return session, nil
	}

	identity, err := a.identity.GetUser(ctx, accessToken)
	if err != nil {
		return nil, unauthenticatedError(err)
	}
	return &models.Session{AccessToken: accessToken, UserID: identity.ID, Email: identity.Email}, nil
}

func (a *authService) Logout(ctx context.Context, session *models.Session) error {
	if session == nil {
		return nil
	}

	if err := a.identity.SignOut(ctx, session.AccessToken); err != nil {
		return providerError(err)
	}
	logger.FromContext(ctx).Info().Str("user_id", session.UserID).Msg("user logged out")
	return nil
}

func (a *authService) ResetPassword(ctx context.Context, form models.ResetPasswordForm) error {
	if err := a.validator.Validate(ctx, form); err != nil {
		return validationError(err)
	}

	if err := a.identity.ResetPasswordForEmail(ctx, normalizeEmail(form.Email), a.siteURL+ResetPasswordPath); err != nil {
		return providerError(err)
	}
	return nil
}

func (a *authService) GetUserDataAndRole(ctx context.Context, session *models.Session) (models.UserWithRole, error) {
	if session == nil || session.UserID == "" {
		return models.UserWithRole{}, unauthenticatedError(nil)
	}

	user, err := a.users.FindByID(ctx, session.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		logger.FromContext(ctx).Error().Str("user_id", session.UserID).Msg("session without directory row")
		return models.UserWithRole{}, &Error{Kind: ErrInconsistentState, Message: app.MsgProfileNotFound, Err: err}
	}
	if err != nil {
		return models.UserWithRole{}, directoryError(app.MsgInternalServerError, err)
	}

	if user.IsDisabled {
		return models.UserWithRole{}, disabledError()
	}
	return models.UserWithRole{User: user, Role: user.Role}, nil
}

func (a *authService) touchLastLogin(ctx context.Context, userID string) {
	if err := a.users.UpdateLastLogin(ctx, userID, time.Now().UTC()); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("user_id", userID).Msg("last login was not updated")
		return
	}
	a.revalidator.Revalidate(ctx, AdminUsersPath)
}

func (a *authService) signOutQuietly(ctx context.Context, session *models.Session) {
	if err := a.identity.SignOut(ctx, session.AccessToken); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("user_id", session.UserID).Msg("sign out of disabled user failed")
	}
}

// loginRedirect sends the browser to the login page showing msg.
func loginRedirect(msg string) models.Redirect {
	return models.Redirect{Location: LoginPath + "?error=" + url.QueryEscape(msg)}
}

// LoginRedirectFor returns the redirect GetUserDataAndRole failures lead
// to: plain login page when unauthenticated, login page with the error
// message otherwise.
func LoginRedirectFor(err error) models.Redirect {
	if errors.Is(err, ErrUnauthenticated) {
		return models.Redirect{Location: LoginPath}
	}
	return loginRedirect(UserMessage(err))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
