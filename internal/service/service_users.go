// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

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

// userAdminService is the concrete implementation of UserAdminService.
type userAdminService struct {
	users       store.UserRepository
	events      store.ReconciliationRepository
	rules       *access.Rules
	identity    adapter.IdentityProvider
	notifier    workers.Notifier
	validator   validators.Validator
	reconciler  *reconciler
	revalidator Revalidator

	// tempPasswordLength is the length of generated temporary passwords.
	tempPasswordLength int

	// siteURL and supportEmail are rendered into the welcome email.
	siteURL      string
	supportEmail string
}

// CreateUser provisions a confirmed identity with a random temporary
// password, writes its directory row with the requested role, and mails
// the password to the new user.
//
// The password travels by email in clear text. The identity carries
// password_change_required so the UI can force a change on first login.
func (s *userAdminService) CreateUser(ctx context.Context, actor models.Principal, form models.CreateUserForm) (models.User, error) {
	log := logger.FromContext(ctx)

	if _, err := s.rules.RequireAdmin(ctx, actor); err != nil {
		return models.User{}, accessError(err)
	}
	if err := s.validator.Validate(ctx, form); err != nil {
		return models.User{}, validationError(err)
	}

	role, _ := models.ParseRole(form.Role)
	email := normalizeEmail(form.Email)
	name := strings.TrimSpace(form.Name)

	password, err := utils.GenerateTempPassword(s.tempPasswordLength)
	if err != nil {
		return models.User{}, internalError(fmt.Errorf("generating temporary password: %w", err))
	}

	identity, err := s.identity.AdminCreateUser(ctx, adapter.AdminCreateUserRequest{
		Email:                  email,
		Password:               password,
		FullName:               name,
		PasswordChangeRequired: true,
	})
	if err != nil {
		log.Info().Err(err).Str("email", email).Msg("provider rejected user creation")
		return models.User{}, providerError(err)
	}

	user, err := s.users.Create(ctx, models.User{
		UserID: identity.ID,
		Email:  email,
		Name:   name,
		Role:   role,
	}, false)
	if err != nil {
		s.reconciler.compensateIdentity(ctx, identity, err)
		if errors.Is(err, store.ErrUserAlreadyExists) {
			return models.User{}, directoryError(app.MsgUserAlreadyExists, err)
		}
		return models.User{}, directoryError(app.MsgCreateUserFailed, err)
	}

	s.notifier.Notify(ctx, models.ContactTask(user.Email, user.Name))
	s.notifier.Notify(ctx, models.NotificationTask{
		Kind:    models.NotifySendEmail,
		Email:   user.Email,
		Subject: app.WelcomeEmailSubject,
		HTML:    s.welcomeEmail(user.Name, user.Email, password),
	})
	s.revalidator.Revalidate(ctx, AdminUsersPath)

	log.Info().
		Str("actor_id", actor.UserID).
		Str("user_id", user.UserID).
		Str("role", string(user.Role)).
		Msg("user created by admin")
	return user, nil
}

func (s *userAdminService) welcomeEmail(name, email, password string) string {
	support := s.supportEmail
	if support == "" {
		support = "your administrator"
	}
	return fmt.Sprintf(app.WelcomeEmailTemplate,
		html.EscapeString(name),
		html.EscapeString(s.siteURL),
		html.EscapeString(email),
		html.EscapeString(password),
		html.EscapeString(support),
	)
}

func (s *userAdminService) RestrictUserAccess(ctx context.Context, actor models.Principal, userID string) error {
	return s.setAccess(ctx, actor, userID, true)
}

func (s *userAdminService) EnableUserAccess(ctx context.Context, actor models.Principal, userID string) error {
	return s.setAccess(ctx, actor, userID, false)
}

// setAccess flips IsDisabled. Setting the current value again succeeds.
func (s *userAdminService) setAccess(ctx context.Context, actor models.Principal, userID string, disabled bool) error {
	if _, err := s.rules.RequireAdmin(ctx, actor); err != nil {
		return accessError(err)
	}

	if err := s.users.SetDisabled(ctx, userID, disabled); err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Bool("disabled", disabled).Msg("access update failed")
		return directoryError(app.MsgUpdateAccessFailed, err)
	}

	s.revalidator.Revalidate(ctx, AdminUsersPath)
	logger.FromContext(ctx).Info().
		Str("actor_id", actor.UserID).
		Str("user_id", userID).
		Bool("disabled", disabled).
		Msg("user access updated")
	return nil
}

// DeleteUser removes a user from the provider, then from the directory.
// An identity the provider no longer knows counts as deleted. Any other
// provider failure leaves the directory untouched. A directory failure
// after the identity is gone is recorded for reconciliation.
func (s *userAdminService) DeleteUser(ctx context.Context, actor models.Principal, userID string) error {
	log := logger.FromContext(ctx)

	if _, err := s.rules.RequireAdmin(ctx, actor); err != nil {
		return accessError(err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return directoryError(app.MsgUserNotFound, err)
	}
	if err != nil {
		return directoryError(app.MsgDeleteUserFailed, err)
	}

	s.notifier.Notify(ctx, models.NotificationTask{Kind: models.NotifyRemoveContact, Email: user.Email})

	err = s.identity.AdminDeleteUser(ctx, user.UserID)
	switch {
	case errors.Is(err, adapter.ErrNotFound):
		log.Warn().Str("user_id", user.UserID).Msg("identity already gone, deleting row")
	case err != nil:
		log.Err(err).Str("user_id", user.UserID).Msg("provider delete failed")
		return providerError(err)
	}

	if err = s.users.Delete(ctx, user.UserID); err != nil {
		s.reconciler.record(ctx, models.OrphanedDirectoryRow, user.UserID, user.Email, "directory delete failed: "+err.Error())
		return directoryError(app.MsgDeleteUserFailed, err)
	}

	s.revalidator.Revalidate(ctx, AdminUsersPath)
	log.Info().Str("actor_id", actor.UserID).Str("user_id", user.UserID).Msg("user deleted")
	return nil
}

func (s *userAdminService) ListUsers(ctx context.Context, actor models.Principal, req models.PageRequest) (models.UserPage, error) {
	if _, err := s.rules.RequireAdmin(ctx, actor); err != nil {
		return models.UserPage{}, accessError(err)
	}

	page, err := s.users.List(ctx, req)
	if err != nil {
		return models.UserPage{}, directoryError(app.MsgLoadUsersFailed, err)
	}
	return page, nil
}

func (s *userAdminService) ListReconciliation(ctx context.Context, actor models.Principal) ([]models.ReconciliationEvent, error) {
	if _, err := s.rules.RequireAdmin(ctx, actor); err != nil {
		return nil, accessError(err)
	}

	events, err := s.events.ListOpen(ctx)
	if err != nil {
		return nil, directoryError(app.MsgInternalServerError, err)
	}
	return events, nil
}

// ResolveReconciliation re-runs the compensating action of an open event
// once and marks it resolved. Resolving a resolved event is a no-op.
func (s *userAdminService) ResolveReconciliation(ctx context.Context, actor models.Principal, eventID string) error {
	if _, err := s.rules.RequireAdmin(ctx, actor); err != nil {
		return accessError(err)
	}

	event, err := s.events.FindByID(ctx, eventID)
	if errors.Is(err, store.ErrEventNotFound) {
		return directoryError(app.MsgEventNotFound, err)
	}
	if err != nil {
		return directoryError(app.MsgResolveEventFailed, err)
	}
	if event.ResolvedAt != nil {
		return nil
	}

	if err = s.reconciler.resolve(ctx, event); err != nil {
		logger.FromContext(ctx).Err(err).Str("event_id", eventID).Msg("reconciliation failed")
		return err
	}

	if err = s.events.MarkResolved(ctx, eventID, time.Now().UTC()); err != nil && !errors.Is(err, store.ErrEventNotFound) {
		return directoryError(app.MsgResolveEventFailed, err)
	}

	s.revalidator.Revalidate(ctx, AdminUsersPath)
	logger.FromContext(ctx).Info().Str("actor_id", actor.UserID).Str("event_id", eventID).Msg("reconciliation event resolved")
	return nil
}
