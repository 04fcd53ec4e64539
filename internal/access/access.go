// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package access holds the access-control rules evaluated over the user
// directory: first-admin detection, disabled-account gating, role
// classification and the admin gate.
package access

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/internal/store"
	"github.com/MKhiriev/erp-accounts/models"
)

var (
	// ErrAccountDisabled is returned for a directory row with IsDisabled set.
	ErrAccountDisabled = errors.New("account disabled")

	// ErrForbidden is returned when the caller is not an active admin.
	ErrForbidden = errors.New("forbidden")
)

// Rules evaluates access decisions against a UserRepository.
type Rules struct {
	users store.UserRepository
}

// NewRules creates Rules backed by users.
func NewRules(users store.UserRepository) *Rules {
	return &Rules{users: users}
}

// IsFirstAdmin reports whether the directory holds no admin yet.
//
// The answer is a hint only: two concurrent signups may both see true. The
// bootstrap claim written together with the user row decides who becomes
// admin.
func (r *Rules) IsFirstAdmin(ctx context.Context) (bool, error) {
	admins, err := r.users.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("counting admins: %w", err)
	}
	return admins == 0, nil
}

// CheckDisabled returns ErrAccountDisabled when the row matching emailOrID
// is disabled. Values containing "@" are matched by email, others by user
// id. An unknown user passes: the identity provider answers for unknown
// credentials.
func (r *Rules) CheckDisabled(ctx context.Context, emailOrID string) error {
	user, err := r.lookup(ctx, emailOrID)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking account state: %w", err)
	}

	if user.IsDisabled {
		logger.FromContext(ctx).Warn().
			Str("user_id", user.UserID).
			Msg("disabled account blocked")
		return ErrAccountDisabled
	}
	return nil
}

// Classify returns the stored role of userID. A disabled row yields its
// role together with ErrAccountDisabled; lookup errors such as
// store.ErrUserNotFound are returned as is.
func (r *Rules) Classify(ctx context.Context, userID string) (models.Role, error) {
	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.IsDisabled {
		return user.Role, ErrAccountDisabled
	}
	return user.Role, nil
}

// RequireAdmin is the admin gate: it classifies the caller and returns the
// role when it is an active admin. Callers without a row or with another
// role get ErrForbidden; a disabled caller gets ErrAccountDisabled.
func (r *Rules) RequireAdmin(ctx context.Context, principal models.Principal) (models.Role, error) {
	if principal.UserID == "" {
		return "", ErrForbidden
	}

	role, err := r.Classify(ctx, principal.UserID)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return "", ErrForbidden
	case errors.Is(err, ErrAccountDisabled):
		return "", ErrAccountDisabled
	case err != nil:
		return "", fmt.Errorf("loading caller: %w", err)
	}

	if !role.IsAdmin() {
		logger.FromContext(ctx).Warn().
			Str("user_id", principal.UserID).
			Str("role", string(role)).
			Msg("non-admin tried an admin operation")
		return "", ErrForbidden
	}
	return role, nil
}

// SignupRole is the role a self-registered user asks for.
func SignupRole(firstAdmin bool) models.Role {
	if firstAdmin {
		return models.RoleAdmin
	}
	return models.RoleGuest
}

func (r *Rules) lookup(ctx context.Context, emailOrID string) (models.User, error) {
	if strings.Contains(emailOrID, "@") {
		return r.users.FindByEmail(ctx, emailOrID)
	}
	return r.users.FindByID(ctx, emailOrID)
}
