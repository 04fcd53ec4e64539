// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/erp-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists the user directory.
type UserRepository interface {
	// Create inserts user. When claimBootstrap is set the single-row
	// bootstrap claim is attempted in the same transaction: if it wins the
	// row is stored as admin, otherwise with user.Role. The stored user is
	// returned.
	Create(ctx context.Context, user models.User, claimBootstrap bool) (models.User, error)
	FindByID(ctx context.Context, userID string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	CountByRole(ctx context.Context, role models.Role) (int, error)
	// SetDisabled returns ErrUserNotFound when no row has userID.
	SetDisabled(ctx context.Context, userID string, disabled bool) error
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
	// Delete returns ErrUserNotFound when no row has userID.
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context, req models.PageRequest) (models.UserPage, error)
}

// ReconciliationRepository is the outbox of provider/directory
// inconsistencies awaiting repair.
type ReconciliationRepository interface {
	Save(ctx context.Context, event models.ReconciliationEvent) error
	FindByID(ctx context.Context, id string) (models.ReconciliationEvent, error)
	ListOpen(ctx context.Context) ([]models.ReconciliationEvent, error)
	MarkResolved(ctx context.Context, id string, at time.Time) error
}
