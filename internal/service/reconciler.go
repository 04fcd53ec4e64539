// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/erp-accounts/internal/adapter"
	"github.com/MKhiriev/erp-accounts/internal/app"
	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/internal/metrics"
	"github.com/MKhiriev/erp-accounts/internal/store"
	"github.com/MKhiriev/erp-accounts/internal/utils"
	"github.com/MKhiriev/erp-accounts/models"
)

// reconciler keeps the identity provider and the directory in step when a
// two-sided write fails half way. It runs the compensating action once and,
// when that fails too, records the leftover in the reconciliation outbox.
type reconciler struct {
	identity adapter.IdentityProvider
	users    store.UserRepository
	events   store.ReconciliationRepository
	ids      *utils.UUIDGenerator
	metrics  *metrics.Metrics
}

// compensateIdentity deletes an identity whose directory insert failed.
//
// An insert that conflicted with a row already carrying identity.ID means
// the provider handed back an existing account; that identity is kept. When
// the conflicting row cannot be looked up the identity is kept as well and
// the case is recorded.
func (r *reconciler) compensateIdentity(ctx context.Context, identity models.Identity, cause error) {
	log := logger.FromContext(ctx)

	if errors.Is(cause, store.ErrUserAlreadyExists) {
		_, err := r.users.FindByID(ctx, identity.ID)
		switch {
		case err == nil:
			log.Info().Str("user_id", identity.ID).Msg("identity already mirrored, kept")
			return
		case !errors.Is(err, store.ErrUserNotFound):
			log.Err(err).Str("user_id", identity.ID).Msg("conflicting row lookup failed")
			r.record(ctx, models.OrphanedIdentity, identity.ID, identity.Email, "directory insert conflicted, row lookup failed: "+err.Error())
			return
		}
	}

	err := r.identity.AdminDeleteUser(ctx, identity.ID)
	if err == nil {
		log.Warn().Err(cause).Str("user_id", identity.ID).Msg("directory insert failed, identity deleted")
		return
	}

	log.Err(err).Str("user_id", identity.ID).Msg("compensating identity delete failed")
	r.record(ctx, models.OrphanedIdentity, identity.ID, identity.Email, "directory insert failed: "+cause.Error())
}

// record saves an outbox event. A failed save is logged at error level; it
// is the last place the inconsistency is visible.
func (r *reconciler) record(ctx context.Context, kind models.ReconciliationKind, userID, email, reason string) {
	event := models.ReconciliationEvent{
		ID:        r.ids.Generate(),
		Kind:      kind,
		UserID:    userID,
		Email:     email,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}

	r.metrics.Reconciliation.WithLabelValues(string(kind)).Inc()
	if err := r.events.Save(ctx, event); err != nil {
		logger.FromContext(ctx).Error().Err(err).
			Str("kind", string(kind)).
			Str("user_id", userID).
			Str("email", email).
			Str("reason", reason).
			Msg("reconciliation event could not be saved")
		return
	}

	logger.FromContext(ctx).Warn().
		Str("event_id", event.ID).
		Str("kind", string(kind)).
		Str("user_id", userID).
		Msg("reconciliation event recorded")
}

// resolve re-runs the compensating action of event. Already-absent records
// count as repaired.
func (r *reconciler) resolve(ctx context.Context, event models.ReconciliationEvent) error {
	switch event.Kind {
	case models.OrphanedIdentity:
		_, err := r.users.FindByID(ctx, event.UserID)
		if err == nil {
			// the directory row exists again, the identity is no longer orphaned
			return nil
		}
		if !errors.Is(err, store.ErrUserNotFound) {
			return directoryError(app.MsgResolveEventFailed, err)
		}

		if err = r.identity.AdminDeleteUser(ctx, event.UserID); err != nil && !errors.Is(err, adapter.ErrNotFound) {
			return providerError(err)
		}
		return nil

	case models.OrphanedDirectoryRow:
		if err := r.users.Delete(ctx, event.UserID); err != nil && !errors.Is(err, store.ErrUserNotFound) {
			return directoryError(app.MsgResolveEventFailed, err)
		}
		return nil

	default:
		return internalError(errors.New("unknown reconciliation kind " + string(event.Kind)))
	}
}
