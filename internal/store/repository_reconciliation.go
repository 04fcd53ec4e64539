// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/models"
)

const reconciliationTable = "reconciliation_events"

var reconciliationColumns = []string{"id", "kind", "user_id", "email", "reason", "created_at", "resolved_at"}

type reconciliationRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewReconciliationRepository constructs a [ReconciliationRepository]
// backed by the "reconciliation_events" table.
func NewReconciliationRepository(db *DB, logger *logger.Logger) ReconciliationRepository {
	logger.Debug().Msg("creating reconciliation repository")
	return &reconciliationRepository{
		db:     db,
		logger: logger,
	}
}

func scanEvent(row rowScanner) (models.ReconciliationEvent, error) {
	var (
		event      models.ReconciliationEvent
		kind       string
		resolvedAt sql.NullTime
	)

	if err := row.Scan(&event.ID, &kind, &event.UserID, &event.Email, &event.Reason, &event.CreatedAt, &resolvedAt); err != nil {
		return models.ReconciliationEvent{}, err
	}

	event.Kind = models.ReconciliationKind(kind)
	event.CreatedAt = event.CreatedAt.UTC()
	if resolvedAt.Valid {
		t := resolvedAt.Time.UTC()
		event.ResolvedAt = &t
	}

	return event, nil
}

// Save appends an open event.
func (r *reconciliationRepository) Save(ctx context.Context, event models.ReconciliationEvent) error {
	log := logger.FromContext(ctx)

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	query, args, err := r.db.builder().
		Insert(reconciliationTable).
		Columns(reconciliationColumns...).
		Values(event.ID, string(event.Kind), event.UserID, event.Email, event.Reason, event.CreatedAt.UTC(), nil).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*reconciliationRepository.Save").
			Str("kind", string(event.Kind)).
			Str("user_id", event.UserID).
			Msg("error saving reconciliation event")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindByID returns the event with the given id, resolved or not.
func (r *reconciliationRepository) FindByID(ctx context.Context, id string) (models.ReconciliationEvent, error) {
	query, args, err := r.db.builder().
		Select(reconciliationColumns...).
		From(reconciliationTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.ReconciliationEvent{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ReconciliationEvent{}, ErrEventNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*reconciliationRepository.FindByID").Msg("error selecting event")
		return models.ReconciliationEvent{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return event, nil
}

// ListOpen returns unresolved events, oldest first.
func (r *reconciliationRepository) ListOpen(ctx context.Context) ([]models.ReconciliationEvent, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select(reconciliationColumns...).
		From(reconciliationTable).
		Where(sq.Eq{"resolved_at": nil}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*reconciliationRepository.ListOpen").Msg("error selecting events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	events := make([]models.ReconciliationEvent, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		events = append(events, event)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return events, nil
}

// MarkResolved stamps an open event as resolved. Resolving an already
// resolved or unknown event returns ErrEventNotFound.
func (r *reconciliationRepository) MarkResolved(ctx context.Context, id string, at time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Update(reconciliationTable).
		Set("resolved_at", at.UTC()).
		Where(sq.Eq{"id": id, "resolved_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*reconciliationRepository.MarkResolved").Str("event_id", id).Msg("error resolving event")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return ErrEventNotFound
	}

	return nil
}
