// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/models"
)

const (
	usersTable     = "users"
	bootstrapTable = "bootstrap_admin"
)

var userColumns = []string{
	"user_id",
	"email",
	"name",
	"role",
	"is_disabled",
	"last_login",
	"created_at",
	"updated_at",
}

// sortColumns maps the sortable fields to their SQL expressions. Only
// values from this map ever reach ORDER BY.
var sortColumns = map[models.SortField]string{
	models.SortByName:      "LOWER(name)",
	models.SortByEmail:     "email",
	models.SortByRole:      "role",
	models.SortByCreatedAt: "created_at",
	models.SortByLastLogin: "last_login",
}

// userRepository is the SQL implementation of [UserRepository] over the
// "users" and "bootstrap_admin" tables.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user      models.User
		role      string
		lastLogin sql.NullTime
	)

	if err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.Name,
		&role,
		&user.IsDisabled,
		&lastLogin,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return models.User{}, err
	}

	user.Role = models.Role(role)
	if lastLogin.Valid {
		t := lastLogin.Time.UTC()
		user.LastLogin = &t
	}
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()

	return user, nil
}

// Create inserts the user row. With claimBootstrap the conditional
// bootstrap insert runs first in the same transaction; the row that wins it
// is stored as admin. A failed user insert rolls the claim back.
//
// Error handling:
//   - unique violation on user_id or email → [ErrUserAlreadyExists].
//   - any other driver error → wrapped [ErrExecutingStatement].
func (r *userRepository) Create(ctx context.Context, user models.User, claimBootstrap bool) (models.User, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		if claimBootstrap {
			claimed, err := r.claimBootstrap(ctx, tx, user.UserID, now)
			if err != nil {
				return err
			}
			if claimed {
				user.Role = models.RoleAdmin
			}
		}

		query, args, err := r.db.builder().
			Insert(usersTable).
			Columns(userColumns...).
			Values(user.UserID, user.Email, user.Name, string(user.Role), user.IsDisabled, user.LastLogin, user.CreatedAt, user.UpdatedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			if r.db.isUniqueViolation(err) {
				return ErrUserAlreadyExists
			}
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Str("user_id", user.UserID).Msg("error inserting user")
		return models.User{}, err
	}

	return user, nil
}

// claimBootstrap attempts the single-row bootstrap insert and reports
// whether this transaction won it.
func (r *userRepository) claimBootstrap(ctx context.Context, tx *sql.Tx, userID string, at time.Time) (bool, error) {
	query, args, err := r.db.builder().
		Insert(bootstrapTable).
		Columns("id", "user_id", "claimed_at").
		Values(1, userID, at).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n == 1, nil
}

// FindByID returns the row with the given provider user id.
func (r *userRepository) FindByID(ctx context.Context, userID string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByID", sq.Eq{"user_id": userID})
}

// FindByEmail returns the row with the given email. Emails are stored
// lower-cased, so the lookup value is lower-cased too.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByEmail", sq.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *userRepository) findOne(ctx context.Context, fn string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", fn).Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// CountByRole returns the number of rows holding role.
func (r *userRepository) CountByRole(ctx context.Context, role models.Role) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Select("COUNT(*)").
		From(usersTable).
		Where(sq.Eq{"role": string(role)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "*userRepository.CountByRole").Str("role", string(role)).Msg("error counting users")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// SetDisabled sets the disabled flag. Setting the current value again is
// not an error.
func (r *userRepository) SetDisabled(ctx context.Context, userID string, disabled bool) error {
	return r.update(ctx, "*userRepository.SetDisabled", userID, sq.Eq{"is_disabled": disabled})
}

// UpdateLastLogin records a successful login time.
func (r *userRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	return r.update(ctx, "*userRepository.UpdateLastLogin", userID, sq.Eq{"last_login": at.UTC()})
}

func (r *userRepository) update(ctx context.Context, fn, userID string, set sq.Eq) error {
	log := logger.FromContext(ctx)

	builder := r.db.builder().Update(usersTable)
	for column, value := range set {
		builder = builder.Set(column, value)
	}

	query, args, err := builder.
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, log, fn, userID, query, args)
}

// Delete removes the row with the given id.
func (r *userRepository) Delete(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Delete(usersTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, log, "*userRepository.Delete", userID, query, args)
}

func (r *userRepository) execAffectingOne(ctx context.Context, log *logger.Logger, fn, userID, query string, args []any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Str("user_id", userID).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return ErrUserNotFound
	}

	return nil
}

// List returns one page of users. The request is normalized first and a
// page past the end is clamped to the last page.
func (r *userRepository) List(ctx context.Context, req models.PageRequest) (models.UserPage, error) {
	log := logger.FromContext(ctx)
	req = req.Normalize()

	countQuery, countArgs, err := applyUserFilters(r.db.builder().Select("COUNT(*)").From(usersTable), req).ToSql()
	if err != nil {
		return models.UserPage{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int
	if err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*userRepository.List").Msg("error counting users")
		return models.UserPage{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	req = req.Clamp(total)

	query, args, err := buildListUsersQuery(r.db.builder(), req)
	if err != nil {
		return models.UserPage{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.List").Msg("error selecting users")
		return models.UserPage{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, req.PageSize)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.List").Msg("error scanning user")
			return models.UserPage{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return models.UserPage{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return models.NewUserPage(users, total, req), nil
}

func buildListUsersQuery(builder sq.StatementBuilderType, req models.PageRequest) (string, []any, error) {
	order := "DESC"
	if req.Order == models.OrderAsc {
		order = "ASC"
	}

	return applyUserFilters(builder.Select(userColumns...).From(usersTable), req).
		OrderBy(sortColumns[req.Sort]+" "+order, "user_id ASC").
		Limit(uint64(req.PageSize)).
		Offset(uint64(req.Offset())).
		ToSql()
}

// likeEscaper makes the search text match literally inside a LIKE pattern
// with ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func applyUserFilters(q sq.SelectBuilder, req models.PageRequest) sq.SelectBuilder {
	if req.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(req.Search)) + "%"
		q = q.Where(sq.Or{
			sq.Expr(`LOWER(name) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`LOWER(email) LIKE ? ESCAPE '\'`, pattern),
		})
	}
	if req.Role != "" {
		q = q.Where(sq.Eq{"role": string(req.Role)})
	}
	return q
}
