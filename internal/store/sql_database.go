// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/erp-accounts/internal/config"
	"github.com/MKhiriev/erp-accounts/internal/logger"
	"github.com/MKhiriev/erp-accounts/migrations"
)

// dialect captures the per-driver differences the repositories care about.
type dialect struct {
	driver      string
	goose       string
	placeholder sq.PlaceholderFormat
	isUnique    func(error) bool
}

var (
	postgresDialect = dialect{
		driver:      "pgx",
		goose:       "postgres",
		placeholder: sq.Dollar,
		isUnique:    isPostgresUniqueViolation,
	}
	sqliteDialect = dialect{
		driver:      "sqlite3",
		goose:       "sqlite3",
		placeholder: sq.Question,
		isUnique:    isSQLiteUniqueViolation,
	}
)

// DB is the directory database handle shared by all repositories.
type DB struct {
	*sql.DB
	dialect dialect
	logger  *logger.Logger
}

// NewConnect opens the database named by cfg.DSN and pings it. The DSN
// scheme selects the driver: postgres:// and postgresql:// use pgx,
// sqlite3://path opens a local SQLite file.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch {
	case strings.HasPrefix(cfg.DSN, "postgres://"), strings.HasPrefix(cfg.DSN, "postgresql://"):
		return NewConnectPostgres(ctx, cfg, log)
	case strings.HasPrefix(cfg.DSN, "sqlite3://"):
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, ErrUnsupportedDSN
	}
}

func open(ctx context.Context, d dialect, dsn string, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open(d.driver, dsn)
	if err != nil {
		log.Err(err).Str("func", "store.open").Str("driver", d.driver).Msg("error opening database")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "store.open").Str("driver", d.driver).Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("error connecting database: %w", err)
	}
	log.Info().Str("func", "store.open").Str("driver", d.driver).Msg("connected to database successfully")

	return &DB{DB: conn, dialect: d, logger: log}, nil
}

// Migrate applies the embedded schema migrations for the connected dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect.goose)
}

func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.dialect.placeholder)
}

func (db *DB) isUniqueViolation(err error) bool {
	return db.dialect.isUnique != nil && db.dialect.isUnique(err)
}

// withTx runs fn in a transaction, committing on success and rolling back on
// error or panic. Panics are rethrown after the rollback.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("%w: %w", ErrCommitingTransaction, cErr)
		}
	}()

	return fn(tx)
}
