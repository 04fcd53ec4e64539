// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/erp-accounts/internal/config"
	"github.com/MKhiriev/erp-accounts/internal/logger"
)

// NewConnectSQLite opens the SQLite file named by a sqlite3://path DSN.
// SQLite serializes writers, so the pool is limited to one connection.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	path := strings.TrimPrefix(cfg.DSN, "sqlite3://")
	if path == "" {
		return nil, ErrUnsupportedDSN
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	db, err := open(ctx, sqliteDialect, path+sep+"_busy_timeout=5000&_foreign_keys=on", log)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	return db, nil
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
