// internal/store/sql.go
//
// SQL-backed Store.
//
// Context
// -------
// One table holds every key:
//
//	kv_store  (k PK, v TEXT, updated_at)
//
// Set is a single upsert statement, which both MySQL and SQLite execute
// atomically, so readers never see a partial document.  The upsert syntax
// differs per dialect; the driver name picked at Open decides which one runs.
//
// Notes
// -----
//   - Migrate is idempotent and safe to call on every start.
//   - Oxford commas, two spaces after periods.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/aocjsui/internal/database"
)

// SQL stores values in the kv_store table.
type SQL struct {
	db      *sqlx.DB
	dialect dialect
}

type dialect struct {
	schema string
	upsert string
}

var dialects = map[string]dialect{
	database.DriverMySQL: {
		schema: `CREATE TABLE IF NOT EXISTS kv_store (
                    k          VARCHAR(255) NOT NULL PRIMARY KEY,
                    v          MEDIUMTEXT   NOT NULL,
                    updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
                               ON UPDATE CURRENT_TIMESTAMP
                 )`,
		upsert: `INSERT INTO kv_store (k, v) VALUES (?, ?)
                 ON DUPLICATE KEY UPDATE v = VALUES(v)`,
	},
	database.DriverSQLite: {
		schema: `CREATE TABLE IF NOT EXISTS kv_store (
                    k          TEXT NOT NULL PRIMARY KEY,
                    v          TEXT NOT NULL,
                    updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
                 )`,
		upsert: `INSERT INTO kv_store (k, v) VALUES (?, ?)
                 ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at = CURRENT_TIMESTAMP`,
	},
}

// NewSQL wraps an open pool.  The pool's driver name selects the dialect.
func NewSQL(db *sqlx.DB) (*SQL, error) {
	d, ok := dialects[db.DriverName()]
	if !ok {
		return nil, fmt.Errorf("store: no dialect for driver %q", db.DriverName())
	}
	return &SQL{db: db, dialect: d}, nil
}

// Migrate creates the kv_store table when missing.
func (s *SQL) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema); err != nil {
		return fmt.Errorf("store: migrate kv_store: %w", err)
	}
	return nil
}

// Close releases the pool.
func (s *SQL) Close() error { return s.db.Close() }

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrInvalidKey
	}
	const q = `SELECT v FROM kv_store WHERE k = ? LIMIT 1`

	var v string
	err := s.db.GetContext(ctx, &v, q, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store: get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.upsert, key, value); err != nil {
		return fmt.Errorf("store: set %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	const q = `DELETE FROM kv_store WHERE k = ?`
	if _, err := s.db.ExecContext(ctx, q, key); err != nil {
		return fmt.Errorf("store: remove %s: %w", key, err)
	}
	return nil
}
