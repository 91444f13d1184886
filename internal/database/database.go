// Package database centralises sqlx connection helpers for the SQL-backed
// settings store.  Two drivers are wired in:
//
//	mysql   – go-sql-driver/mysql, also fine for MariaDB.
//	sqlite  – modernc.org/sqlite, pure Go, no cgo.
//
// Both helpers Ping the database before returning so callers can fail fast
// during bootstrap.  Callers should Close() the returned *sqlx.DB when no
// longer needed.
package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Options tunes one pool.
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open returns a pool with conservative defaults: 15 max open, 5 idle, and
// a 30-minute connection lifetime.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	return OpenWithOptions(ctx, Options{
		Driver:          driver,
		DSN:             dsn,
		MaxOpenConns:    15,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	})
}

// OpenWithOptions opens, tunes, and pings a pool.  SQLite pools are pinned
// to a single writer connection and switched to WAL.
func OpenWithOptions(ctx context.Context, o Options) (*sqlx.DB, error) {
	switch o.Driver {
	case DriverMySQL:
	case DriverSQLite:
		if dir := filepath.Dir(o.DSN); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("sqlite mkdir: %w", err)
			}
		}
		o.MaxOpenConns, o.MaxIdleConns = 1, 1
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", o.Driver)
	}

	db, err := sqlx.Open(o.Driver, o.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s open: %w", o.Driver, err)
	}

	db.SetMaxOpenConns(o.MaxOpenConns)
	db.SetMaxIdleConns(o.MaxIdleConns)
	db.SetConnMaxLifetime(o.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s ping: %w", o.Driver, err)
	}

	if o.Driver == DriverSQLite {
		if err := applyPragmas(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func applyPragmas(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("sqlite wal: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000;"); err != nil {
		return fmt.Errorf("sqlite busy_timeout: %w", err)
	}
	return nil
}
