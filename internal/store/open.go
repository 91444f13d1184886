package store

import (
	"context"
	"fmt"
	"io"

	"github.com/yanizio/aocjsui/internal/database"
)

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverMySQL  = database.DriverMySQL
	DriverSQLite = database.DriverSQLite
)

// Options selects and configures a backend.  DSN must already carry any
// resolved secret.
type Options struct {
	Driver string
	Dir    string // file
	DSN    string // mysql, sqlite
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the configured backend.  The returned Closer releases any
// pool the backend holds and is never nil on success.
func Open(ctx context.Context, o Options) (Store, io.Closer, error) {
	switch o.Driver {
	case DriverMemory:
		return NewMemory(), nopCloser{}, nil

	case DriverFile:
		f, err := NewFile(o.Dir)
		if err != nil {
			return nil, nil, err
		}
		return f, nopCloser{}, nil

	case DriverMySQL, DriverSQLite:
		db, err := database.Open(ctx, o.Driver, o.DSN)
		if err != nil {
			return nil, nil, err
		}
		s, err := NewSQL(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return s, s, nil

	default:
		return nil, nil, fmt.Errorf("store: unknown driver %q", o.Driver)
	}
}
