// internal/store/store.go
//
// Durable key-value store contract.
//
// Context
// -------
// Settings overrides live under a single key as one JSON document, exactly as
// the browser front-end keeps them in local storage.  The resolver only ever
// needs three calls: Get, Set, and Remove.  Each backend guarantees that a
// single-key Set is atomic, so a concurrent Get never observes a half-written
// document.
//
// Backends
// --------
//   - Memory  – map guarded by a RWMutex (tests, ephemeral CLI runs).
//   - File    – one JSON file per key, temp file + rename.
//   - SQL     – `kv_store` table through sqlx (MySQL or SQLite).
//
// Scoped wraps any backend and prefixes keys, so one physical store can hold
// many clients' settings side by side.
package store

import (
	"context"
	"errors"
	"strings"
)

// Store is the minimal durable key-value contract.
type Store interface {
	// Get returns the stored value.  ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key.  Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// ErrInvalidKey is returned for empty keys.
var ErrInvalidKey = errors.New("store: key must be non-empty")

// Scoped returns a Store that prefixes every key with "<prefix>:".  An empty
// prefix returns base unchanged.
func Scoped(base Store, prefix string) Store {
	if prefix == "" {
		return base
	}
	return &scoped{base: base, prefix: prefix + ":"}
}

type scoped struct {
	base   Store
	prefix string
}

func (s *scoped) key(k string) string { return s.prefix + k }

func (s *scoped) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrInvalidKey
	}
	return s.base.Get(ctx, s.key(key))
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}
	return s.base.Set(ctx, s.key(key), value)
}

func (s *scoped) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	return s.base.Remove(ctx, s.key(key))
}

// validKey rejects keys that are empty or would escape a file-store root.
func validKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, "/\\\x00") && key != "." && key != ".."
}
