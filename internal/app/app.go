// internal/app/app.go
//
// Process wiring shared by cmd/web and cmd/aocctl.
//
// Context
// -------
// Both binaries open the same settings store from the same config, so the
// steps live here once: resolve `store.password` (plain or `vault:`),
// substitute it into the DSN template, anchor relative paths at the
// discovered root, and open the backend.
//
// Notes
// -----
//   - A Vault client is created only when the password is a reference.
//   - Oxford commas, two spaces after periods.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/aocjsui/internal/config"
	"github.com/yanizio/aocjsui/internal/settings"
	"github.com/yanizio/aocjsui/internal/store"
	"github.com/yanizio/aocjsui/internal/vault"
)

// SecretTTL is how long a resolved store password stays cached.
const SecretTTL = 10 * time.Minute

// Secrets returns a Vault client when cfg needs one, else nil.
func Secrets(ctx context.Context, cfg *config.Config) (vault.SecretGetter, error) {
	if !vault.IsRef(cfg.Store.Password) {
		return nil, nil
	}
	c, err := vault.New(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// StoreOptions turns the config section into store.Options, resolving the
// password through secrets.
func StoreOptions(ctx context.Context, cfg *config.Config, secrets vault.SecretGetter) (store.Options, error) {
	o := store.Options{Driver: cfg.Store.Driver}
	switch cfg.Store.Driver {
	case store.DriverFile:
		o.Dir = cfg.Paths.Abs(cfg.Store.Dir)
	case store.DriverMySQL, store.DriverSQLite:
		pw, err := vault.Resolve(ctx, secrets, cfg.Store.Password, SecretTTL)
		if err != nil {
			return store.Options{}, fmt.Errorf("store password: %w", err)
		}
		o.DSN = cfg.Store.FillDSN(pw)
	}
	return o, nil
}

// OpenStore opens the configured backend.
func OpenStore(ctx context.Context, cfg *config.Config, secrets vault.SecretGetter) (store.Store, io.Closer, error) {
	o, err := StoreOptions(ctx, cfg, secrets)
	if err != nil {
		return nil, nil, err
	}
	st, closer, err := store.Open(ctx, o)
	if err != nil {
		return nil, nil, err
	}
	zap.L().Info("settings store open", zap.String("driver", o.Driver))
	return st, closer, nil
}

// NewSettings builds the settings service over st with the configured
// defaults.
func NewSettings(cfg *config.Config, st store.Store, opts ...settings.Option) *settings.Service {
	return settings.NewService(st, cfg.Playground.Defaults(), opts...)
}
