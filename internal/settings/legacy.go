package settings

import (
	"context"

	"go.uber.org/zap"

	"github.com/yanizio/aocjsui/internal/metrics"
)

// legacyPending reports whether the legacy key may need migrating.  A read
// error counts as pending so the locked path logs and counts it.
func (r *Resolver) legacyPending(ctx context.Context) bool {
	v, ok, err := r.store.Get(ctx, LegacyThemeKey)
	return err != nil || (ok && v != "")
}

// migrateLegacyTheme folds the obsolete standalone theme key into the
// override object and deletes it.  An existing theme override always wins.
// Callers hold r.mu.
//
// If the merged object cannot be written the legacy key is kept, so the next
// call retries, but the migrated theme still applies to this resolution.
func (r *Resolver) migrateLegacyTheme(ctx context.Context, over Patch) Patch {
	legacy, ok, err := r.store.Get(ctx, LegacyThemeKey)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(metrics.OpRead).Inc()
		r.log.Warn("legacy theme read failed", zap.Error(err))
		return over
	}
	if !ok || legacy == "" {
		return over
	}

	if over.Theme == nil {
		over = over.Merge(Patch{Theme: ptr(string(NormalizeTheme(legacy)))})
		if err := r.write(ctx, over); err != nil {
			return over
		}
		metrics.LegacyMigrationsTotal.Inc()
		r.log.Info("legacy theme migrated", zap.String("theme", *over.Theme))
	}

	if err := r.store.Remove(ctx, LegacyThemeKey); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(metrics.OpRemove).Inc()
		r.log.Warn("legacy theme remove failed", zap.Error(err))
	}
	return over
}
