// internal/settings/resolver.go
//
// Settings resolution: defaults + persisted overrides → Configuration.
//
/*
Context
--------
The Resolver owns one store handle and one immutable Defaults value.  It
exposes exactly three entry points:

  - Resolve  reads the override object, runs the legacy theme migration,
    merges onto the defaults, and derives `year`, `totalDays`,
    `nav.maxAvailableDay`, and `theme`.
  - Update   strips derived fields from the patch, normalizes its theme,
    merges it onto the *persisted* override object (not the resolved
    configuration), writes it back, and publishes a change event.
  - Clear    deletes the override object and publishes a change event.

Failure policy
--------------
Settings are a convenience layer.  Unreadable or malformed persisted data is
treated as "no overrides", and store write failures are logged and counted
but never returned.  Nothing in this file returns an error.

Notes
-----
  - The unlock state is derived from the injected clock on every call and is
    never cached.
  - Every write (Update, Clear, and the legacy migration inside Resolve)
    runs under r.mu.  Resolvers handed out by one Service share a lock per
    scope, so a single process never interleaves two writes for the same
    client.  Several processes sharing one store may race, which is
    acceptable for a local tool.
  - Events are published after the lock is released, so a listener may
    call back into the Service.
*/
package settings

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/aocjsui/internal/metrics"
	"github.com/yanizio/aocjsui/internal/store"
)

/*──────────────────────────── keys ─────────────────────────────────────────*/

const (
	// OverridesKey holds the JSON-encoded override Patch.
	OverridesKey = "aoc.settings"
	// LegacyThemeKey is the obsolete standalone theme key.
	LegacyThemeKey = "theme"
)

/*──────────────────────────── construction ─────────────────────────────────*/

// Resolver computes effective settings for one store scope.
type Resolver struct {
	store    store.Store
	defaults Defaults
	base     Patch
	clock    func() time.Time
	hub      *Hub
	log      *zap.Logger
	scope    string
	mu       *sync.Mutex // serialises every write for one scope, legacy migration included
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.clock = fn
		}
	}
}

// WithHub shares a notification hub between resolvers.
func WithHub(h *Hub) Option {
	return func(r *Resolver) {
		if h != nil {
			r.hub = h
		}
	}
}

// WithLogger replaces the global zap logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithScope tags published events with scope (usually a client id).
func WithScope(scope string) Option {
	return func(r *Resolver) { r.scope = scope }
}

// withLock shares one mutex between resolvers over the same scope.
func withLock(mu *sync.Mutex) Option {
	return func(r *Resolver) {
		if mu != nil {
			r.mu = mu
		}
	}
}

// New returns a Resolver over s.  A nil store falls back to an empty
// in-memory store.
func New(s store.Store, d Defaults, opts ...Option) *Resolver {
	if s == nil {
		s = store.NewMemory()
	}
	r := &Resolver{
		store:    s,
		defaults: d,
		base:     d.asPatch(),
		clock:    time.Now,
		hub:      &Hub{},
		log:      zap.L(),
		mu:       &sync.Mutex{},
	}
	for _, o := range opts {
		o(r)
	}
	r.log = r.log.With(zap.String("component", "settings"))
	if r.scope != "" {
		r.log = r.log.With(zap.String("scope", r.scope))
	}
	return r
}

// Defaults returns the static default configuration.
func (r *Resolver) Defaults() Defaults { return r.defaults }

// Subscribe registers a change listener on the resolver's hub.
func (r *Resolver) Subscribe(l Listener) (unsubscribe func()) {
	return r.hub.Subscribe(l)
}

/*──────────────────────────── public API ───────────────────────────────────*/

// Resolve returns the effective configuration.  It never fails.
func (r *Resolver) Resolve(ctx context.Context) Configuration {
	metrics.SettingsResolveTotal.Inc()
	return r.build(r.current(ctx))
}

// Overrides returns the persisted override object after migration.
func (r *Resolver) Overrides(ctx context.Context) Patch {
	return r.current(ctx)
}

// Update merges patch into the persisted overrides and returns the freshly
// resolved configuration.  Derived fields in patch are silently dropped.
func (r *Resolver) Update(ctx context.Context, patch Patch) Configuration {
	metrics.SettingsUpdateTotal.Inc()

	r.mu.Lock()
	next := r.overrides(ctx).Merge(patch.sanitized())
	err := r.write(ctx, next)
	cfg := r.resolveLocked(ctx)
	r.mu.Unlock()

	if err == nil {
		r.publish(ctx, cfg)
	}
	return cfg
}

// Clear deletes the persisted overrides and returns the default-derived
// configuration.  Clearing an empty store still publishes an event.
func (r *Resolver) Clear(ctx context.Context) Configuration {
	metrics.SettingsResetTotal.Inc()

	r.mu.Lock()
	err := r.store.Remove(ctx, OverridesKey)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(metrics.OpRemove).Inc()
		r.log.Warn("settings overrides remove failed", zap.Error(err))
	}
	cfg := r.resolveLocked(ctx)
	r.mu.Unlock()

	if err == nil {
		r.publish(ctx, cfg)
	}
	return cfg
}

// resolveLocked is Resolve for callers already holding r.mu.
func (r *Resolver) resolveLocked(ctx context.Context) Configuration {
	metrics.SettingsResolveTotal.Inc()
	return r.build(r.overrides(ctx))
}

/*──────────────────────────── resolution ───────────────────────────────────*/

func (r *Resolver) build(over Patch) Configuration {
	now := r.clock()
	merged := r.base.Merge(over)

	year := now.Year()
	switch {
	case merged.Year != nil && *merged.Year != 0:
		year = *merged.Year
	case r.defaults.Year != 0:
		year = r.defaults.Year
	}
	totalDays := TotalDaysForYear(year)

	theme := ThemeDark
	switch {
	case merged.Theme != nil && *merged.Theme != "":
		theme = NormalizeTheme(*merged.Theme)
	case r.defaults.Theme != "":
		theme = NormalizeTheme(string(r.defaults.Theme))
	}

	layout := LayoutTabbed
	switch {
	case merged.DayLayout != nil && *merged.DayLayout != "":
		layout = Layout(*merged.DayLayout)
	case r.defaults.DayLayout != "":
		layout = r.defaults.DayLayout
	}

	paths := Paths{Inputs: defaultInputsPath, Solutions: defaultSolutionsPath}
	if merged.Paths != nil {
		paths.Inputs = deref(merged.Paths.Inputs, paths.Inputs)
		paths.Solutions = deref(merged.Paths.Solutions, paths.Solutions)
	}

	showDisabled := true
	if merged.Nav != nil {
		showDisabled = deref(merged.Nav.ShowDisabledFutureDays, true)
	}

	return Configuration{
		CurrentYear:       now.Year(),
		Year:              year,
		Theme:             theme,
		AutoLoadExample:   deref(merged.AutoLoadExample, true),
		AutoLoadSolutions: deref(merged.AutoLoadSolutions, true),
		TotalDays:         totalDays,
		Paths:             paths,
		Nav: Nav{
			MaxAvailableDay:        UnlockedDays(year, totalDays, now),
			ShowDisabledFutureDays: showDisabled,
		},
		DayLayout: layout,
	}
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

/*──────────────────────────── persistence ──────────────────────────────────*/

// current reads the override object without locking unless a legacy key
// is waiting to be migrated.  The migration writes, so it runs under r.mu
// and re-reads everything there.
func (r *Resolver) current(ctx context.Context) Patch {
	if !r.legacyPending(ctx) {
		return r.read(ctx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overrides(ctx)
}

// overrides reads the override object and applies the legacy migration.
// Callers hold r.mu.
func (r *Resolver) overrides(ctx context.Context) Patch {
	return r.migrateLegacyTheme(ctx, r.read(ctx))
}

// read loads the override object.  Any failure yields an empty Patch.
func (r *Resolver) read(ctx context.Context) Patch {
	raw, ok, err := r.store.Get(ctx, OverridesKey)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(metrics.OpRead).Inc()
		r.log.Warn("settings overrides read failed", zap.Error(err))
		return Patch{}
	}
	if !ok || raw == "" {
		return Patch{}
	}

	var p Patch
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(metrics.OpDecode).Inc()
		r.log.Warn("settings overrides malformed, using defaults", zap.Error(err))
		return Patch{}
	}
	return p
}

func (r *Resolver) write(ctx context.Context, p Patch) error {
	raw, err := json.Marshal(p)
	if err == nil {
		err = r.store.Set(ctx, OverridesKey, string(raw))
	}
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(metrics.OpWrite).Inc()
		r.log.Warn("settings overrides write failed", zap.Error(err))
	}
	return err
}

func (r *Resolver) publish(ctx context.Context, cfg Configuration) {
	metrics.SettingsChangesTotal.Inc()
	r.hub.Publish(ctx, Event{Scope: r.scope, Settings: cfg})
}
