package settings

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/yanizio/aocjsui/internal/store"
)

/*──────────────────────────── helpers ──────────────────────────────────────*/

func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 10, 0, 0, 0, time.UTC) }
}

// faultyStore wraps Memory and fails selected operations.
type faultyStore struct {
	*store.Memory
	getErr, setErr, removeErr error
}

func newFaulty() *faultyStore { return &faultyStore{Memory: store.NewMemory()} }

func (f *faultyStore) Get(ctx context.Context, k string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.Memory.Get(ctx, k)
}

func (f *faultyStore) Set(ctx context.Context, k, v string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Memory.Set(ctx, k, v)
}

func (f *faultyStore) Remove(ctx context.Context, k string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	return f.Memory.Remove(ctx, k)
}

// recorder collects published events.
type recorder struct{ events []Event }

func (r *recorder) SettingsChanged(_ context.Context, ev Event) {
	r.events = append(r.events, ev)
}

func defaultConfig() Configuration {
	return Configuration{
		CurrentYear:       2025,
		Year:              2025,
		Theme:             ThemeDark,
		AutoLoadExample:   true,
		AutoLoadSolutions: true,
		TotalDays:         12,
		Paths:             Paths{Inputs: "inputs", Solutions: "solutions"},
		Nav:               Nav{MaxAvailableDay: 5, ShowDisabledFutureDays: true},
		DayLayout:         LayoutTabbed,
	}
}

func newTestResolver(s store.Store) *Resolver {
	return New(s, BuiltinDefaults(), WithClock(fixedClock(2025, time.December, 5)))
}

func storedPatch(t *testing.T, s store.Store) (Patch, bool) {
	t.Helper()
	raw, ok, err := s.Get(context.Background(), OverridesKey)
	if err != nil {
		t.Fatalf("store get: %v", err)
	}
	if !ok {
		return Patch{}, false
	}
	var p Patch
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("stored overrides not JSON: %v (%q)", err, raw)
	}
	return p, true
}

/*──────────────────────────── resolution ───────────────────────────────────*/

func TestResolveDefaults(t *testing.T) {
	r := newTestResolver(store.NewMemory())
	got := r.Resolve(context.Background())
	if diff := cmp.Diff(defaultConfig(), got); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveUnlockTracksClock(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		clock func() time.Time
		year  int
		max   int
		total int
	}{
		{fixedClock(2025, time.December, 5), 2025, 5, 12},
		{fixedClock(2025, time.December, 20), 2025, 12, 12},
		{fixedClock(2025, time.November, 30), 2025, 0, 12},
		{fixedClock(2025, time.December, 5), 2024, 25, 25},
		{fixedClock(2025, time.December, 5), 2026, 0, 12},
	}
	for _, tc := range cases {
		s := store.NewMemory()
		r := New(s, BuiltinDefaults(), WithClock(tc.clock))
		cfg := r.Update(ctx, Patch{Year: ptr(tc.year)})
		if cfg.TotalDays != tc.total || cfg.Nav.MaxAvailableDay != tc.max {
			t.Errorf("year %d at %s: total=%d max=%d, want %d/%d",
				tc.year, tc.clock().Format("2006-01-02"),
				cfg.TotalDays, cfg.Nav.MaxAvailableDay, tc.total, tc.max)
		}
	}
}

func TestResolveYearFallsBackToClock(t *testing.T) {
	d := BuiltinDefaults()
	d.Year = 0
	r := New(store.NewMemory(), d, WithClock(fixedClock(2023, time.December, 3)))

	cfg := r.Resolve(context.Background())
	if cfg.Year != 2023 || cfg.CurrentYear != 2023 {
		t.Fatalf("year=%d current=%d, want 2023", cfg.Year, cfg.CurrentYear)
	}
	if cfg.TotalDays != 25 || cfg.Nav.MaxAvailableDay != 3 {
		t.Fatalf("total=%d max=%d, want 25/3", cfg.TotalDays, cfg.Nav.MaxAvailableDay)
	}
}

func TestResolveStringYearOverride(t *testing.T) {
	s := store.NewMemory()
	_ = s.Set(context.Background(), OverridesKey, `{"year":"2024"}`)

	cfg := newTestResolver(s).Resolve(context.Background())
	if cfg.Year != 2024 || cfg.TotalDays != 25 {
		t.Fatalf("year=%d total=%d, want 2024/25", cfg.Year, cfg.TotalDays)
	}
}

func TestResolveMalformedOverridesUseDefaults(t *testing.T) {
	for _, raw := range []string{"{not json", `"just a string"`, `{"theme":7}`, `{"year":2020,"theme":5}`, ""} {
		s := store.NewMemory()
		_ = s.Set(context.Background(), OverridesKey, raw)

		got := newTestResolver(s).Resolve(context.Background())
		if diff := cmp.Diff(defaultConfig(), got); diff != "" {
			t.Errorf("%q: mismatch (-want +got):\n%s", raw, diff)
		}
	}
}

func TestResolveStoreReadFailureUsesDefaults(t *testing.T) {
	s := newFaulty()
	s.getErr = errors.New("disk gone")

	got := newTestResolver(s).Resolve(context.Background())
	if diff := cmp.Diff(defaultConfig(), got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveCustomDefaults(t *testing.T) {
	d := Defaults{
		Year:      2019,
		Theme:     ThemeLight,
		Paths:     Paths{Inputs: "data"},
		DayLayout: LayoutDay,
	}
	r := New(store.NewMemory(), d, WithClock(fixedClock(2025, time.December, 5)))
	cfg := r.Resolve(context.Background())

	if cfg.Theme != ThemeLight || cfg.DayLayout != LayoutDay || cfg.Year != 2019 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.Paths.Inputs != "data" || cfg.Paths.Solutions != "solutions" {
		t.Fatalf("paths = %+v", cfg.Paths)
	}
	if cfg.AutoLoadExample || cfg.AutoLoadSolutions || cfg.Nav.ShowDisabledFutureDays {
		t.Fatalf("explicit false defaults lost: %+v", cfg)
	}
}

/*──────────────────────────── update ───────────────────────────────────────*/

func TestUpdateThemeNormalized(t *testing.T) {
	s := store.NewMemory()
	r := newTestResolver(s)

	cfg := r.Update(context.Background(), Patch{Theme: ptr("blue")})
	if cfg.Theme != ThemeDark {
		t.Fatalf("theme = %q, want dark", cfg.Theme)
	}
	p, _ := storedPatch(t, s)
	if p.Theme == nil || *p.Theme != "dark" {
		t.Fatalf("persisted theme = %v, want dark", p.Theme)
	}

	cfg = r.Update(context.Background(), Patch{Theme: ptr("light")})
	if cfg.Theme != ThemeLight {
		t.Fatalf("theme = %q, want light", cfg.Theme)
	}
}

func TestUpdateIgnoresDerivedFields(t *testing.T) {
	s := store.NewMemory()
	r := newTestResolver(s)

	cfg := r.Update(context.Background(), Patch{
		TotalDays: ptr(99),
		Nav:       &NavPatch{MaxAvailableDay: ptr(30)},
	})
	if cfg.TotalDays != 12 || cfg.Nav.MaxAvailableDay != 5 {
		t.Fatalf("derived fields leaked: total=%d max=%d", cfg.TotalDays, cfg.Nav.MaxAvailableDay)
	}

	p, _ := storedPatch(t, s)
	if p.TotalDays != nil {
		t.Fatalf("totalDays persisted: %d", *p.TotalDays)
	}
	if p.Nav != nil && p.Nav.MaxAvailableDay != nil {
		t.Fatalf("maxAvailableDay persisted: %d", *p.Nav.MaxAvailableDay)
	}
}

func TestUpdateMergesAcrossCalls(t *testing.T) {
	s := store.NewMemory()
	r := newTestResolver(s)
	ctx := context.Background()

	r.Update(ctx, Patch{Paths: &PathsPatch{Inputs: ptr("x")}})
	cfg := r.Update(ctx, Patch{Paths: &PathsPatch{Solutions: ptr("y")}})

	if cfg.Paths != (Paths{Inputs: "x", Solutions: "y"}) {
		t.Fatalf("paths = %+v, want x/y", cfg.Paths)
	}

	want := Patch{Paths: &PathsPatch{Inputs: ptr("x"), Solutions: ptr("y")}}
	got, _ := storedPatch(t, s)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("persisted mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdatePersistsOnlyOverrides(t *testing.T) {
	s := store.NewMemory()
	r := newTestResolver(s)

	r.Update(context.Background(), Patch{DayLayout: ptr("day")})
	got, _ := storedPatch(t, s)
	want := Patch{DayLayout: ptr("day")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("defaults leaked into overrides (-want +got):\n%s", diff)
	}
}

func TestUpdateFalseBooleansStick(t *testing.T) {
	r := newTestResolver(store.NewMemory())
	cfg := r.Update(context.Background(), Patch{
		AutoLoadExample: ptr(false),
		Nav:             &NavPatch{ShowDisabledFutureDays: ptr(false)},
	})
	if cfg.AutoLoadExample || cfg.Nav.ShowDisabledFutureDays {
		t.Fatalf("false overrides lost: %+v", cfg)
	}
	if !cfg.AutoLoadSolutions {
		t.Fatal("untouched boolean flipped")
	}
}

func TestUpdateNotifiesOnce(t *testing.T) {
	r := newTestResolver(store.NewMemory())
	var rec recorder
	r.Subscribe(&rec)

	cfg := r.Update(context.Background(), Patch{Year: ptr(2024)})
	if len(rec.events) != 1 {
		t.Fatalf("got %d events, want 1", len(rec.events))
	}
	if diff := cmp.Diff(cfg, rec.events[0].Settings); diff != "" {
		t.Fatalf("event payload mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateWriteFailure(t *testing.T) {
	s := newFaulty()
	s.setErr = errors.New("quota exceeded")
	r := newTestResolver(s)
	var rec recorder
	r.Subscribe(&rec)

	cfg := r.Update(context.Background(), Patch{Theme: ptr("light")})
	if diff := cmp.Diff(defaultConfig(), cfg); diff != "" {
		t.Fatalf("failed write changed result (-want +got):\n%s", diff)
	}
	if len(rec.events) != 0 {
		t.Fatalf("got %d events after failed write, want 0", len(rec.events))
	}
}

/*──────────────────────────── clear ────────────────────────────────────────*/

func TestClearRestoresDefaults(t *testing.T) {
	s := store.NewMemory()
	r := newTestResolver(s)
	ctx := context.Background()

	r.Update(ctx, Patch{Theme: ptr("light"), Year: ptr(2022)})
	got := r.Clear(ctx)

	if diff := cmp.Diff(defaultConfig(), got); diff != "" {
		t.Fatalf("clear mismatch (-want +got):\n%s", diff)
	}
	if _, ok := storedPatch(t, s); ok {
		t.Fatal("overrides still present after clear")
	}
}

func TestClearIdempotent(t *testing.T) {
	r := newTestResolver(store.NewMemory())
	var rec recorder
	r.Subscribe(&rec)
	ctx := context.Background()

	first := r.Clear(ctx)
	second := r.Clear(ctx)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second clear differs (-first +second):\n%s", diff)
	}
	if len(rec.events) != 2 {
		t.Fatalf("got %d events, want 2", len(rec.events))
	}
}

func TestClearRemoveFailure(t *testing.T) {
	s := newFaulty()
	r := newTestResolver(s)
	ctx := context.Background()
	r.Update(ctx, Patch{Theme: ptr("light")})

	var rec recorder
	r.Subscribe(&rec)
	s.removeErr = errors.New("read-only")

	cfg := r.Clear(ctx)
	if cfg.Theme != ThemeLight {
		t.Fatalf("theme = %q, want light to survive failed clear", cfg.Theme)
	}
	if len(rec.events) != 0 {
		t.Fatalf("got %d events after failed clear, want 0", len(rec.events))
	}
}

/*──────────────────────────── legacy migration ─────────────────────────────*/

func TestLegacyThemeMigrated(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()
	_ = s.Set(ctx, LegacyThemeKey, "light")

	cfg := newTestResolver(s).Resolve(ctx)
	if cfg.Theme != ThemeLight {
		t.Fatalf("theme = %q, want light", cfg.Theme)
	}
	if _, ok, _ := s.Get(ctx, LegacyThemeKey); ok {
		t.Fatal("legacy key not removed")
	}
	p, ok := storedPatch(t, s)
	if !ok || p.Theme == nil || *p.Theme != "light" {
		t.Fatalf("migrated theme not persisted: %+v", p)
	}
}

func TestLegacyThemeDoesNotOverride(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()
	_ = s.Set(ctx, OverridesKey, `{"theme":"dark"}`)
	_ = s.Set(ctx, LegacyThemeKey, "light")

	cfg := newTestResolver(s).Resolve(ctx)
	if cfg.Theme != ThemeDark {
		t.Fatalf("theme = %q, want dark", cfg.Theme)
	}
	if _, ok, _ := s.Get(ctx, LegacyThemeKey); ok {
		t.Fatal("legacy key not removed")
	}
}

func TestLegacyThemeUnknownValue(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()
	_ = s.Set(ctx, LegacyThemeKey, "solarized")

	cfg := newTestResolver(s).Resolve(ctx)
	if cfg.Theme != ThemeDark {
		t.Fatalf("theme = %q, want dark", cfg.Theme)
	}
	p, _ := storedPatch(t, s)
	if p.Theme == nil || *p.Theme != "dark" {
		t.Fatalf("persisted theme = %v, want dark", p.Theme)
	}
}

func TestLegacyThemeKeptWhenWriteFails(t *testing.T) {
	s := newFaulty()
	ctx := context.Background()
	_ = s.Memory.Set(ctx, LegacyThemeKey, "light")
	s.setErr = errors.New("quota exceeded")

	cfg := newTestResolver(s).Resolve(ctx)
	if cfg.Theme != ThemeLight {
		t.Fatalf("theme = %q, want light for this resolution", cfg.Theme)
	}
	if _, ok, _ := s.Memory.Get(ctx, LegacyThemeKey); !ok {
		t.Fatal("legacy key dropped although migration write failed")
	}
}

func TestUpdateAfterLegacyKeepsMigratedTheme(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()
	_ = s.Set(ctx, LegacyThemeKey, "light")

	cfg := newTestResolver(s).Update(ctx, Patch{Year: ptr(2024)})
	if cfg.Theme != ThemeLight || cfg.Year != 2024 {
		t.Fatalf("got theme=%q year=%d, want light/2024", cfg.Theme, cfg.Year)
	}
}

// hookStore runs onLegacy once, right after the first read of the legacy
// key, to land a concurrent write in the middle of a resolution.
type hookStore struct {
	*store.Memory
	fired    bool
	onLegacy func()
}

func (h *hookStore) Get(ctx context.Context, k string) (string, bool, error) {
	v, ok, err := h.Memory.Get(ctx, k)
	if k == LegacyThemeKey && !h.fired {
		h.fired = true
		h.onLegacy()
	}
	return v, ok, err
}

func TestLegacyMigrationDoesNotLoseConcurrentUpdate(t *testing.T) {
	ctx := context.Background()
	s := &hookStore{Memory: store.NewMemory()}
	_ = s.Memory.Set(ctx, LegacyThemeKey, "light")

	r := newTestResolver(s)
	s.onLegacy = func() { r.Update(ctx, Patch{Year: ptr(2020)}) }

	cfg := r.Resolve(ctx)
	if cfg.Year != 2020 || cfg.Theme != ThemeLight {
		t.Fatalf("resolved year=%d theme=%q, want 2020/light", cfg.Year, cfg.Theme)
	}
	p, _ := storedPatch(t, s.Memory)
	if p.Year == nil || *p.Year != 2020 {
		t.Fatalf("stored year = %v, want 2020", p.Year)
	}
	if p.Theme == nil || *p.Theme != "light" {
		t.Fatalf("stored theme = %v, want light", p.Theme)
	}
}

func TestLegacyMigrationRacingUpdates(t *testing.T) {
	ctx := context.Background()
	lost := 0
	for i := 0; i < 200; i++ {
		s := store.NewMemory()
		_ = s.Set(ctx, LegacyThemeKey, "light")
		r := newTestResolver(s)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); r.Resolve(ctx) }()
		go func() { defer wg.Done(); r.Update(ctx, Patch{Year: ptr(2020)}) }()
		wg.Wait()

		if p, _ := storedPatch(t, s); p.Year == nil || *p.Year != 2020 {
			lost++
		}
	}
	if lost > 0 {
		t.Fatalf("year lost in %d of 200 runs", lost)
	}
}

func TestUpdateMergesAcrossSections(t *testing.T) {
	s := store.NewMemory()
	r := newTestResolver(s)
	ctx := context.Background()

	r.Update(ctx, Patch{Nav: &NavPatch{ShowDisabledFutureDays: ptr(false)}})
	cfg := r.Update(ctx, Patch{Paths: &PathsPatch{Inputs: ptr("x")}})

	if cfg.Nav.ShowDisabledFutureDays || cfg.Paths.Inputs != "x" {
		t.Fatalf("nav=%+v paths=%+v, want showDisabled false and inputs x", cfg.Nav, cfg.Paths)
	}
	if cfg.Paths.Solutions != "solutions" {
		t.Fatalf("solutions = %q, want default", cfg.Paths.Solutions)
	}

	want := Patch{
		Nav:   &NavPatch{ShowDisabledFutureDays: ptr(false)},
		Paths: &PathsPatch{Inputs: ptr("x")},
	}
	got, _ := storedPatch(t, s)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("persisted mismatch (-want +got):\n%s", diff)
	}
}

func TestListenerMayUpdateFromCallback(t *testing.T) {
	svc := newTestService(store.NewMemory())
	ctx := context.Background()
	done := false
	unsub := svc.Subscribe(ListenerFunc(func(ctx context.Context, ev Event) {
		if ev.Scope == "alice" && !done {
			done = true
			svc.For("alice").Update(ctx, Patch{Theme: ptr("light")})
		}
	}))
	defer unsub()

	svc.For("alice").Update(ctx, Patch{Year: ptr(2024)})
	if got := svc.Resolve(ctx, "alice"); got.Theme != ThemeLight || got.Year != 2024 {
		t.Fatalf("got %+v", got)
	}
}
