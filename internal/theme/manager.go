// internal/theme/manager.go
//
// Template set loader with an LRU of parsed sets.
//
// Context
// -------
// Every page is rendered from its own set: `layout.html`, everything under
// `partials/`, and exactly one page file (`welcome.html`, `settings.html`,
// `day.html`, or `day-tabbed.html`).  Page files all define "content", so
// two pages can never share a set.
//
// Sets are parsed from an fs.FS (the embedded `themes.FS` in production, an
// fstest.MapFS in tests), cached per (theme, page) in an LRU, and cold loads
// for the same key collapse through singleflight so a burst of first
// requests parses once.
//
// Notes
// -----
//   - A missing page file in a non-default theme falls back to the default
//     theme's file, so a custom theme may override only what it needs.
//   - Oxford commas, two spaces after periods.
package theme

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/aocjsui/internal/cache"
	"github.com/yanizio/aocjsui/internal/metrics"
)

// Well-known file names.
const (
	LayoutFile   = "layout.html"
	WelcomeFile  = "welcome.html"
	SettingsFile = "settings.html"
	DefaultTheme = "base"
)

// ErrNotFound is returned for an unknown theme or page.
var ErrNotFound = errors.New("theme: not found")

// Manager discovers and loads themes.
type Manager struct {
	fsys     fs.FS
	fallback string
	lru      *cache.LRU[string, *Theme]
	sfg      singleflight.Group
	log      *zap.SugaredLogger
}

// NewManager returns a Manager over fsys.  Theme directories sit at the
// root of fsys.
func NewManager(fsys fs.FS, capacity int) *Manager {
	return &Manager{
		fsys:     fsys,
		fallback: DefaultTheme,
		lru:      cache.New[string, *Theme](capacity),
		log:      zap.S().With("component", "theme"),
	}
}

// Load returns the parsed set for page in theme name.
func (m *Manager) Load(name, page string) (*Theme, error) {
	key := name + "::" + page
	if th, ok := m.lru.Get(key); ok {
		return th, nil
	}

	v, err, _ := m.sfg.Do(key, func() (any, error) {
		// Double-check after singleflight barrier.
		if th, ok := m.lru.Get(key); ok {
			return th, nil
		}
		th, err := m.parse(name, page)
		if err != nil {
			return nil, err
		}
		m.lru.Add(key, th)
		return th, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Theme), nil
}

// Assets returns the assets tree of theme name.
func (m *Manager) Assets(name string) (fs.FS, error) {
	if !fs.ValidPath(name) || name == "." {
		return nil, ErrNotFound
	}
	dir := path.Join(name, "assets")
	if fi, err := fs.Stat(m.fsys, dir); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: assets for %q", ErrNotFound, name)
	}
	return fs.Sub(m.fsys, dir)
}

func (m *Manager) parse(name, page string) (*Theme, error) {
	if !fs.ValidPath(name) || !fs.ValidPath(page) {
		return nil, ErrNotFound
	}
	root := path.Join(name, "templates")
	if fi, err := fs.Stat(m.fsys, root); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: theme %q", ErrNotFound, name)
	}

	files := []string{
		m.resolve(name, LayoutFile),
		m.resolve(name, page),
	}
	if files[0] == "" || files[1] == "" {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, name, page)
	}
	// Fallback partials first so the theme's own definitions win.
	for _, t := range uniq(m.fallback, name) {
		if partials, err := CollectHTML(m.fsys, path.Join(t, "templates", "partials")); err == nil {
			files = append(files, partials...)
		}
	}

	// Build with the real asset helper so parsing and execution agree.
	th := New(name, page, nil)
	tpl, err := template.New(LayoutFile).Funcs(FuncMap(th.AssetFunc)).ParseFS(m.fsys, files...)
	if err != nil {
		m.log.Errorw("template parse failed", "theme", name, "page", page, "err", err)
		return nil, fmt.Errorf("parse %s/%s: %w", name, page, err)
	}
	th.Renderer = tpl

	metrics.TemplateLoadsTotal.Inc()
	m.log.Debugw("template set parsed", "theme", name, "page", page, "files", len(files))
	return th, nil
}

// resolve finds file in theme name, then in the fallback theme.
func (m *Manager) resolve(name, file string) string {
	for _, t := range []string{name, m.fallback} {
		p := path.Join(t, "templates", file)
		if _, err := fs.Stat(m.fsys, p); err == nil {
			return p
		}
	}
	return ""
}

func uniq(a, b string) []string {
	if a == b {
		return []string{a}
	}
	return []string{a, b}
}
