// internal/config/model.go
//
// Typed configuration model for the aoc-jsui server and CLI.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from four overlay layers:
//
//   • built-in defaults                       – `defaultValues()`,
//   • optional `.env`                         – dotenv values,
//   • `conf/global.yaml`                      – primary static file,
//   • `AOC_`-prefixed environment overrides   – highest precedence.
//
// `store.password` may hold a `vault:` reference.  The model keeps the raw
// string; `cmd/web` and `cmd/aocctl` resolve it through `internal/vault`
// right before opening the store, so the secret never lands in the cached
// Config.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import (
	"path/filepath"
	"strings"

	"github.com/yanizio/aocjsui/internal/settings"
)

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Store section
//

// Store selects the settings persistence backend.
//
// The DSN *template* stays in YAML so operators can tweak host, port, or
// flags without touching Vault.  When the template contains `%s` it is
// replaced by `Password`, which may itself be a `vault:` reference.
type Store struct {
	Driver   string `koanf:"driver"   validate:"required,oneof=memory file mysql sqlite"`
	Dir      string `koanf:"dir"`
	DSN      string `koanf:"dsn"`
	Password string `koanf:"password"`
}

// FillDSN substitutes password into the DSN template.
func (s Store) FillDSN(password string) string {
	if !strings.Contains(s.DSN, "%s") {
		return s.DSN
	}
	return strings.Replace(s.DSN, "%s", password, 1)
}

//
// Playground section
//

// PlaygroundPaths are the asset roots, relative to Paths.Root on disk and
// to the site root in URLs.
type PlaygroundPaths struct {
	Inputs    string `koanf:"inputs"    validate:"required"`
	Solutions string `koanf:"solutions" validate:"required"`
}

// PlaygroundNav tunes the day strip.
type PlaygroundNav struct {
	ShowDisabledFutureDays bool `koanf:"show_disabled_future_days"`
}

// Playground is the static default configuration handed to the resolver.
type Playground struct {
	Year              int             `koanf:"year"                validate:"omitempty,gte=2015"`
	Theme             string          `koanf:"theme"               validate:"omitempty,oneof=light dark"`
	AutoLoadExample   bool            `koanf:"auto_load_example"`
	AutoLoadSolutions bool            `koanf:"auto_load_solutions"`
	DayLayout         string          `koanf:"day_layout"`
	Paths             PlaygroundPaths `koanf:"paths"`
	Nav               PlaygroundNav   `koanf:"nav"`
	ThemeName         string          `koanf:"theme_name"          validate:"required"`
}

// Defaults converts the section into the resolver's default configuration.
func (p Playground) Defaults() settings.Defaults {
	return settings.Defaults{
		Year:                   p.Year,
		Theme:                  settings.Theme(p.Theme),
		AutoLoadExample:        p.AutoLoadExample,
		AutoLoadSolutions:      p.AutoLoadSolutions,
		Paths:                  settings.Paths{Inputs: p.Paths.Inputs, Solutions: p.Paths.Solutions},
		ShowDisabledFutureDays: p.Nav.ShowDisabledFutureDays,
		DayLayout:              settings.Layout(p.DayLayout),
	}
}

//
// Log section
//

// Log controls the file logger.
type Log struct {
	Dir     string `koanf:"dir"`
	Console bool   `koanf:"console"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.  The loader
// discovers `Root` (repo root or AOC_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // AOC_ROOT or discovered parent
}

// Abs joins rel onto Root unless rel is already absolute.
func (p Paths) Abs(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.Root, rel)
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP       HTTP       `koanf:"http"`
	Store      Store      `koanf:"store"`
	Playground Playground `koanf:"playground"`
	Log        Log        `koanf:"log"`
	Paths      Paths      `koanf:"-"` // not loaded from config files
}
