// internal/config/loader.go
//
// Configuration loader and hot-reloader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from four layers (highest
precedence last):

  1. Built-in defaults, so an empty checkout runs without any YAML.
  2. Optional `.env` file from `<root>/conf/.env`.
  3. Optional `conf/global.yaml`.
  4. Environment variables prefixed `AOC_`, where `__` maps to “.”
     (e.g., `AOC_HTTP__LISTEN_ADDR → http.listen_addr`).

After merging, the tree is unmarshalled into strongly-typed structs,
validated, enriched with the runtime root path, and cached in an
`atomic.Pointer` for lock-free reads.  `Reload()` simply calls `Load()`
again and swaps the pointer.

Instrumentation
---------------
  • DEBUG spans: root discovery, YAML read, env overlay.
  • ERROR spans: YAML parse, env overlay, unmarshal, validation failures.
  • INFO span: final “config loaded” with key highlights.
  • Logs use the global *sugared* logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed (bootstrap console).

Notes
-----
  • `rootDir()` climbs the cwd tree until it finds a `conf/` directory;
    this lets `go run ./cmd/web` work from any sub-directory.
  • `.env` values never override variables already present in the
    process environment (godotenv semantics).
  • Oxford commas, two spaces after periods.
*/
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// EnvPrefix marks environment overrides.
const EnvPrefix = "AOC_"

var current atomic.Pointer[Config]

/*──────────────────────────── defaults ─────────────────────────────────────*/

// defaultValues mirrors the stock playground page configuration.
func defaultValues() map[string]any {
	return map[string]any{
		"http.listen_addr": ":8080",
		"http.force_https": false,

		"store.driver": "file",
		"store.dir":    "data/settings",

		"playground.year":                          2025,
		"playground.theme":                         "dark",
		"playground.auto_load_example":             true,
		"playground.auto_load_solutions":           true,
		"playground.day_layout":                    "tabbed",
		"playground.paths.inputs":                  "inputs",
		"playground.paths.solutions":               "solutions",
		"playground.nav.show_disabled_future_days": true,
		"playground.theme_name":                    "base",

		"log.dir":     "logs",
		"log.console": true,
	}
}

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves AOC_ROOT or climbs directories until conf/ is found.
// Falls back to executable heuristic for production layout.
func rootDir() string {
	if r := os.Getenv("AOC_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if fi, err := os.Stat(filepath.Join(dir, "conf")); err == nil && fi.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load discovers the root, then delegates to LoadRoot.
func Load() (*Config, error) {
	return LoadRoot(rootDir())
}

// LoadRoot reads defaults, .env, YAML, and env overrides relative to root,
// validates, and caches the Config.
func LoadRoot(root string) (*Config, error) {
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		zap.S().Errorw("config defaults load failed", "err", err)
		return nil, err
	}

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
			return nil, err
		}
		zap.S().Debugw("config yaml loaded", "file", yamlPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		zap.S().Errorw("config yaml stat failed", "file", yamlPath, "err", err)
		return nil, err
	}

	// Env overrides: AOC_HTTP__LISTEN_ADDR → http.listen_addr
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"store", cfg.Store.Driver,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

// envKey maps AOC_PLAYGROUND__DAY_LAYOUT to playground.day_layout.  AOC_ROOT
// is consumed by root discovery and maps to a key nothing reads.
func envKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, EnvPrefix), "__", "."))
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config  { return current.Load() }
func Reload() error { _, err := Load(); return err }
