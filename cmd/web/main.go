// cmd/web/main.go
//
// aoc-jsui – HTTP entry point.
//
// Start-up sequence
// -----------------
//
//  1. Load configuration (defaults → conf/.env → conf/global.yaml → AOC_*).
//
//  2. Start the daily rotating logger (tees to console in a TTY or when
//     log.console is set).
//
//  3. Resolve the store password (Vault when it is a `vault:` reference)
//     and open the settings store.
//
//  4. Build the settings service and subscribe the change logger.
//
//  5. Build the theme manager over the embedded themes and the day loader
//     over the playground root.
//
//  6. Mount the router, serve, and drain on SIGINT or SIGTERM.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/yanizio/aocjsui/internal/app"
	"github.com/yanizio/aocjsui/internal/config"
	"github.com/yanizio/aocjsui/internal/day"
	"github.com/yanizio/aocjsui/internal/logger"
	"github.com/yanizio/aocjsui/internal/server"
	"github.com/yanizio/aocjsui/internal/theme"
	"github.com/yanizio/aocjsui/internal/web"
	"github.com/yanizio/aocjsui/themes"
)

// templateCacheSize bounds parsed (theme, page) sets.
const templateCacheSize = 64

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Abs(cfg.Log.Dir), cfg.Log.Console || logger.IsTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()
	logOut.Infow("config loaded", "root", cfg.Paths.Root, "store", cfg.Store.Driver)

	//
	// ── 1.  Settings store ──────────────────────────────────────────────
	//
	secrets, err := app.Secrets(ctx, cfg)
	if err != nil {
		logOut.Fatalw("vault client", "err", err)
	}
	st, closer, err := app.OpenStore(ctx, cfg, secrets)
	if err != nil {
		logOut.Fatalw("open settings store", "err", err)
	}
	defer closer.Close()

	svc := app.NewSettings(cfg, st)
	svc.Subscribe(web.ChangeLogger(logOut.Desugar()))

	//
	// ── 2.  Router ──────────────────────────────────────────────────────
	//
	root := os.DirFS(cfg.Paths.Root)
	srv := web.New(web.Options{
		Settings:   svc,
		Themes:     theme.NewManager(themes.FS, templateCacheSize),
		Days:       day.NewLoader(root),
		Files:      root,
		StaticDirs: []string{cfg.Playground.Paths.Inputs, cfg.Playground.Paths.Solutions},
		ThemeName:  cfg.Playground.ThemeName,
		ForceHTTPS: cfg.HTTP.ForceHTTPS,
	})

	//
	// ── 3.  Serve until signalled ───────────────────────────────────────
	//
	if err := server.Run(ctx, server.New(cfg.HTTP.ListenAddr, srv.Routes())); err != nil {
		logOut.Errorw("http server", "err", err)
		os.Exit(1)
	}
	logOut.Info("bye")
}
