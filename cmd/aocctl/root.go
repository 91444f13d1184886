package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yanizio/aocjsui/internal/app"
	"github.com/yanizio/aocjsui/internal/config"
	"github.com/yanizio/aocjsui/internal/logger"
	"github.com/yanizio/aocjsui/internal/settings"
	"github.com/yanizio/aocjsui/internal/store"
)

// cli carries global flags and the seams tests replace.
type cli struct {
	client    string
	verbose   bool
	ephemeral bool

	loadConfig func() (*config.Config, error)
	openStore  func(ctx context.Context, cfg *config.Config) (store.Store, io.Closer, error)
	clock      func() time.Time
}

func newCLI() *cli {
	return &cli{
		loadConfig: config.Load,
		openStore: func(ctx context.Context, cfg *config.Config) (store.Store, io.Closer, error) {
			secrets, err := app.Secrets(ctx, cfg)
			if err != nil {
				return nil, nil, err
			}
			return app.OpenStore(ctx, cfg, secrets)
		},
		clock: time.Now,
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "aocctl",
		Short: "Inspect and edit aoc-jsui playground settings",
		Long: `aocctl reads and writes the settings the aoc-jsui server keeps for each
browser.  It uses the server's configuration (conf/global.yaml, AOC_*
environment) to find the store.

Available commands:
  settings - show, set, or reset settings
  nav      - draw the day navigation strip
  unlock   - report how many days of a year are open`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if c.verbose {
				logger.Console(zapcore.DebugLevel)
				return
			}
			zap.ReplaceGlobals(zap.NewNop())
		},
	}

	root.PersistentFlags().StringVar(&c.client, "client", "", "client id (aoc_client cookie) to operate on")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log to stderr")
	root.PersistentFlags().BoolVar(&c.ephemeral, "ephemeral", false, "use a throwaway in-memory store")

	root.AddCommand(newSettingsCmd(c), newNavCmd(c), newUnlockCmd(c))
	return root
}

// resolver opens the store and returns the Resolver for --client plus a
// function releasing the store.
func (c *cli) resolver(ctx context.Context) (*settings.Resolver, func(), error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	var (
		st     store.Store
		closer io.Closer
	)
	if c.ephemeral {
		st = store.NewMemory()
	} else {
		st, closer, err = c.openStore(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
	}

	svc := app.NewSettings(cfg, st, settings.WithClock(c.clock))
	release := func() {
		if closer != nil {
			_ = closer.Close()
		}
	}
	return svc.For(c.client), release, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
