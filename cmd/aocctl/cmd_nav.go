package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yanizio/aocjsui/internal/nav"
	"github.com/yanizio/aocjsui/internal/settings"
)

func newNavCmd(c *cli) *cobra.Command {
	var active int
	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Draw the day navigation strip",
		Long: `Draw the day strip as the web UI would: open days as numbers, the active
day in brackets, and locked days as dots (when shown at all).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, release, err := c.resolver(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			cfg := r.Resolve(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", cfg.Year, nav.Render(nav.Build(cfg, active)))
			return nil
		},
	}
	cmd.Flags().IntVar(&active, "active", 0, "day to mark as active")
	return cmd
}

const dateLayout = "2006-01-02"

func newUnlockCmd(c *cli) *cobra.Command {
	var (
		year int
		date string
	)
	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Report how many days of a year are unlocked",
		Example: `  aocctl unlock --year 2025
  aocctl unlock --year 2025 --date 2025-12-07`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			today := c.clock()
			if date != "" {
				t, err := time.Parse(dateLayout, date)
				if err != nil {
					return fmt.Errorf("--date: %w", err)
				}
				today = t
			}
			total := settings.TotalDaysForYear(year)
			open := settings.UnlockedDays(year, total, today)
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %d of %d days unlocked on %s\n",
				year, open, total, today.Format(dateLayout))
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "puzzle year")
	cmd.Flags().StringVar(&date, "date", "", "evaluate on this date (YYYY-MM-DD) instead of today")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}
