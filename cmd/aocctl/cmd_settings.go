package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yanizio/aocjsui/internal/settings"
)

func newSettingsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show, change, or reset settings",
	}
	cmd.AddCommand(newSettingsShowCmd(c), newSettingsSetCmd(c), newSettingsResetCmd(c))
	return cmd
}

func newSettingsShowCmd(c *cli) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved settings as JSON",
		Long: `Print the resolved settings as JSON.  With --raw, print only the stored
overrides instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, release, err := c.resolver(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if raw {
				return printJSON(cmd.OutOrStdout(), r.Overrides(cmd.Context()))
			}
			return printJSON(cmd.OutOrStdout(), r.Resolve(cmd.Context()))
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print stored overrides only")
	return cmd
}

// setFlags holds the values of `settings set`; only flags the user passed
// end up in the patch.
type setFlags struct {
	year          int
	theme         string
	layout        string
	inputs        string
	solutions     string
	autoExample   bool
	autoSolutions bool
	showDisabled  bool
}

var errNothingToSet = errors.New("nothing to set: pass at least one flag")

func newSettingsSetCmd(c *cli) *cobra.Command {
	var f setFlags
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Merge the given values into the stored overrides",
		Example: `  aocctl settings set --year 2024 --theme light
  aocctl --client 7c1a4b9e-2f60-4d3a-9a55-3a1f0b6e8d21 settings set --layout day`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := f.patch(cmd)
			if p.IsEmpty() {
				return errNothingToSet
			}
			r, release, err := c.resolver(cmd.Context())
			if err != nil {
				return err
			}
			defer release()
			return printJSON(cmd.OutOrStdout(), r.Update(cmd.Context(), p))
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&f.year, "year", 0, "puzzle year")
	fl.StringVar(&f.theme, "theme", "", "light or dark")
	fl.StringVar(&f.layout, "layout", "", "day layout: tabbed or day")
	fl.StringVar(&f.inputs, "inputs", "", "example inputs path")
	fl.StringVar(&f.solutions, "solutions", "", "solutions path")
	fl.BoolVar(&f.autoExample, "auto-example", true, "load the example input on day pages")
	fl.BoolVar(&f.autoSolutions, "auto-solutions", true, "load solution files on day pages")
	fl.BoolVar(&f.showDisabled, "show-disabled", true, "show locked days in the nav")
	return cmd
}

// patch builds a Patch from the flags that were set on cmd.
func (f *setFlags) patch(cmd *cobra.Command) settings.Patch {
	var p settings.Patch
	changed := cmd.Flags().Changed

	if changed("year") {
		p.Year = &f.year
	}
	if changed("theme") {
		p.Theme = &f.theme
	}
	if changed("layout") {
		p.DayLayout = &f.layout
	}
	if changed("auto-example") {
		p.AutoLoadExample = &f.autoExample
	}
	if changed("auto-solutions") {
		p.AutoLoadSolutions = &f.autoSolutions
	}
	if changed("inputs") || changed("solutions") {
		p.Paths = &settings.PathsPatch{}
		if changed("inputs") {
			p.Paths.Inputs = &f.inputs
		}
		if changed("solutions") {
			p.Paths.Solutions = &f.solutions
		}
	}
	if changed("show-disabled") {
		p.Nav = &settings.NavPatch{ShowDisabledFutureDays: &f.showDisabled}
	}
	return p
}

func newSettingsResetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, release, err := c.resolver(cmd.Context())
			if err != nil {
				return err
			}
			defer release()
			return printJSON(cmd.OutOrStdout(), r.Clear(cmd.Context()))
		},
	}
}
