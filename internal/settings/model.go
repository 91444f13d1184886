// internal/settings/model.go
//
// Typed settings model.
//
// Context
// -------
// `Configuration` is the fully resolved settings object handed to the
// navigation builder, the day page, and the settings UI.  It is produced
// only by `Resolver.Resolve`; callers never assemble one by hand.
//
// `Defaults` is the static default configuration supplied once at start-up
// by the config layer.  It carries no derived fields: `CurrentYear`,
// `TotalDays`, and `Nav.MaxAvailableDay` are always computed.
//
// Notes
// -----
//   - JSON field names match the browser-side object so the front-end can
//     consume `/api/settings` unchanged.
//   - Oxford commas, two spaces after periods.
package settings

//
// Enumerations
//

// Theme is the UI colour scheme.  Only two values are legal.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// NormalizeTheme maps "light" to ThemeLight and anything else to ThemeDark.
func NormalizeTheme(s string) Theme {
	if s == string(ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

// Layout names the day page template.  Any non-empty value is accepted; the
// template layer falls back to the default layout when a set is missing.
type Layout string

const (
	LayoutTabbed Layout = "tabbed"
	LayoutDay    Layout = "day" // side-by-side
)

//
// Resolved configuration
//

// Paths holds relative base paths for fetched assets.
type Paths struct {
	Inputs    string `json:"inputs"`
	Solutions string `json:"solutions"`
}

// Nav controls the day navigation strip.
type Nav struct {
	MaxAvailableDay        int  `json:"maxAvailableDay"` // derived
	ShowDisabledFutureDays bool `json:"showDisabledFutureDays"`
}

// Configuration is the effective, fully populated settings object.
type Configuration struct {
	CurrentYear       int    `json:"currentYear"` // derived from the clock
	Year              int    `json:"year"`
	Theme             Theme  `json:"theme"`
	AutoLoadExample   bool   `json:"autoLoadExample"`
	AutoLoadSolutions bool   `json:"autoLoadSolutions"`
	TotalDays         int    `json:"totalDays"` // derived from Year
	Paths             Paths  `json:"paths"`
	Nav               Nav    `json:"nav"`
	DayLayout         Layout `json:"dayLayout"`
}

//
// Static defaults
//

// Defaults is the default configuration minus derived fields.
type Defaults struct {
	Year                   int
	Theme                  Theme
	AutoLoadExample        bool
	AutoLoadSolutions      bool
	Paths                  Paths
	ShowDisabledFutureDays bool
	DayLayout              Layout
}

const (
	defaultInputsPath    = "inputs"
	defaultSolutionsPath = "solutions"
)

// BuiltinDefaults mirrors the stock playground page configuration.
func BuiltinDefaults() Defaults {
	return Defaults{
		Year:                   2025,
		Theme:                  ThemeDark,
		AutoLoadExample:        true,
		AutoLoadSolutions:      true,
		Paths:                  Paths{Inputs: defaultInputsPath, Solutions: defaultSolutionsPath},
		ShowDisabledFutureDays: true,
		DayLayout:              LayoutTabbed,
	}
}

// asPatch lifts the defaults into a fully populated Patch so the merge
// machinery treats them as the base layer.
func (d Defaults) asPatch() Patch {
	p := Patch{
		AutoLoadExample:   ptr(d.AutoLoadExample),
		AutoLoadSolutions: ptr(d.AutoLoadSolutions),
		Paths:             &PathsPatch{},
		Nav:               &NavPatch{ShowDisabledFutureDays: ptr(d.ShowDisabledFutureDays)},
	}
	if d.Paths.Inputs != "" {
		p.Paths.Inputs = ptr(d.Paths.Inputs)
	}
	if d.Paths.Solutions != "" {
		p.Paths.Solutions = ptr(d.Paths.Solutions)
	}
	if d.Year != 0 {
		p.Year = ptr(d.Year)
	}
	if d.Theme != "" {
		p.Theme = ptr(string(d.Theme))
	}
	if d.DayLayout != "" {
		p.DayLayout = ptr(string(d.DayLayout))
	}
	return p
}

func ptr[T any](v T) *T { return &v }
