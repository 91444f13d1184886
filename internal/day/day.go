// internal/day/day.go
//
// Day page variables.
//
// Context
// -------
// Everything the day page shows that is not the editor itself derives from
// the resolved Configuration and the day number: the page title, the links
// to the official puzzle and input, where the example input lives, and
// where the per-part solution files live.  Vars computes all of that
// without touching the disk; Loader (loader.go) fetches the files.
//
// Layouts
// -------
//   - "tabbed" (any case) → day-tabbed.html, one tab per part.
//   - anything else       → day.html, parts side by side.
package day

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/yanizio/aocjsui/internal/settings"
)

// OfficialBase is the puzzle site.
const OfficialBase = "https://adventofcode.com"

// Parts are the two halves of every puzzle.
var Parts = [2]int{1, 2}

var (
	// ErrNoSuchDay is returned for a day outside 1..TotalDays.
	ErrNoSuchDay = errors.New("day: no such day")
	// ErrLocked is returned for a day that has not unlocked yet.
	ErrLocked = errors.New("day: not unlocked yet")
)

// Solution locates one part's code.
type Solution struct {
	Part     int    `json:"part"`
	Path     string `json:"path"`     // <solutions>/<year>/<day>-<part>.js
	Template string `json:"template"` // <solutions>/solution-<part>.js
}

// Page carries the per-day variables.
type Page struct {
	Day          int             `json:"day"`
	Year         int             `json:"year"`
	Title        string          `json:"title"`
	PuzzleURL    string          `json:"puzzleUrl"`
	InputURL     string          `json:"inputUrl"`
	ExamplePath  string          `json:"examplePath"`
	Solutions    [2]Solution     `json:"solutions"`
	Layout       settings.Layout `json:"layout"`
	Template     string          `json:"template"`
	Tabbed       bool            `json:"tabbed"`
	AutoExample  bool            `json:"autoLoadExample"`
	AutoSolution bool            `json:"autoLoadSolutions"`
}

// Check reports whether day may be shown under cfg.
func Check(cfg settings.Configuration, d int) error {
	if d < 1 || d > cfg.TotalDays {
		return fmt.Errorf("%w: %d of %d", ErrNoSuchDay, d, cfg.TotalDays)
	}
	if d > cfg.Nav.MaxAvailableDay {
		return fmt.Errorf("%w: day %d of %d", ErrLocked, d, cfg.Year)
	}
	return nil
}

// Vars computes the page variables for day d.  It does not call Check.
func Vars(cfg settings.Configuration, d int) Page {
	year := strconv.Itoa(cfg.Year)
	ds := strconv.Itoa(d)

	p := Page{
		Day:          d,
		Year:         cfg.Year,
		Title:        fmt.Sprintf("aoc-jsui | Day %d | %d", d, cfg.Year),
		PuzzleURL:    OfficialBase + "/" + year + "/day/" + ds,
		InputURL:     OfficialBase + "/" + year + "/day/" + ds + "/input",
		ExamplePath:  path.Join(cfg.Paths.Inputs, year, ds+"-input.txt"),
		Layout:       cfg.DayLayout,
		Template:     TemplateFor(cfg.DayLayout),
		AutoExample:  cfg.AutoLoadExample,
		AutoSolution: cfg.AutoLoadSolutions,
	}
	p.Tabbed = p.Template == templateTabbed
	for i, part := range Parts {
		ps := strconv.Itoa(part)
		p.Solutions[i] = Solution{
			Part:     part,
			Path:     path.Join(cfg.Paths.Solutions, year, ds+"-"+ps+".js"),
			Template: path.Join(cfg.Paths.Solutions, "solution-"+ps+".js"),
		}
	}
	return p
}

const (
	templateTabbed = "day-tabbed.html"
	templatePlain  = "day.html"
)

// TemplateFor maps a layout to its template file.
func TemplateFor(l settings.Layout) string {
	if strings.EqualFold(string(l), string(settings.LayoutTabbed)) {
		return templateTabbed
	}
	return templatePlain
}
