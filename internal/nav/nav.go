// internal/nav/nav.go
//
// Day navigation strip.
//
// Context
// -------
// The strip shows one entry per puzzle day of the selected year.  Unlocked
// days link to their page.  Locked days either appear greyed out or are
// left out entirely, depending on `nav.showDisabledFutureDays`.  The web
// layer renders it on every page and serves it as JSON at `/api/nav`; the
// CLI prints it with Render.
//
// Notes
// -----
//   - Build is pure: everything it needs is in the resolved Configuration.
//   - Oxford commas, two spaces after periods.
package nav

import (
	"strconv"
	"strings"

	"github.com/yanizio/aocjsui/internal/settings"
)

// Link is one entry in the strip.
type Link struct {
	Day      int    `json:"day"`
	Href     string `json:"href,omitempty"` // empty when Disabled
	Disabled bool   `json:"disabled"`
	Active   bool   `json:"active"`
}

// Href returns the page URL for day.
func Href(day int) string { return "/day/" + strconv.Itoa(day) }

// Build returns the strip for cfg.  active marks the current day; pass 0
// for none.
func Build(cfg settings.Configuration, active int) []Link {
	links := make([]Link, 0, cfg.TotalDays)
	for day := 1; day <= cfg.TotalDays; day++ {
		l := Link{Day: day, Active: day == active}
		switch {
		case day <= cfg.Nav.MaxAvailableDay:
			l.Href = Href(day)
		case cfg.Nav.ShowDisabledFutureDays:
			l.Disabled = true
		default:
			continue
		}
		links = append(links, l)
	}
	return links
}

// ParseDay reads a day number from a path segment or URL fragment such as
// "7", "#7", or " 7abc".  Anything without a positive leading integer is not
// a day.
func ParseDay(raw string) (int, bool) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Render draws links on one line for terminals: unlocked days plain, the
// active day in brackets, locked days as dots.
func Render(links []Link) string {
	var b strings.Builder
	for i, l := range links {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case l.Disabled:
			b.WriteString(strings.Repeat("·", len(strconv.Itoa(l.Day))))
		case l.Active:
			b.WriteString("[" + strconv.Itoa(l.Day) + "]")
		default:
			b.WriteString(strconv.Itoa(l.Day))
		}
	}
	return b.String()
}
