// internal/settings/calendar.go
//
// Puzzle calendar rules.  One day unlocks per calendar day in December of
// the puzzle year; earlier years are fully open, later years fully locked.
package settings

import "time"

// ShortSeasonFrom is the first year with the 12-day calendar.
const ShortSeasonFrom = 2025

// TotalDaysForYear returns the number of puzzle days in year.
func TotalDaysForYear(year int) int {
	if year >= ShortSeasonFrom {
		return 12
	}
	return 25
}

// UnlockedDays returns the highest unlocked day for year as of today.
func UnlockedDays(year, totalDays int, today time.Time) int {
	switch {
	case year < today.Year():
		return totalDays
	case year > today.Year():
		return 0
	}

	switch month := today.Month(); {
	case month < time.December:
		return 0
	case month > time.December:
		// Unreachable on a Gregorian calendar; kept so the rule is total.
		return totalDays
	}
	return min(today.Day(), totalDays)
}
