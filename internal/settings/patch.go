// internal/settings/patch.go
//
// Deep-partial settings patch.
//
// Context
// -------
// A Patch is both the persisted override object and the argument to
// `Resolver.Update`.  Every field is a pointer; nil means "inherit".  Nested
// sections are pointers to their own partial structs so a patch can touch a
// single key inside `paths` or `nav` without clobbering its siblings.
//
// Merge rules
// -----------
//   - Object-valued sections (`paths`, `nav`) merge key by key.
//   - Scalars replace wholesale.
//   - Merge returns a fresh value; neither input is modified.
//
// The derived fields `totalDays` and `nav.maxAvailableDay` are present in the
// struct only so a caller-supplied value decodes cleanly and can then be
// dropped by the resolver.
package settings

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// PathsPatch is the partial form of Paths.
type PathsPatch struct {
	Inputs    *string `json:"inputs,omitempty"`
	Solutions *string `json:"solutions,omitempty"`
}

// NavPatch is the partial form of Nav.
type NavPatch struct {
	MaxAvailableDay        *int  `json:"maxAvailableDay,omitempty"`
	ShowDisabledFutureDays *bool `json:"showDisabledFutureDays,omitempty"`
}

// Patch is a sparse, deep-partial Configuration.
//
// Decoding is all or nothing apart from year: a stored object with one
// wrongly typed field fails to decode as a whole, and the resolver then
// applies no overrides at all.
type Patch struct {
	Year              *int        `json:"year,omitempty"`
	Theme             *string     `json:"theme,omitempty"`
	AutoLoadExample   *bool       `json:"autoLoadExample,omitempty"`
	AutoLoadSolutions *bool       `json:"autoLoadSolutions,omitempty"`
	TotalDays         *int        `json:"totalDays,omitempty"`
	Paths             *PathsPatch `json:"paths,omitempty"`
	Nav               *NavPatch   `json:"nav,omitempty"`
	DayLayout         *string     `json:"dayLayout,omitempty"`
}

// Merge overlays o onto p and returns the result.
func (p Patch) Merge(o Patch) Patch {
	return Patch{
		Year:              pick(p.Year, o.Year),
		Theme:             pick(p.Theme, o.Theme),
		AutoLoadExample:   pick(p.AutoLoadExample, o.AutoLoadExample),
		AutoLoadSolutions: pick(p.AutoLoadSolutions, o.AutoLoadSolutions),
		TotalDays:         pick(p.TotalDays, o.TotalDays),
		Paths:             mergePaths(p.Paths, o.Paths),
		Nav:               mergeNav(p.Nav, o.Nav),
		DayLayout:         pick(p.DayLayout, o.DayLayout),
	}
}

// IsEmpty reports whether the patch sets nothing at all.
func (p Patch) IsEmpty() bool {
	return p.Year == nil && p.Theme == nil && p.AutoLoadExample == nil &&
		p.AutoLoadSolutions == nil && p.TotalDays == nil && p.DayLayout == nil &&
		(p.Paths == nil || (p.Paths.Inputs == nil && p.Paths.Solutions == nil)) &&
		(p.Nav == nil || (p.Nav.MaxAvailableDay == nil && p.Nav.ShowDisabledFutureDays == nil))
}

// sanitized drops the derived fields and normalizes the theme.
func (p Patch) sanitized() Patch {
	out := p.Merge(Patch{})
	out.TotalDays = nil
	if out.Nav != nil {
		out.Nav.MaxAvailableDay = nil
	}
	if out.Theme != nil {
		out.Theme = ptr(string(NormalizeTheme(*out.Theme)))
	}
	return out
}

func pick[T any](base, over *T) *T {
	switch {
	case over != nil:
		return ptr(*over)
	case base != nil:
		return ptr(*base)
	default:
		return nil
	}
}

func mergePaths(a, b *PathsPatch) *PathsPatch {
	if a == nil && b == nil {
		return nil
	}
	var x, y PathsPatch
	if a != nil {
		x = *a
	}
	if b != nil {
		y = *b
	}
	return &PathsPatch{
		Inputs:    pick(x.Inputs, y.Inputs),
		Solutions: pick(x.Solutions, y.Solutions),
	}
}

func mergeNav(a, b *NavPatch) *NavPatch {
	if a == nil && b == nil {
		return nil
	}
	var x, y NavPatch
	if a != nil {
		x = *a
	}
	if b != nil {
		y = *b
	}
	return &NavPatch{
		MaxAvailableDay:        pick(x.MaxAvailableDay, y.MaxAvailableDay),
		ShowDisabledFutureDays: pick(x.ShowDisabledFutureDays, y.ShowDisabledFutureDays),
	}
}

//
// JSON decoding
//

// UnmarshalJSON accepts `year` as a number or a numeric string.  A year that
// does not parse decodes as absent.  Every other field is strict, and a
// type error in any of them rejects the whole object.
func (p *Patch) UnmarshalJSON(b []byte) error {
	type plain Patch
	aux := struct {
		*plain
		Year json.RawMessage `json:"year,omitempty"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	p.Year = nil
	if y, ok := parseYear(aux.Year); ok {
		p.Year = &y
	}
	return nil
}

// parseYear follows parseInt semantics: leading integer wins, garbage after
// it is ignored, no digits means no value.
func parseYear(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int(math.Trunc(f)), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
