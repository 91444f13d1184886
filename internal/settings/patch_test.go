package settings

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPatchMergeNested(t *testing.T) {
	a := Patch{
		Theme: ptr("light"),
		Nav:   &NavPatch{ShowDisabledFutureDays: ptr(false)},
	}
	b := Patch{
		Year:  ptr(2023),
		Paths: &PathsPatch{Inputs: ptr("x")},
		Nav:   &NavPatch{},
	}

	got := a.Merge(b)
	want := Patch{
		Year:  ptr(2023),
		Theme: ptr("light"),
		Paths: &PathsPatch{Inputs: ptr("x")},
		Nav:   &NavPatch{ShowDisabledFutureDays: ptr(false)},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchMergeDoesNotMutateInputs(t *testing.T) {
	a := Patch{Paths: &PathsPatch{Inputs: ptr("a")}}
	b := Patch{Paths: &PathsPatch{Solutions: ptr("b")}}

	out := a.Merge(b)
	*out.Paths.Inputs = "changed"

	if a.Paths.Solutions != nil {
		t.Fatalf("base gained a key: %+v", a.Paths)
	}
	if *a.Paths.Inputs != "a" {
		t.Fatalf("base value aliased by result: %q", *a.Paths.Inputs)
	}
	if b.Paths.Inputs != nil {
		t.Fatalf("overlay gained a key: %+v", b.Paths)
	}
}

func TestPatchSanitizedDropsDerived(t *testing.T) {
	in := Patch{
		TotalDays: ptr(999),
		Theme:     ptr("blue"),
		Nav:       &NavPatch{MaxAvailableDay: ptr(30), ShowDisabledFutureDays: ptr(true)},
	}
	got := in.sanitized()

	if got.TotalDays != nil {
		t.Errorf("totalDays kept: %d", *got.TotalDays)
	}
	if got.Nav.MaxAvailableDay != nil {
		t.Errorf("maxAvailableDay kept: %d", *got.Nav.MaxAvailableDay)
	}
	if got.Theme == nil || *got.Theme != "dark" {
		t.Errorf("theme = %v, want dark", got.Theme)
	}
	if in.TotalDays == nil || in.Nav.MaxAvailableDay == nil || *in.Theme != "blue" {
		t.Errorf("input mutated: %+v", in)
	}
}

func TestPatchUnmarshalYear(t *testing.T) {
	cases := []struct {
		raw  string
		want *int
	}{
		{`{"year":2024}`, ptr(2024)},
		{`{"year":"2023"}`, ptr(2023)},
		{`{"year":" 2022abc"}`, ptr(2022)},
		{`{"year":2021.9}`, ptr(2021)},
		{`{"year":"abc"}`, nil},
		{`{"year":null}`, nil},
		{`{"year":true}`, nil},
		{`{}`, nil},
	}
	for _, tc := range cases {
		var p Patch
		if err := json.Unmarshal([]byte(tc.raw), &p); err != nil {
			t.Fatalf("%s: unexpected error %v", tc.raw, err)
		}
		if diff := cmp.Diff(tc.want, p.Year); diff != "" {
			t.Errorf("%s: year mismatch (-want +got):\n%s", tc.raw, diff)
		}
	}
}

func TestPatchUnmarshalStrictElsewhere(t *testing.T) {
	for _, raw := range []string{
		`{"theme":42}`,
		`{"paths":"inputs"}`,
		`{"nav":{"showDisabledFutureDays":"no"}}`,
		`[1,2,3]`,
		`{"year":2024`,
	} {
		var p Patch
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			t.Errorf("%s: expected decode error", raw)
		}
	}
}

func TestPatchUnmarshalKeepsOtherFields(t *testing.T) {
	var p Patch
	raw := `{"year":"2020","theme":"light","paths":{"solutions":"sol"},"dayLayout":"day"}`
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := Patch{
		Year:      ptr(2020),
		Theme:     ptr("light"),
		Paths:     &PathsPatch{Solutions: ptr("sol")},
		DayLayout: ptr("day"),
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchIsEmpty(t *testing.T) {
	if !(Patch{}).IsEmpty() {
		t.Fatal("zero patch not empty")
	}
	if !(Patch{Nav: &NavPatch{}, Paths: &PathsPatch{}}).IsEmpty() {
		t.Fatal("patch with empty sections not empty")
	}
	if (Patch{Nav: &NavPatch{ShowDisabledFutureDays: ptr(false)}}).IsEmpty() {
		t.Fatal("patch with nav key reported empty")
	}
}
