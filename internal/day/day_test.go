package day

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/yanizio/aocjsui/internal/settings"
)

func testConfig() settings.Configuration {
	return settings.Configuration{
		CurrentYear:       2025,
		Year:              2025,
		Theme:             settings.ThemeDark,
		AutoLoadExample:   true,
		AutoLoadSolutions: true,
		TotalDays:         12,
		Paths:             settings.Paths{Inputs: "inputs", Solutions: "solutions"},
		Nav:               settings.Nav{MaxAvailableDay: 5, ShowDisabledFutureDays: true},
		DayLayout:         settings.LayoutTabbed,
	}
}

func TestVars(t *testing.T) {
	got := Vars(testConfig(), 3)
	want := Page{
		Day:         3,
		Year:        2025,
		Title:       "aoc-jsui | Day 3 | 2025",
		PuzzleURL:   "https://adventofcode.com/2025/day/3",
		InputURL:    "https://adventofcode.com/2025/day/3/input",
		ExamplePath: "inputs/2025/3-input.txt",
		Solutions: [2]Solution{
			{Part: 1, Path: "solutions/2025/3-1.js", Template: "solutions/solution-1.js"},
			{Part: 2, Path: "solutions/2025/3-2.js", Template: "solutions/solution-2.js"},
		},
		Layout:       settings.LayoutTabbed,
		Template:     "day-tabbed.html",
		Tabbed:       true,
		AutoExample:  true,
		AutoSolution: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateFor(t *testing.T) {
	cases := map[settings.Layout]string{
		"tabbed": "day-tabbed.html",
		"TABBED": "day-tabbed.html",
		"day":    "day.html",
		"grid":   "day.html",
		"":       "day.html",
	}
	for in, want := range cases {
		if got := TemplateFor(in); got != want {
			t.Errorf("TemplateFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCheck(t *testing.T) {
	cfg := testConfig()
	if err := Check(cfg, 5); err != nil {
		t.Fatalf("day 5: %v", err)
	}
	if err := Check(cfg, 6); !errors.Is(err, ErrLocked) {
		t.Fatalf("day 6 err = %v, want ErrLocked", err)
	}
	for _, d := range []int{0, 13, -1} {
		if err := Check(cfg, d); !errors.Is(err, ErrNoSuchDay) {
			t.Fatalf("day %d err = %v, want ErrNoSuchDay", d, err)
		}
	}
}

func TestLoaderPrefersDayFile(t *testing.T) {
	fsys := fstest.MapFS{
		"inputs/2025/2-input.txt": {Data: []byte("1 2 3\n")},
		"solutions/2025/2-1.js":   {Data: []byte("// day 2 part 1")},
		"solutions/solution-1.js": {Data: []byte("// template 1")},
		"solutions/solution-2.js": {Data: []byte("// template 2")},
	}
	c, err := NewLoader(fsys).Load(context.Background(), testConfig(), 2)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.InputFound || c.Input != "1 2 3\n" {
		t.Fatalf("input = %q, found %v", c.Input, c.InputFound)
	}
	if c.Code[0] != "// day 2 part 1" || c.CodeFrom[0] != "solutions/2025/2-1.js" {
		t.Fatalf("part 1 = %q from %q", c.Code[0], c.CodeFrom[0])
	}
	if c.Code[1] != "// template 2" || c.CodeFrom[1] != "solutions/solution-2.js" {
		t.Fatalf("part 2 = %q from %q", c.Code[1], c.CodeFrom[1])
	}
}

func TestLoaderMissingFilesAreEmpty(t *testing.T) {
	c, err := NewLoader(fstest.MapFS{}).Load(context.Background(), testConfig(), 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.InputFound || c.Input != "" || c.Code != ([2]string{}) {
		t.Fatalf("expected empty content, got %+v", c)
	}
}

func TestLoaderHonoursAutoLoadFlags(t *testing.T) {
	fsys := fstest.MapFS{
		"inputs/2025/1-input.txt": {Data: []byte("x")},
		"solutions/2025/1-1.js":   {Data: []byte("y")},
	}
	cfg := testConfig()
	cfg.AutoLoadExample = false
	cfg.AutoLoadSolutions = false

	c, err := NewLoader(fsys).Load(context.Background(), cfg, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Input != "" || c.Code[0] != "" {
		t.Fatalf("files loaded despite flags: %+v", c)
	}
}

func TestLoaderRejectsEscapingPaths(t *testing.T) {
	cfg := testConfig()
	cfg.Paths.Inputs = "../secrets"
	c, err := NewLoader(fstest.MapFS{}).Load(context.Background(), cfg, 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.InputFound {
		t.Fatal("escaping path was read")
	}
}

func TestLoaderLockedDay(t *testing.T) {
	_, err := NewLoader(fstest.MapFS{}).Load(context.Background(), testConfig(), 9)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("err = %v, want ErrLocked", err)
	}
}
