package ua

import (
	"testing"

	surfer "github.com/avct/uasurfer"
)

func TestParseDesktopChrome(t *testing.T) {
	raw := "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"
	info := Parse(raw)

	if info.Device != "Desktop" {
		t.Fatalf("device = %q, want Desktop", info.Device)
	}
	if info.Browser != surfer.BrowserChrome.String() {
		t.Fatalf("browser = %q", info.Browser)
	}
	if info.Version != "125" {
		t.Fatalf("version = %q, want 125", info.Version)
	}
	if info.IsBot {
		t.Fatal("desktop chrome flagged as bot")
	}
}

func TestParseEmpty(t *testing.T) {
	if got := Parse(""); got != (Info{Device: "Other"}) {
		t.Fatalf("Parse(\"\") = %+v", got)
	}
}

func TestVersionToString(t *testing.T) {
	cases := []struct {
		v    surfer.Version
		want string
	}{
		{surfer.Version{}, ""},
		{surfer.Version{Major: 17}, "17"},
		{surfer.Version{Major: 17, Minor: 3}, "17.3"},
		{surfer.Version{Major: 17, Minor: 3, Patch: 1}, "17.3.1"},
	}
	for _, tc := range cases {
		if got := versionToString(tc.v); got != tc.want {
			t.Errorf("versionToString(%+v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestFields(t *testing.T) {
	if n := len((Info{}).Fields()); n != 5 {
		t.Fatalf("Fields len = %d, want 5", n)
	}
}
