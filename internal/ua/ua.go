// internal/ua/ua.go
//
// User-Agent parsing helpers for the request log.
//
// This wrapper isolates the third-party `github.com/avct/uasurfer` API so
// the rest of the codebase never sees its enums or structs.  The request
// logger only wants a handful of low-cardinality fields per line, so Info
// is flat and Fields() hands them straight to zap.
package ua

import (
	"fmt"
	"strconv"

	surfer "github.com/avct/uasurfer"
	"go.uber.org/zap"
)

// Info carries the UA attributes written to the request log.
//
// Example (Chrome on macOS):
//
//	Browser   "BrowserChrome"
//	Version   "125"
//	OS        "OSMacOSX"
//	Device    "Desktop"
//	IsBot     false
//
// Device will be one of: "Desktop", "Mobile", "Tablet", or "Other".
type Info struct {
	Browser string
	Version string
	OS      string
	Device  string
	IsBot   bool
}

// Parse converts a raw header into an Info struct.  An empty header yields
// the zero Info with Device "Other".
func Parse(raw string) Info {
	if raw == "" {
		return Info{Device: "Other"}
	}
	ua := surfer.Parse(raw)

	info := Info{
		Browser: ua.Browser.Name.String(),
		Version: versionToString(ua.Browser.Version),
		OS:      ua.OS.Name.String(),
		IsBot:   ua.IsBot(),
	}

	switch ua.DeviceType {
	case surfer.DeviceComputer:
		info.Device = "Desktop"
	case surfer.DeviceTablet:
		info.Device = "Tablet"
	case surfer.DevicePhone, surfer.DeviceWearable:
		info.Device = "Mobile"
	default:
		info.Device = "Other"
	}

	return info
}

// Fields renders Info as zap fields for one log line.
func (i Info) Fields() []zap.Field {
	return []zap.Field{
		zap.String("browser", i.Browser),
		zap.String("browser_version", i.Version),
		zap.String("os", i.OS),
		zap.String("device", i.Device),
		zap.Bool("bot", i.IsBot),
	}
}

// versionToString renders a semantic version in dotted form while trimming
// trailing zeros, e.g. 17.0.0 → "17", 17.3.0 → "17.3", 17.3.1 → "17.3.1".
func versionToString(v surfer.Version) string {
	if v.Major == 0 && v.Minor == 0 && v.Patch == 0 {
		return ""
	}
	if v.Patch != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	if v.Minor != 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return strconv.Itoa(int(v.Major))
}
