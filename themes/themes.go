// Package themes embeds the bundled theme directories.  Each theme lives
// under <name>/ with a templates/ tree and an assets/ tree.
package themes

import "embed"

// FS holds every bundled theme.
//
//go:embed all:base
var FS embed.FS
