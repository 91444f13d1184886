// cmd/aocctl/main.go
//
// aocctl – inspect and edit playground settings from a terminal.
//
// The CLI opens the same store cmd/web uses, selected by the same
// configuration, and addresses one browser's settings with --client (the
// value of its aoc_client cookie).  Without --client it works on the
// unscoped keys.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(newCLI()).Execute(); err != nil {
		os.Exit(1)
	}
}
