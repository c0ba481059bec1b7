package main

import (
	"os"

	"golang.org/x/term"
)

// isInteractive reports whether a human is at the terminal, so that a
// terminal user interface can be shown.
func isInteractive() bool {
	if os.Getenv("CI") != "" || os.Getenv("TREEWALK_NON_INTERACTIVE") == "1" {
		return false
	}

	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
