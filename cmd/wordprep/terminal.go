package main

import (
	"os"

	"golang.org/x/term"
)

// getTerminalWidth returns the width of stdout, or 0 (no limit) when it is not a terminal.
func getTerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 80 // fallback width
	}
	return width
}
