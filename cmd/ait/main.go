// Package main is the entry point for ait, the activity insights TUI.
// It runs the Bubble Tea dashboard on a terminal and prints reports
// otherwise.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/j-veylop/activity-insights-tui/internal/clock"
)

func main() {
	c := &cli{
		clock:  clock.System{},
		stdout: os.Stdout,
		isTerminal: func() bool {
			fd := os.Stdout.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		runTUI: runTUI,
	}

	if err := newRootCmd(c).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
