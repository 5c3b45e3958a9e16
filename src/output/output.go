// Package output renders the dockertags report and the human-facing
// console output: progress, banners, and the run summary.
package output

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsCI reports whether the process runs under a CI system.
func IsCI() bool {
	return os.Getenv("CI") == "true"
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// UseColor returns true if colored output should be used.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsTerminal(os.Stdout) || IsCI()
}

// ShowProgress reports whether the carriage-return progress line should be
// drawn. It is suppressed in CI logs, where each update becomes a new line.
func ShowProgress(quiet bool) bool {
	if quiet {
		return false
	}
	return !IsCI() || IsTerminal(os.Stderr)
}
