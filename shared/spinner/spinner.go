// Package spinner shows a progress spinner while a scan job runs.
package spinner

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

var loader *spinner.Spinner

// Enabled reports whether stdout is an interactive terminal.
func Enabled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// StartSpinner starts the CLI loading spinner with the given suffix. It is a
// no-op when stdout is not a terminal.
func StartSpinner(suffix string) {
	if !Enabled() {
		return
	}
	StopSpinner()
	loader = spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	loader.Color("yellow") //nolint:errcheck
	loader.Suffix = " " + suffix
	loader.Start()
}

// StopSpinner stops the CLI loading spinner.
func StopSpinner() {
	if loader != nil {
		loader.Stop()
		loader = nil
	}
}
