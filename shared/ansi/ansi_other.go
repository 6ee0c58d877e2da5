//go:build !windows

// Package ansi prepares the console for colored output.
package ansi

import "os"

// EnableANSI reports whether escape sequences should be written to stdout.
// Non-Windows terminals interpret them natively; NO_COLOR turns them off.
func EnableANSI() bool {
	_, noColor := os.LookupEnv("NO_COLOR")
	return !noColor
}
