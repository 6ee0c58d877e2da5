//go:build windows

package ansi

import (
	"os"

	"golang.org/x/sys/windows"
)

// EnableANSI turns on virtual terminal processing for stdout and reports
// whether escape sequences will be interpreted.
func EnableANSI() bool {
	handle := windows.Handle(os.Stdout.Fd())

	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return false
	}
	if mode&windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING != 0 {
		return true
	}

	return windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
