//go:build windows

package console

import (
	"os"

	"golang.org/x/sys/windows"
)

// DetectBackground reads the console screen buffer attributes of stdout.
func DetectBackground() Background {
	handle := windows.Handle(os.Stdout.Fd())

	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(handle, &info); err != nil {
		return parseColorFGBG(os.Getenv("COLORFGBG"))
	}

	const (
		backgroundBlue      = 0x0010
		backgroundGreen     = 0x0020
		backgroundRed       = 0x0040
		backgroundIntensity = 0x0080
	)
	attr := info.Attributes
	switch {
	case attr&(backgroundBlue|backgroundGreen|backgroundRed) == backgroundBlue:
		return BackgroundBlue
	case attr&backgroundIntensity != 0:
		return BackgroundLight
	default:
		return BackgroundDark
	}
}
