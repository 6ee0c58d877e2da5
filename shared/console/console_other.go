//go:build !windows

package console

import "os"

// DetectBackground inspects COLORFGBG, which rxvt-style terminals export as
// "fg;bg" or "fg;default;bg".
func DetectBackground() Background {
	return parseColorFGBG(os.Getenv("COLORFGBG"))
}
