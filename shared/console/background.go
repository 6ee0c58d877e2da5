// Package console detects terminal properties that affect color choice.
package console

import (
	"strconv"
	"strings"
)

// Background is a coarse classification of the terminal background color.
type Background int

const (
	BackgroundUnknown Background = iota
	BackgroundDark
	BackgroundLight
	BackgroundBlue
)

func parseColorFGBG(raw string) Background {
	parts := strings.Split(strings.TrimSpace(raw), ";")
	bg := strings.TrimSpace(parts[len(parts)-1])
	if bg == "" || bg == "default" {
		return BackgroundUnknown
	}

	n, err := strconv.Atoi(bg)
	if err != nil {
		return BackgroundUnknown
	}
	switch {
	// ANSI 16-color backgrounds: 4 (blue) and 12 (bright blue).
	case n == 4 || n == 12:
		return BackgroundBlue
	case n == 7 || n >= 9 && n <= 15:
		return BackgroundLight
	default:
		return BackgroundDark
	}
}
