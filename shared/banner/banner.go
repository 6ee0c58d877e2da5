// Package banner prints the startup title.
package banner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/thirukguru/docdb-multiscan/model"
	"github.com/thirukguru/docdb-multiscan/shared/ansi"
	"github.com/thirukguru/docdb-multiscan/shared/console"
	"golang.org/x/term"
)

// ColorEnv overrides the title color by name, e.g. DOCDB_MULTISCAN_BANNER_COLOR=teal.
const ColorEnv = "DOCDB_MULTISCAN_BANNER_COLOR"

const resetColor = "\x1b[0m"

var titleColors = map[string]string{
	"green":  "\x1b[38;2;37;161;70m",
	"teal":   "\x1b[38;2;0;150;136m",
	"orange": "\x1b[38;2;255;153;0m",
	"blue":   "\x1b[38;2;24;119;242m",
	"white":  "\x1b[38;2;240;240;240m",
	"navy":   "\x1b[38;2;20;40;120m",
}

var titleLines = []string{
	"██████╗   ██████╗   ██████╗ ██████╗  ██████╗ ",
	"██╔══██╗ ██╔═══██╗ ██╔════╝ ██╔══██╗ ██╔══██╗",
	"██║  ██║ ██║   ██║ ██║      ██║  ██║ ██████╔╝",
	"██║  ██║ ██║   ██║ ██║      ██║  ██║ ██╔══██╗",
	"██████╔╝ ╚██████╔╝ ╚██████╗ ██████╔╝ ██████╔╝",
	"╚═════╝   ╚═════╝   ╚═════╝ ╚═════╝  ╚═════╝ ",
}

// titleColor picks a color readable on the detected background.
func titleColor(bg console.Background) string {
	if c, ok := titleColors[strings.ToLower(strings.TrimSpace(os.Getenv(ColorEnv)))]; ok {
		return c
	}
	switch bg {
	case console.BackgroundBlue:
		return titleColors["orange"]
	case console.BackgroundLight:
		return titleColors["navy"]
	default:
		return titleColors["green"]
	}
}

func writeCentered(w io.Writer, lines []string, width int) {
	for _, line := range lines {
		if pad := (width - text.StringWidthWithoutEscSequences(line)) / 2; pad > 0 {
			fmt.Fprint(w, strings.Repeat(" ", pad))
		}
		fmt.Fprintln(w, line)
	}
}

// Draw writes the title and version to w, centered to the terminal width.
func Draw(w io.Writer, info model.VersionInfo) {
	width := 80
	if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 {
		width = tw
	}

	colored := ansi.EnableANSI()
	if colored {
		fmt.Fprint(w, titleColor(console.DetectBackground()))
	}
	writeCentered(w, titleLines, width)
	if colored {
		fmt.Fprint(w, resetColor)
	}

	subtitle := "multi-profile DocumentDB deployment scan"
	if info.Version != "" {
		subtitle += " · " + info.Version
	}
	writeCentered(w, []string{subtitle}, width)
	fmt.Fprintln(w)
}
