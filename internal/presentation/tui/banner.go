package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"  ___  ___ _ __ ___  ___ _ ____      ____ _| | | __",
	" / __|/ __| '__/ _ \\/ _ \\ '_ \\ \\ /\\ / / _` | | |/ /",
	" \\__ \\ (__| | |  __/  __/ | | \\ V  V / (_| | |   < ",
	" |___/\\___|_|  \\___|\\___|_| |_|\\_/\\_/ \\__,_|_|_|\\_\\",
}

// Teal to green, one color per line.
var bannerColors = []string{"#2dd4bf", "#34d399", "#4ade80", "#a3e635"}

// PrintBanner writes the screenwalk banner using the terminal's color profile.
func PrintBanner(w io.Writer, p termenv.Profile) {
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, p.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w)
}
