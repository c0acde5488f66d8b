package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text, color string
}{
	{" _____", "#f87171"},
	{"|_   _| __ _   _ _ __ ___   __ _ _ __", "#fb923c"},
	{"  | || '__| | | | '_ ` _ \\ / _` | '_ \\", "#facc15"},
	{"  | || |  | |_| | | | | | | (_| | | | |", "#4ade80"},
	{"  |_||_|   \\__,_|_| |_| |_|\\__,_|_| |_|", "#60a5fa"},
}

// PrintBanner writes the ASCII banner with the terminal's color profile.
// Writers that are not terminals get plain text.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
