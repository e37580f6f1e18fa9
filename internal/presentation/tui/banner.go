package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"               _                    _", "#818cf8"},
	{"  _ __ ___   __| |_ __ ___ _ __   __| | ___ _ __", "#a78bfa"},
	{" | '_ ` _ \\ / _` | '__/ _ \\ '_ \\ / _` |/ _ \\ '__|", "#c084fc"},
	{" | | | | | | (_| | | |  __/ | | | (_| |  __/ |", "#e879f9"},
	{" |_| |_| |_|\\__,_|_|  \\___|_| |_|\\__,_|\\___|_|", "#f472b6"},
}

// PrintBanner writes the mdrender banner to w, colored for w's terminal.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}

// Status writes a colored "label: message" line, e.g. for the serve command.
func Status(w io.Writer, label, msg string) {
	out := termenv.NewOutput(w)
	fmt.Fprintf(w, "%s %s\n", out.String(label).Foreground(out.ColorProfile().Color("#a78bfa")).Bold(), msg)
}
