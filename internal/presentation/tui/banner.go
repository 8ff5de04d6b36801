package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the site title and the overlay version, styled for the terminal.
func PrintBanner(w io.Writer, title, version string) {
	out := termenv.NewOutput(w)
	name := out.String(" overlay ").Bold().Foreground(out.Color("#1e1b4b")).Background(out.Color("#a78bfa"))
	site := out.String(title).Bold().Foreground(out.Color("#c084fc"))
	ver := out.String("v" + version).Faint()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s %s\n", name, site, ver)
	fmt.Fprintln(w)
}
