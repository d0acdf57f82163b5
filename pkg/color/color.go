// Package color holds the styles used for report output and the terminal
// capability check that decides whether they are applied.
package color

import (
	"os"
	"strings"

	fcolor "github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Palette is a set of styles bound to one output. Each Palette owns its
// colour instances, so enabling one never affects another.
type Palette struct {
	Heading *fcolor.Color
	OK      *fcolor.Color
	Warn    *fcolor.Color
	Error   *fcolor.Color
	Accent  *fcolor.Color
	Dim     *fcolor.Color
}

func NewPalette(enabled bool) *Palette {
	p := &Palette{
		Heading: fcolor.New(fcolor.Bold),
		OK:      fcolor.New(fcolor.FgGreen),
		Warn:    fcolor.New(fcolor.FgYellow),
		Error:   fcolor.New(fcolor.FgRed, fcolor.Bold),
		Accent:  fcolor.New(fcolor.FgCyan),
		Dim:     fcolor.New(fcolor.Faint),
	}
	for _, c := range []*fcolor.Color{p.Heading, p.OK, p.Warn, p.Error, p.Accent, p.Dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Supported reports whether f is a terminal that accepts colour.
func Supported(f *os.File) bool {
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	colorTerm := os.Getenv("COLORTERM")
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		return true
	}
	return strings.Contains(term, "color") ||
		strings.Contains(term, "ansi") ||
		strings.Contains(term, "xterm") ||
		strings.Contains(term, "screen")
}
