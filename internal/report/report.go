// Package report renders the text views of a project corpus. Every report
// writes to a single io.Writer; emoji glyphs can be swapped for ASCII tags
// and colour is opt-in per Renderer.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kazz187/pmgraph/pkg/color"
)

type Options struct {
	Color bool
	ASCII bool
	// BarWidth is the number of slots in a progress bar.
	BarWidth int
	// StandupWindow is how far back the standup report looks.
	StandupWindow time.Duration
	// Now is the clock used by time based reports.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.BarWidth <= 0 {
		o.BarWidth = 20
	}
	if o.StandupWindow <= 0 {
		o.StandupWindow = 24 * time.Hour
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Renderer writes reports. The first write error is kept and returned by
// the report method; later writes are skipped.
type Renderer struct {
	w       io.Writer
	opts    Options
	palette *color.Palette
	err     error
}

func New(w io.Writer, opts Options) *Renderer {
	opts = opts.withDefaults()
	return &Renderer{
		w:       w,
		opts:    opts,
		palette: color.NewPalette(opts.Color),
	}
}

func (r *Renderer) write(s string) {
	if r.err != nil {
		return
	}
	if r.opts.ASCII {
		s = ToASCII(s)
	}
	_, r.err = io.WriteString(r.w, s)
}

func (r *Renderer) line(format string, args ...any) {
	r.write(fmt.Sprintf(format, args...) + "\n")
}

func (r *Renderer) blank() {
	r.write("\n")
}

// title writes a heading underlined to its displayed width.
func (r *Renderer) title(s string) {
	shown := s
	if r.opts.ASCII {
		shown = ToASCII(s)
	}
	r.line("%s", r.palette.Heading.Sprint(s))
	r.line("%s", strings.Repeat("=", utf8.RuneCountInString(shown)))
	r.blank()
}

func (r *Renderer) section(s string) {
	r.line("%s", r.palette.Heading.Sprint(s))
}

func (r *Renderer) ok(s string) string {
	return r.palette.OK.Sprint(s)
}

func (r *Renderer) warn(s string) string {
	return r.palette.Warn.Sprint(s)
}

func (r *Renderer) fail(s string) string {
	return r.palette.Error.Sprint(s)
}

func (r *Renderer) done() error {
	err := r.err
	r.err = nil
	return err
}

// Bar renders percent (clamped to 0..100) as a bracketed bar of width slots.
func Bar(percent, width int) string {
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// Separator divides successive renders on the same output.
func (r *Renderer) Separator() error {
	r.blank()
	r.line("%s", r.palette.Dim.Sprint(strings.Repeat("-", 40)))
	r.blank()
	return r.done()
}

// Error writes a user facing error message.
func (r *Renderer) Error(msg string) error {
	r.line("%s", r.fail("❌ "+msg))
	return r.done()
}
