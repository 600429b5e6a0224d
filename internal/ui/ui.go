package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
)

// Printer writes human-readable progress lines. A nil *Printer discards
// everything, so callers never need to check.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Stdout returns a Printer writing to standard output.
func Stdout() *Printer {
	return New(os.Stdout)
}

// SetColor forces color output on or off, overriding terminal detection.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

func (p *Printer) Header(msg string) {
	if p == nil {
		return
	}
	fmt.Fprintf(p.w, "\n%s\n", bold.Sprint(msg))
}

func (p *Printer) Step(msg string) {
	if p == nil {
		return
	}
	fmt.Fprintln(p.w, msg)
}

func (p *Printer) Success(label, detail string) {
	if p == nil {
		return
	}
	fmt.Fprintf(p.w, "  %s %-15s %s\n", green.Sprint("✔"), label, green.Sprint(detail))
}

func (p *Printer) Error(label, detail string) {
	if p == nil {
		return
	}
	fmt.Fprintf(p.w, "  %s %-15s %s\n", red.Sprint("✘"), label, red.Sprint(detail))
}

func (p *Printer) Warning(label, detail string) {
	if p == nil {
		return
	}
	fmt.Fprintf(p.w, "  %s %-15s %s\n", yellow.Sprint("!"), label, yellow.Sprint(detail))
}
