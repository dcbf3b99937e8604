// Package console prints the colored progress and report lines used by the
// qtree commands. Colors are dropped when the output is not a terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"

	barLength = 40
)

// Printer writes report lines to an io.Writer
type Printer struct {
	w     io.Writer
	color bool
}

// New returns a Printer for w. Colors are enabled only when w is a terminal
// and NO_COLOR is unset.
func New(w io.Writer) *Printer {
	return &Printer{w: w, color: isTerminal(w) && os.Getenv("NO_COLOR") == ""}
}

// NewPlain returns a Printer that never emits escape codes
func NewPlain(w io.Writer) *Printer {
	return &Printer{w: w}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + colorReset
}

func (p *Printer) Title(title string) {
	fmt.Fprintf(p.w, "\n%s\n", p.paint(colorBold+colorPurple, title))
	fmt.Fprintln(p.w, strings.Repeat("=", 60))
}

func (p *Printer) Subtitle(subtitle string) {
	fmt.Fprintf(p.w, "\n%s\n", p.paint(colorBold+colorCyan, subtitle))
}

func (p *Printer) Success(message string) {
	fmt.Fprintln(p.w, p.paint(colorGreen, "✓ "+message))
}

func (p *Printer) Info(message string) {
	fmt.Fprintln(p.w, p.paint(colorYellow, "• "+message))
}

func (p *Printer) Error(message string) {
	fmt.Fprintln(p.w, p.paint(colorRed, "✗ "+message))
}

// Stat prints an indented "label: value" line
func (p *Printer) Stat(label string, value interface{}) {
	fmt.Fprintf(p.w, "  %s %s\n", p.paint(colorBold, label+":"), p.paint(colorYellow, fmt.Sprint(value)))
}

// Progress redraws a single-line progress bar and ends the line once
// current reaches total.
func (p *Printer) Progress(current, total int, label string) {
	if total <= 0 {
		return
	}
	if current > total {
		current = total
	}
	percent := float64(current) / float64(total) * 100
	filled := int(percent / 100 * barLength)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barLength-filled)
	fmt.Fprintf(p.w, "\r%s %s [%s]", label, p.paint(colorCyan, fmt.Sprintf("%.1f%%", percent)), bar)
	if current >= total {
		fmt.Fprintln(p.w)
	}
}
