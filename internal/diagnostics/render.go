package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiDim    = "\x1b[2m"
)

// Renderer writes diagnostics in a fixed, line-oriented format. Colors are
// enabled only when the destination is a terminal.
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer builds a renderer for w, detecting TTY color support when w is
// an *os.File.
func NewRenderer(w io.Writer) *Renderer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Renderer{w: w, color: color}
}

// NewPlainRenderer builds a renderer that never emits color.
func NewPlainRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render writes one diagnostic, its witnesses, and its related spans.
func (r *Renderer) Render(file string, d *Diagnostic) {
	sev := d.Severity.String()
	if r.color {
		c := ansiRed
		if d.Severity == SeverityWarning {
			c = ansiYellow
		}
		sev = c + sev + ansiReset
	}
	fmt.Fprintf(r.w, "%s:%d:%d: %s[%s]: %s\n",
		file, d.Span.Start.Line, d.Span.Start.Column, sev, d.Code, d.Message)
	for _, w := range d.Witnesses {
		fmt.Fprintf(r.w, "    missing: %s\n", w)
	}
	for _, rel := range d.Related {
		note := fmt.Sprintf("    note: %s (%s:%d:%d)",
			rel.Message, file, rel.Span.Start.Line, rel.Span.Start.Column)
		if r.color {
			note = ansiDim + note + ansiReset
		}
		fmt.Fprintln(r.w, note)
	}
}

// RenderAll writes every diagnostic in order.
func (r *Renderer) RenderAll(file string, diags []*Diagnostic) {
	for _, d := range diags {
		r.Render(file, d)
	}
}
