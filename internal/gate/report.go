package gate

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Kind classifies a report message for display.
type Kind int

const (
	KindInfo Kind = iota
	KindNotice
	KindImproved
	KindRegression
)

// Message is one human-readable report entry. Text may span several lines.
type Message struct {
	Kind Kind
	Text string
}

const (
	prefix     = "mypykaizen:"
	diffIndent = "    "
)

// continuation aligns wrapped message lines under the text after the prefix.
var continuation = strings.Repeat(" ", len(prefix)+1)

// Printer renders gate messages to the terminal.
type Printer struct {
	w      io.Writer
	err    error
	styles map[Kind]lipgloss.Style
}

// NewPrinter returns a Printer writing to w. color is one of "auto",
// "always" or "never"; auto enables styling only when w is a terminal.
func NewPrinter(w io.Writer, color string) *Printer {
	r := lipgloss.NewRenderer(w)
	switch color {
	case "never":
		r.SetColorProfile(termenv.Ascii)
	case "always":
		r.SetColorProfile(termenv.ANSI256)
	}
	base := r.NewStyle().Bold(true)
	return &Printer{
		w: w,
		styles: map[Kind]lipgloss.Style{
			KindInfo:       base,
			KindNotice:     base.Foreground(lipgloss.Color("#FFB800")),
			KindImproved:   base.Foreground(lipgloss.Color("#00D26A")),
			KindRegression: base.Foreground(lipgloss.Color("#FF3838")),
		},
	}
}

// Message prints m with the tool prefix, indenting continuation lines.
func (p *Printer) Message(m Message) {
	lines := strings.Split(m.Text, "\n")
	p.printf("%s %s\n", p.styles[m.Kind].Render(prefix), lines[0])
	for _, l := range lines[1:] {
		p.printf("%s%s\n", continuation, l)
	}
}

// Messages prints each message in order.
func (p *Printer) Messages(ms []Message) {
	for _, m := range ms {
		p.Message(m)
	}
}

// Line prints a single-line message of the given kind.
func (p *Printer) Line(kind Kind, text string) {
	p.Message(Message{Kind: kind, Text: text})
}

// Raw prints s verbatim.
func (p *Printer) Raw(s string) {
	p.printf("%s\n", s)
}

// Diff prints the newly introduced diagnostics under a header.
func (p *Printer) Diff(lines []string) {
	p.Line(KindRegression, "Differences")
	for _, l := range lines {
		p.printf("%s%s\n", diffIndent, l)
	}
}

// Err returns the first write error, if any.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
