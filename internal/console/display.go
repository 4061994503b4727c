package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// display writes styled console output line by line.
type display struct {
	out io.Writer

	header  lipgloss.Style
	info    lipgloss.Style
	subInfo lipgloss.Style
	row     lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
}

func newDisplay(out io.Writer) *display {
	r := lipgloss.NewRenderer(out)
	return &display{
		out:     out,
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		info:    r.NewStyle().Foreground(lipgloss.Color("252")),
		subInfo: r.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
		row:     r.NewStyle().Foreground(lipgloss.Color("86")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
		err:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

func (d *display) Rule()                     { d.write(d.header, Rule) }
func (d *display) Header(msg string)         { d.write(d.header, msg) }
func (d *display) Info(msg string)           { d.write(d.info, msg) }
func (d *display) SubInfo(msg string)        { d.write(d.subInfo, msg) }
func (d *display) Row(msg string)            { d.write(d.row, msg) }
func (d *display) Warn(msg string)           { d.write(d.warn, msg) }
func (d *display) Error(msg string)          { d.write(d.err, msg) }
func (d *display) Infof(f string, a ...any)  { d.Info(fmt.Sprintf(f, a...)) }
func (d *display) Errorf(f string, a ...any) { d.Error(fmt.Sprintf(f, a...)) }

// Block writes preformatted text such as describe output unstyled.
func (d *display) Block(text string) {
	_, _ = io.WriteString(d.out, text)
	if !strings.HasSuffix(text, "\n") {
		_, _ = io.WriteString(d.out, "\n")
	}
}

// Table writes a title, header and rows as produced by the output package.
func (d *display) Table(lines []string) {
	if len(lines) < 2 {
		return
	}
	d.Header(lines[0])
	d.SubInfo(lines[1])
	for _, line := range lines[2:] {
		d.Row(line)
	}
}

// write renders each line separately so lipgloss never pads lines to a
// common width.
func (d *display) write(style lipgloss.Style, msg string) {
	for _, line := range strings.Split(strings.TrimRight(msg, "\n"), "\n") {
		_, _ = fmt.Fprintln(d.out, style.Render(line))
	}
}
