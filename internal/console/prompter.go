package console

import (
	"bufio"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// ErrInterrupted is returned by a Prompter when the operator aborts a prompt
// or input ends.
var ErrInterrupted = errors.New("interrupted")

// Prompter asks the operator for input.
type Prompter interface {
	// Select shows options and returns the index of the chosen one.
	Select(title, description string, options []string) (int, error)

	// Input asks for one line of free text.
	Input(title string) (string, error)

	// Spin runs action while showing progress.
	Spin(title string, action func()) error
}

// HuhPrompter implements Prompter with charmbracelet/huh forms. In accessible
// mode it reads numbered choices and plain lines instead of drawing a TUI,
// which also makes it usable with piped input.
type HuhPrompter struct {
	accessible bool
	in         *lineReader
	out        io.Writer
}

// NewHuhPrompter returns a Prompter reading from in and drawing to out.
func NewHuhPrompter(in io.Reader, out io.Writer, accessible bool) *HuhPrompter {
	return &HuhPrompter{
		accessible: accessible,
		in:         &lineReader{r: bufio.NewReader(in)},
		out:        out,
	}
}

// Select implements Prompter.
func (p *HuhPrompter) Select(title, description string, options []string) (int, error) {
	huhOptions := make([]huh.Option[int], 0, len(options))
	for i, label := range options {
		huhOptions = append(huhOptions, huh.NewOption(label, i))
	}

	var choice int
	field := huh.NewSelect[int]().
		Title(title).
		Description(description).
		Options(huhOptions...).
		Value(&choice)

	if err := p.run(field); err != nil {
		return 0, err
	}
	return choice, nil
}

// Input implements Prompter.
func (p *HuhPrompter) Input(title string) (string, error) {
	var value string
	field := huh.NewInput().
		Title(title).
		Prompt(PromptPrefix).
		Value(&value)

	if err := p.run(field); err != nil {
		return "", err
	}
	return value, nil
}

// Spin implements Prompter. Accessible mode runs action without animation.
func (p *HuhPrompter) Spin(title string, action func()) error {
	if p.accessible {
		action()
		return nil
	}
	err := spinner.New().
		Title(title).
		Action(action).
		Run()
	return interruption(err)
}

func (p *HuhPrompter) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithShowHelp(false).
		WithOutput(p.out)

	if !p.accessible {
		return interruption(form.Run())
	}

	before := p.in.delivered
	if err := form.WithAccessible(true).WithInput(p.in).Run(); err != nil {
		return err
	}
	// huh answers an exhausted reader with the field default; treat it as
	// the end of the session instead.
	if p.in.eof && p.in.delivered == before {
		return ErrInterrupted
	}
	return nil
}

// lineReader hands out at most one line per Read. huh scans every prompt
// with a fresh bufio.Scanner, which would otherwise swallow the lines meant
// for later prompts.
type lineReader struct {
	r         *bufio.Reader
	pending   []byte
	delivered int
	eof       bool
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(l.pending) == 0 {
		line, err := l.r.ReadBytes('\n')
		if len(line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
			}
			return 0, err
		}
		l.pending = line
	}

	n := copy(p, l.pending)
	l.pending = l.pending[n:]
	l.delivered += n
	return n, nil
}

// interruption maps the ways a TUI program reports Ctrl-C to ErrInterrupted.
func interruption(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, huh.ErrUserAborted), errors.Is(err, tea.ErrInterrupted):
		return ErrInterrupted
	default:
		return err
	}
}
