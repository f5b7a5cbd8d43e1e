package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dosanma1/forge-native/internal/errors"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled")

// Prompter asks x-prompt questions on a terminal. It satisfies
// options.Prompter.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading keys from in and drawing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

func (p *Prompter) run(m tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(m, tea.WithInput(p.in), tea.WithOutput(p.out))
	final, err := prog.Run()
	if err != nil {
		return nil, errors.Wrap(err, "prompt failed")
	}
	return final, nil
}

// Text asks for a line of text. An empty answer returns "".
func (p *Prompter) Text(message, placeholder string) (string, error) {
	final, err := p.run(NewTextInput(message, placeholder))
	if err != nil {
		return "", err
	}
	result := final.(TextInputModel)
	if result.IsCancelled() {
		return "", ErrCancelled
	}
	return result.Value(), nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(message string, defaultYes bool) (bool, error) {
	final, err := p.run(NewConfirm(message, defaultYes))
	if err != nil {
		return false, err
	}
	result := final.(ConfirmModel)
	if result.IsCancelled() {
		return false, ErrCancelled
	}
	return result.Answer(), nil
}

// Select asks for one of choices.
func (p *Prompter) Select(message string, choices []string) (string, error) {
	final, err := p.run(NewSelect(message, choices))
	if err != nil {
		return "", err
	}
	result := final.(SelectModel)
	if result.IsCancelled() || result.Selected() == "" {
		return "", ErrCancelled
	}
	return result.Selected(), nil
}
