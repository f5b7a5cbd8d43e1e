package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TextInputModel asks for one line of text.
type TextInputModel struct {
	textInput textinput.Model
	prompt    string
	value     string
	done      bool
	cancelled bool
}

// NewTextInput creates a text prompt. placeholder is shown greyed out
// until the user types.
func NewTextInput(prompt, placeholder string) TextInputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	return TextInputModel{
		textInput: ti,
		prompt:    prompt,
	}
}

func (m TextInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m TextInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.value = m.textInput.Value()
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m TextInputModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	return fmt.Sprintf(
		"%s %s\n%s\n%s\n",
		QuestionStyle.Render(IconQuestion),
		m.prompt,
		m.textInput.View(),
		HelpStyle.Render("enter: submit • esc: cancel"),
	)
}

// Value returns the submitted text.
func (m TextInputModel) Value() string {
	return m.value
}

// IsDone reports whether the text was submitted.
func (m TextInputModel) IsDone() bool {
	return m.done
}

// IsCancelled reports whether the user gave up.
func (m TextInputModel) IsCancelled() bool {
	return m.cancelled
}
