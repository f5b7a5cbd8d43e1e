package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel asks a yes/no question.
type ConfirmModel struct {
	prompt    string
	selected  bool
	answered  bool
	cancelled bool
}

// NewConfirm creates a yes/no prompt with defaultYes preselected.
func NewConfirm(prompt string, defaultYes bool) ConfirmModel {
	return ConfirmModel{
		prompt:   prompt,
		selected: defaultYes,
	}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		m.selected = true
		m.answered = true
		return m, tea.Quit
	case "n", "N":
		m.selected = false
		m.answered = true
		return m, tea.Quit
	case "enter":
		m.answered = true
		return m, tea.Quit
	case "left", "right", "tab":
		m.selected = !m.selected
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.answered || m.cancelled {
		return ""
	}

	yesStyle, noStyle := UnselectedStyle, SelectedStyle
	if m.selected {
		yesStyle, noStyle = SelectedStyle, UnselectedStyle
	}

	return fmt.Sprintf(
		"%s %s\n%s %s\n%s\n",
		QuestionStyle.Render(IconQuestion),
		m.prompt,
		yesStyle.Render("Yes"),
		noStyle.Render("No"),
		HelpStyle.Render("←/→: toggle • y/n: answer • enter: confirm • esc: cancel"),
	)
}

// Answer reports the choice once the question was answered.
func (m ConfirmModel) Answer() bool {
	return m.answered && m.selected
}

// IsCancelled reports whether the user gave up.
func (m ConfirmModel) IsCancelled() bool {
	return m.cancelled
}
