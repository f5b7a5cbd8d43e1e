package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// SelectModel picks one entry of a list.
type SelectModel struct {
	prompt    string
	choices   []string
	cursor    int
	selected  int
	cancelled bool
}

// NewSelect creates a list prompt.
func NewSelect(prompt string, choices []string) SelectModel {
	return SelectModel{
		prompt:   prompt,
		choices:  choices,
		selected: -1,
	}
}

func (m SelectModel) Init() tea.Cmd {
	return nil
}

func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case "enter":
		m.selected = m.cursor
		return m, tea.Quit
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SelectModel) View() string {
	if m.selected >= 0 || m.cancelled {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", QuestionStyle.Render(IconQuestion), m.prompt)
	for i, choice := range m.choices {
		if i == m.cursor {
			b.WriteString(SelectedStyle.Render("> "+choice) + "\n")
			continue
		}
		b.WriteString(UnselectedStyle.Render("  "+choice) + "\n")
	}
	b.WriteString(HelpStyle.Render("↑/↓: navigate • enter: select • esc: cancel") + "\n")
	return b.String()
}

// Selected returns the chosen entry, or "" before a choice was made.
func (m SelectModel) Selected() string {
	if m.selected >= 0 && m.selected < len(m.choices) {
		return m.choices[m.selected]
	}
	return ""
}

// IsCancelled reports whether the user gave up.
func (m SelectModel) IsCancelled() bool {
	return m.cancelled
}
