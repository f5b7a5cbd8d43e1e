package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette shared by prompts and the action summary.
var (
	ColorBlue   = lipgloss.Color("63")
	ColorPurple = lipgloss.Color("141")
	ColorGreen  = lipgloss.Color("42")
	ColorYellow = lipgloss.Color("220")
	ColorRed    = lipgloss.Color("196")
	ColorGray   = lipgloss.Color("240")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple).
			MarginBottom(1)

	QuestionStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPurple).
			Bold(true).
			PaddingLeft(2)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			PaddingLeft(2)

	// Action labels in the summary.
	CreateStyle = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	UpdateStyle = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	RenameStyle = lipgloss.NewStyle().Foreground(ColorPurple).Bold(true)
	DeleteStyle = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)

	IconQuestion = "?"
	IconSuccess  = "✔"
	IconWarning  = "!"
)
