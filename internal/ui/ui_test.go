package ui

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosanma1/forge-native/internal/tree"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m
}

func TestTextInput(t *testing.T) {
	m := send(NewTextInput("Name?", "home"), "h", "i", "enter").(TextInputModel)
	assert.True(t, m.IsDone())
	assert.Equal(t, "hi", m.Value())
	assert.Empty(t, m.View())

	m = send(NewTextInput("Name?", ""), "esc").(TextInputModel)
	assert.True(t, m.IsCancelled())
	assert.False(t, m.IsDone())
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		defaultYes bool
		keys       []string
		want       bool
	}{
		{"default yes", true, []string{"enter"}, true},
		{"default no", false, []string{"enter"}, false},
		{"toggle", false, []string{"tab", "enter"}, true},
		{"quick yes", false, []string{"y"}, true},
		{"quick no", true, []string{"n"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := send(NewConfirm("Sure?", tt.defaultYes), tt.keys...).(ConfirmModel)
			assert.Equal(t, tt.want, m.Answer())
			assert.False(t, m.IsCancelled())
		})
	}

	m := send(NewConfirm("Sure?", true), "esc").(ConfirmModel)
	assert.True(t, m.IsCancelled())
	assert.False(t, m.Answer())
}

func TestSelect(t *testing.T) {
	m := NewSelect("Style?", []string{"css", "scss", "less"})
	assert.Contains(t, m.View(), "css")

	got := send(m, "down", "down", "down", "enter").(SelectModel)
	assert.Equal(t, "less", got.Selected())

	got = send(m, "j", "k", "enter").(SelectModel)
	assert.Equal(t, "css", got.Selected())

	got = send(m, "esc").(SelectModel)
	assert.True(t, got.IsCancelled())
	assert.Empty(t, got.Selected())
}

func TestPrintActions(t *testing.T) {
	var buf bytes.Buffer
	PrintActions(&buf, []tree.Action{
		{Kind: tree.ActionCreate, Path: "src/main.tns.ts", Content: []byte("abc")},
		{Kind: tree.ActionOverwrite, Path: "package.json", Content: []byte("{}")},
		{Kind: tree.ActionRename, Path: "src/main.ts", To: "src/main.web.ts"},
		{Kind: tree.ActionDelete, Path: "old.ts"},
	})

	out := buf.String()
	assert.Contains(t, out, "src/main.tns.ts (3 bytes)")
	assert.Contains(t, out, "package.json (2 bytes)")
	assert.Contains(t, out, "src/main.ts => src/main.web.ts")
	assert.Contains(t, out, "old.ts")
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(&buf, nil, false)
	assert.Contains(t, buf.String(), "Nothing to be done.")

	buf.Reset()
	PrintResult(&buf, []tree.Action{{Kind: tree.ActionDelete, Path: "x"}}, true)
	assert.Contains(t, buf.String(), "Dry run")

	buf.Reset()
	PrintResult(&buf, []tree.Action{{Kind: tree.ActionDelete, Path: "x"}}, false)
	assert.Contains(t, buf.String(), "1 change(s) written.")
}

func TestNewProgress(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgress(&buf, 3, "Converting")
	for i := 0; i < 3; i++ {
		require.NoError(t, bar.Add(1))
	}

	assert.NotNil(t, NewProgress(nil, 1, "quiet"))
}
