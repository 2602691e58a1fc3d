package tui_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"jjdiverge.dev/jjdiverge/internal/tui"
)

var menu = []tui.SelectOption{
	{Label: "AL. Abandon left", Value: "AL"},
	{Label: "AR. Abandon right", Value: "AR"},
	{Label: "P. Print stack", Value: "P"},
}

func TestLinePromptsInput(t *testing.T) {
	t.Run("returns trimmed answer", func(t *testing.T) {
		var out bytes.Buffer
		p := tui.NewLinePrompts(strings.NewReader("  yes \n"), &out)
		answer, err := p.Input("Abandon left commit? (y/N/s):", nil)
		require.NoError(t, err)
		require.Equal(t, "yes", answer)
		require.Contains(t, out.String(), "Abandon left commit? (y/N/s):")
	})

	t.Run("asks again until valid", func(t *testing.T) {
		var out bytes.Buffer
		p := tui.NewLinePrompts(strings.NewReader("7\n2\n"), &out)
		answer, err := p.Input("Choose option (1-3):", func(s string) error {
			if s != "1" && s != "2" && s != "3" {
				return fmt.Errorf("%w: %q", tui.ErrInvalidChoice, s)
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, "2", answer)
		require.Contains(t, out.String(), "Invalid choice.")
		require.NotContains(t, out.String(), `"7"`)
	})

	t.Run("other validation errors are shown as is", func(t *testing.T) {
		var out bytes.Buffer
		p := tui.NewLinePrompts(strings.NewReader("\nok\n"), &out)
		answer, err := p.Input("Name:", func(s string) error {
			if s == "" {
				return fmt.Errorf("must not be empty")
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, "ok", answer)
		require.Contains(t, out.String(), "Invalid answer: must not be empty")
	})

	t.Run("last line without newline", func(t *testing.T) {
		p := tui.NewLinePrompts(strings.NewReader("s"), &bytes.Buffer{})
		answer, err := p.Input("?", nil)
		require.NoError(t, err)
		require.Equal(t, "s", answer)
	})

	t.Run("closed input errors", func(t *testing.T) {
		p := tui.NewLinePrompts(strings.NewReader(""), &bytes.Buffer{})
		_, err := p.Input("?", nil)
		require.Error(t, err)
	})
}

func TestLinePromptsSelect(t *testing.T) {
	var out bytes.Buffer
	p := tui.NewLinePrompts(strings.NewReader("zz\nar\n"), &out)

	value, err := p.Select("What would you like to do?", menu, 0)
	require.NoError(t, err)
	require.Equal(t, "AR", value)
	require.Contains(t, out.String(), "AL. Abandon left")
	require.Contains(t, out.String(), "Invalid choice.")

	_, err = p.Select("empty", nil, 0)
	require.Error(t, err)
}

func TestSelectModel(t *testing.T) {
	t.Run("moves and chooses", func(t *testing.T) {
		var m tea.Model = tui.SelectModel{Options: menu, Title: "What would you like to do?"}
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

		final := m.(tui.SelectModel)
		require.True(t, final.Done)
		require.Equal(t, "P", final.Selected)
		require.NotNil(t, cmd)
	})

	t.Run("wraps upwards", func(t *testing.T) {
		var m tea.Model = tui.SelectModel{Options: menu}
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
		require.Equal(t, 2, m.(tui.SelectModel).Cursor)
	})

	t.Run("escape cancels", func(t *testing.T) {
		var m tea.Model = tui.SelectModel{Options: menu}
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		final := m.(tui.SelectModel)
		require.ErrorIs(t, final.Err, tui.ErrPromptCanceled)
		require.Empty(t, final.View())
	})

	t.Run("view marks cursor", func(t *testing.T) {
		m := tui.SelectModel{Options: menu, Cursor: 1, Title: "Menu"}
		require.Contains(t, m.View(), "→")
		require.Contains(t, m.View(), "Abandon right")
	})
}
