package tui_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"jjdiverge.dev/jjdiverge/internal/tui"
)

func init() {
	// Force color output so ANSI escape codes are generated
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestColorHelpers(t *testing.T) {
	for name, render := range map[string]func(string) string{
		"change":  tui.ColorChangeID,
		"commit":  tui.ColorCommitID,
		"red":     tui.ColorRed,
		"yellow":  tui.ColorYellow,
		"heading": tui.ColorHeading,
	} {
		t.Run(name, func(t *testing.T) {
			out := render("kxqpzlym")
			require.Contains(t, out, "kxqpzlym")
			require.Contains(t, out, "\x1b[")
		})
	}
}

func TestColorDescription(t *testing.T) {
	require.Equal(t, "fix parser", tui.ColorDescription("fix parser"))
	require.Contains(t, tui.ColorDescription(""), "(no description set)")
}

func TestHighlightDiff(t *testing.T) {
	diff := "diff --git a/main.go b/main.go\n--- a/main.go\n+++ b/main.go\n@@ -1 +1 @@\n-old\n+new\n"

	t.Run("disabled leaves text untouched", func(t *testing.T) {
		require.Equal(t, diff, tui.HighlightDiff(diff, false))
	})

	t.Run("blank diff untouched", func(t *testing.T) {
		require.Equal(t, "  \n", tui.HighlightDiff("  \n", true))
	})

	t.Run("enabled adds escapes and keeps content", func(t *testing.T) {
		out := tui.HighlightDiff(diff, true)
		require.Contains(t, out, "\x1b[")
		require.Contains(t, out, "new")
		require.True(t, strings.Contains(out, "main.go"))
	})

	t.Run("already coloured text untouched", func(t *testing.T) {
		coloured := "\x1b[31m-old\x1b[0m\n"
		require.Equal(t, coloured, tui.HighlightDiff(coloured, true))
	})
}
