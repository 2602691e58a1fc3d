package tui

import "github.com/charmbracelet/lipgloss"

// ColorRed colors text red
func ColorRed(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("1")).
		Render(text)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(text)
}

// ColorCyan colors text cyan
func ColorCyan(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Render(text)
}

// ColorMagenta colors text magenta
func ColorMagenta(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("5")).
		Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(text)
}

// ColorHeading renders a section heading
func ColorHeading(text string) string {
	return lipgloss.NewStyle().Bold(true).Render(text)
}

// ColorChangeID colors a jj change id
func ColorChangeID(id string) string { return ColorMagenta(id) }

// ColorCommitID colors a jj commit id
func ColorCommitID(id string) string { return ColorCyan(id) }

// ColorDescription renders a commit description, marking empty ones the way jj does
func ColorDescription(description string) string {
	if description == "" {
		return ColorDim("(no description set)")
	}
	return description
}
