// Package tui provides the terminal user interface for jjdiverge.
//
// It handles:
//   - Interactive prompts and selections (using survey and bubbletea)
//   - Structured logging and status reporting (Splog)
//   - Terminal styling and colors (using lipgloss)
//   - Diff highlighting (using chroma)
package tui
