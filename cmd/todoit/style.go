package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/todoit/todoit/internal/types"
)

var colorProfile = termenv.ColorProfile()

var (
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	accentStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	progStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// renderStatus styles an item/list status consistently across commands.
func renderStatus(s types.ItemStatus) string {
	switch s {
	case types.StatusCompleted:
		return doneStyle.Render(string(s))
	case types.StatusInProgress:
		return progStyle.Render(string(s))
	case types.StatusFailed:
		return failStyle.Render(string(s))
	default:
		return pendingStyle.Render(string(s))
	}
}
