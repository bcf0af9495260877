package main

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("35")).Padding(0, 1)
)

func check(ok bool) string {
	if ok {
		return okStyle.Render("✓")
	}

	return errorStyle.Render("✗")
}
