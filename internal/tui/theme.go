package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var darkBackground = termenv.HasDarkBackground()

func pick(dark, light string) lipgloss.Color {
	if darkBackground {
		return lipgloss.Color(dark)
	}
	return lipgloss.Color(light)
}

var (
	styleHeader = lipgloss.NewStyle().Bold(true)
	styleFooter = lipgloss.NewStyle().Faint(true)
	styleStatus = lipgloss.NewStyle().Foreground(pick("214", "130"))

	styleCursor   = lipgloss.NewStyle().Reverse(true)
	styleSelected = lipgloss.NewStyle().Foreground(pick("81", "25")).Bold(true)

	styleNumber    = lipgloss.NewStyle().Foreground(pick("245", "240"))
	styleDirective = lipgloss.NewStyle().Foreground(pick("150", "28"))
	styleLinked    = lipgloss.NewStyle().Foreground(pick("114", "22"))
	styleUnlinked  = lipgloss.NewStyle().Foreground(pick("203", "124"))
	styleModified  = lipgloss.NewStyle().Foreground(pick("214", "130"))
)

func markdownStyle() string {
	if darkBackground {
		return "dark"
	}
	return "light"
}
