package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/scango/internal/ui/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(style.White)

	modeStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	idleStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	successStyle = lipgloss.NewStyle().
			Foreground(style.Green).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(style.Yellow).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)

	totalStyle = lipgloss.NewStyle().
			Bold(true)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(style.Red).
			Padding(0, 1)

	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(style.Red)
)
