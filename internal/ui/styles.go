package ui

import (
	"github.com/charmbracelet/lipgloss"

	"kireiroutine/internal/catalog"
)

var frequencyColors = map[catalog.Frequency]lipgloss.Color{
	catalog.Weekly:     lipgloss.Color("#A6E3A1"),
	catalog.BiWeekly:   lipgloss.Color("#94E2D5"),
	catalog.Monthly:    lipgloss.Color("#89B4FA"),
	catalog.Quarterly:  lipgloss.Color("#CBA6F7"),
	catalog.SemiAnnual: lipgloss.Color("#F9E2AF"),
	catalog.Annual:     lipgloss.Color("#F38BA8"),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	todayStyle    = lipgloss.NewStyle().Underline(true).Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	pickedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	cellStyle     = lipgloss.NewStyle().Width(7)
)

// FrequencyStyle colours text by frequency. Unknown frequencies are muted.
func FrequencyStyle(f catalog.Frequency) lipgloss.Style {
	c, ok := frequencyColors[f]
	if !ok {
		return mutedStyle
	}
	return lipgloss.NewStyle().Foreground(c)
}

// Shared with the command line output.
var (
	Good  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	Bad   = warnStyle
	Muted = mutedStyle
	Title = titleStyle
)
