package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/danielsotopino/simple-taskmanager/models"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")  // Cyan
	ColorBlue      = lipgloss.Color("75")  // Blue

	// Base styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	// Board column frame
	StyleBoardColumn = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(ColorSecondary).
				Padding(0, 1)
)

var statusStyles = map[models.TaskStatus]lipgloss.Style{
	models.StatusTodo:       lipgloss.NewStyle().Foreground(ColorSecondary),
	models.StatusInProgress: lipgloss.NewStyle().Foreground(ColorCyan),
	models.StatusInReview:   lipgloss.NewStyle().Foreground(ColorBlue),
	models.StatusTesting:    lipgloss.NewStyle().Foreground(ColorWarning),
	models.StatusBlocked:    lipgloss.NewStyle().Foreground(ColorError),
	models.StatusDone:       lipgloss.NewStyle().Foreground(ColorSuccess),
}

var priorityStyles = map[models.TaskPriority]lipgloss.Style{
	models.PriorityLow:      lipgloss.NewStyle().Foreground(ColorSecondary),
	models.PriorityMedium:   lipgloss.NewStyle().Foreground(ColorText),
	models.PriorityHigh:     lipgloss.NewStyle().Foreground(ColorWarning),
	models.PriorityCritical: lipgloss.NewStyle().Foreground(ColorError).Bold(true),
}

// StatusStyle returns the display style for a workflow state.
func StatusStyle(s models.TaskStatus) lipgloss.Style {
	if style, ok := statusStyles[s]; ok {
		return style
	}
	return StyleSubtle
}

// PriorityStyle returns the display style for a priority.
func PriorityStyle(p models.TaskPriority) lipgloss.Style {
	if style, ok := priorityStyles[p]; ok {
		return style
	}
	return StyleSubtle
}

// StatusBadge renders a status as a fixed vocabulary badge.
func StatusBadge(s models.TaskStatus) string {
	return StatusStyle(s).Render(string(s))
}
