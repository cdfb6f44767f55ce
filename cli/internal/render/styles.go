// ABOUTME: Shared lipgloss styles for consistent terminal output
// ABOUTME: Defines colors and text styles used by every report

package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/network-capacity-planner/models"
)

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Info      = lipgloss.Color("#3B82F6") // Blue

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(Info).
		MarginTop(1)

	Label = lipgloss.NewStyle().
		Foreground(Muted)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)
)

// OutcomeBadge renders an outcome with its status symbol
func OutcomeBadge(o models.Outcome) string {
	switch o {
	case models.OutcomeSatisfied:
		return StatusOK.Render("✓ " + string(o))
	case models.OutcomePartial:
		return StatusWarning.Render("⚠ " + string(o))
	default:
		return StatusCritical.Render("✗ " + string(o))
	}
}

// SeverityStyle picks the style for a scenario warning
func SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case models.SeverityCritical:
		return StatusCritical
	case models.SeverityWarning:
		return StatusWarning
	default:
		return lipgloss.NewStyle().Foreground(Info)
	}
}
