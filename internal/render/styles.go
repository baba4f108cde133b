package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

var (
	colorPrimary = lipgloss.Color("#6C63FF")
	colorMuted   = lipgloss.Color("#666666")
	colorSuccess = lipgloss.Color("#2ECC71")
	colorWarning = lipgloss.Color("#F39C12")
	colorError   = lipgloss.Color("#E74C3C")
	colorSubtle  = lipgloss.Color("#414868")
	colorIntake  = lipgloss.Color("#7AA2F7")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	todayStyle = lipgloss.NewStyle().
			Underline(true)
)

func statusStyle(s service.ConsistencyStatus) lipgloss.Style {
	switch s {
	case service.StatusGreen:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case service.StatusYellow:
		return lipgloss.NewStyle().Foreground(colorWarning)
	case service.StatusRed:
		return lipgloss.NewStyle().Foreground(colorError)
	default:
		return lipgloss.NewStyle().Foreground(colorSubtle)
	}
}

// Status renders a status name in its colour.
func Status(s service.ConsistencyStatus) string {
	return statusStyle(s).Render(string(s))
}
