package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/username/shift-roster/internal/roster"
)

// Cell palette carried over from the original color-coded roster.
var shiftColors = map[roster.Shift]lipgloss.Color{
	roster.ShiftGeneral: lipgloss.Color("#D4EDDA"),
	roster.ShiftMorning: lipgloss.Color("#FFF3CD"),
	roster.ShiftEvening: lipgloss.Color("#FFF3CD"),
	roster.ShiftNight:   lipgloss.Color("#D6D1F5"),
	roster.ShiftOff:     lipgloss.Color("#F8D7DA"),
	roster.ShiftHoliday: lipgloss.Color("#D1ECF1"),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	employeeStyle = lipgloss.NewStyle().
			Width(24)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#44AA44"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Reverse(true)
)

// cellStyle renders one grid cell with the shift's background color
func cellStyle(shift roster.Shift, selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Width(cellWidth).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color("#000000"))

	if color, ok := shiftColors[shift]; ok {
		style = style.Background(color)
	}
	if selected {
		style = style.Bold(true).Reverse(true)
	}
	return style
}
