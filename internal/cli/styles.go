package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the terminal styles used by command output
type Styles struct {
	Title      lipgloss.Style
	Day        lipgloss.Style
	Active     lipgloss.Style
	Muted      lipgloss.Style
	Registered lipgloss.Style
	Duration   lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
}

// DefaultStyles returns the default palette
func DefaultStyles() Styles {
	primary := lipgloss.Color("99")   // Purple
	secondary := lipgloss.Color("39") // Cyan
	muted := lipgloss.Color("240")    // Gray
	success := lipgloss.Color("82")   // Green
	warning := lipgloss.Color("214")  // Orange

	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(primary),
		Day:        lipgloss.NewStyle().Bold(true).Foreground(secondary),
		Active:     lipgloss.NewStyle().Foreground(success),
		Muted:      lipgloss.NewStyle().Foreground(muted),
		Registered: lipgloss.NewStyle().Foreground(muted).Italic(true),
		Duration:   lipgloss.NewStyle().Foreground(secondary),
		Success:    lipgloss.NewStyle().Foreground(success),
		Warning:    lipgloss.NewStyle().Foreground(warning),
	}
}

// row lays out a label and a right-aligned value within width columns
func row(label, value string, width int) string {
	gap := width - lipgloss.Width(label) - lipgloss.Width(value)
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value
}
