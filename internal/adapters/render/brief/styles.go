package brief

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	fieldKey   lipgloss.Style
	empty      lipgloss.Style
	okCount    lipgloss.Style
	failCount  lipgloss.Style
	okMark     lipgloss.Style
	failMark   lipgloss.Style
	recipient  lipgloss.Style
	summaryRow lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		fieldKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		empty:      lipgloss.NewStyle().Faint(true),
		okCount:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		failCount:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		okMark:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		failMark:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		recipient:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		summaryRow: lipgloss.NewStyle().MarginTop(1),
	}
}
