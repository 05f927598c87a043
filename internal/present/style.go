package present

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used in text output.
type Styles struct {
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Warning lipgloss.Style
}

// DefaultStyles returns the styles for terminal output.
func DefaultStyles() Styles {
	return Styles{
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// PlainStyles returns unstyled output, for redirected streams.
func PlainStyles() Styles {
	return Styles{
		Heading: lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
	}
}
