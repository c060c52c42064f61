package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Prompt      lipgloss.Style
	Mode        lipgloss.Style
	Input       lipgloss.Style
	Result      lipgloss.Style
	Selected    lipgloss.Style
	Location    lipgloss.Style
	Dim         lipgloss.Style
	PreviewBox  lipgloss.Style
	PreviewHead lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	StatusWarn  lipgloss.Style
	StatusDone  lipgloss.Style
}

// NewStyles builds styles from the configured primary and muted colours.
func NewStyles(primary, muted string) *Styles {
	primaryColor := lipgloss.Color(primary)
	mutedColor := lipgloss.Color(muted)

	return &Styles{
		Prompt:   lipgloss.NewStyle().Foreground(primaryColor).Bold(true),
		Mode:     lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(primaryColor).Padding(0, 1),
		Input:    lipgloss.NewStyle().PaddingLeft(1),
		Result:   lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().Foreground(primaryColor).Bold(true),
		Location: lipgloss.NewStyle().Foreground(mutedColor),
		Dim:      lipgloss.NewStyle().Faint(true),
		PreviewBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(mutedColor).
			PaddingLeft(1),
		PreviewHead: lipgloss.NewStyle().Foreground(mutedColor).Italic(true),
		Status:      lipgloss.NewStyle().Foreground(mutedColor),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusDone:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
