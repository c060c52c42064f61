package views

import (
	"github.com/Cyclone1070/lookout/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// chromeLines is the number of rows taken by the input and status bars.
const chromeLines = 2

// BodyHeight returns the rows available to the results and preview panes.
func BodyHeight(height int) int {
	return max(1, height-chromeLines)
}

// ResultsWidth returns the width of the results column; the preview takes the rest.
func ResultsWidth(width int) int {
	if width <= 0 {
		return 40
	}
	return max(20, width*2/5)
}

// RenderRoot renders the complete UI layout
func RenderRoot(s models.State, st *Styles) string {
	bodyHeight := BodyHeight(s.Height)
	results := lipgloss.NewStyle().
		Width(ResultsWidth(s.Width)).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(RenderResults(s, st, bodyHeight))

	body := results
	if p := RenderPreview(s, st); p != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, results,
			lipgloss.NewStyle().MaxHeight(bodyHeight).Render(p))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderInput(s, st),
		body,
		RenderStatus(s, st),
	)
}
