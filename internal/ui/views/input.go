package views

import (
	"github.com/Cyclone1070/lookout/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderInput renders the mode badge and query input
func RenderInput(s models.State, st *Styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		st.Mode.Render(s.Mode.String()),
		st.Input.Render(s.Input.View()),
	)
}
