package views

import (
	"github.com/Cyclone1070/lookout/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderPreview renders the preview pane for the selected match
func RenderPreview(s models.State, st *Styles) string {
	if s.PreviewPath == "" {
		return ""
	}
	body := s.Preview.View()
	if s.PreviewPlaceholder != "" {
		body = st.Dim.Render(s.PreviewPlaceholder)
	}
	return st.PreviewBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		st.PreviewHead.Render(s.PreviewPath),
		body,
	))
}
