package views

import (
	"fmt"
	"time"

	"github.com/Cyclone1070/lookout/internal/ui/models"
)

// RenderStatus renders the status bar
func RenderStatus(s models.State, st *Styles) string {
	if s.Searching {
		return st.Status.Render(fmt.Sprintf("%s searching", s.Spinner.View()))
	}
	if s.StatusMessage != "" {
		if s.StatusIsError {
			return st.StatusError.Render("✘ " + s.StatusMessage)
		}
		return st.StatusWarn.Render(s.StatusMessage)
	}
	if s.Outcome == "" {
		return st.Status.Render("tab: mode  ↑/↓: move  enter: open  esc: quit")
	}

	summary := fmt.Sprintf("%d matches in %s", len(s.Matches), s.Elapsed.Round(time.Millisecond))
	switch s.Outcome {
	case "capped":
		summary += " (limit reached)"
	case "failed":
		return st.StatusError.Render("✘ search failed")
	}
	if s.Warnings > 0 {
		summary += fmt.Sprintf(", %d skipped", s.Warnings)
	}
	return st.StatusDone.Render("✔ "+summary) + "  " + st.Dim.Render(s.Command)
}
