package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/lookout/internal/tool/search"
	"github.com/Cyclone1070/lookout/internal/ui/models"
)

// FormatMatch renders a match as path, path:line or path:line:col (1-based column).
func FormatMatch(m search.Match) string {
	if m.Line == 0 {
		return m.Path
	}
	return fmt.Sprintf("%s:%d:%d", m.Path, m.Line, m.Col+1)
}

// RenderResults renders at most height matches, scrolled so the cursor stays visible
func RenderResults(s models.State, st *Styles, height int) string {
	if len(s.Matches) == 0 {
		if s.Searching || s.Input.Value() == "" {
			return ""
		}
		return st.Dim.Render("  No matches")
	}
	if height < 1 {
		height = 1
	}

	start := 0
	if s.Cursor >= height {
		start = s.Cursor - height + 1
	}
	end := min(len(s.Matches), start+height)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		m := s.Display(i)
		if i == s.Cursor {
			lines = append(lines, st.Selected.Render("▸ "+FormatMatch(m)))
			continue
		}
		if m.Line == 0 {
			lines = append(lines, st.Result.Render(m.Path))
			continue
		}
		loc := strings.TrimPrefix(FormatMatch(m), m.Path)
		lines = append(lines, st.Result.Render(m.Path+st.Location.Render(loc)))
	}
	return strings.Join(lines, "\n")
}
