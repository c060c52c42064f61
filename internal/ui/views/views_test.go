package views

import (
	"strings"
	"testing"
	"time"

	"github.com/Cyclone1070/lookout/internal/tool/search"
	"github.com/Cyclone1070/lookout/internal/ui/models"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/stretchr/testify/assert"
)

func testState() models.State {
	return models.State{Input: textinput.New(), Width: 100, Height: 20}
}

func TestFormatMatch(t *testing.T) {
	assert.Equal(t, "a/b.go", FormatMatch(search.Match{Path: "a/b.go"}))
	assert.Equal(t, "a/b.go:3:1", FormatMatch(search.Match{Path: "a/b.go", Line: 3}))
	assert.Equal(t, "a/b.go:3:8", FormatMatch(search.Match{Path: "a/b.go", Line: 3, Col: 7}))
}

func TestRenderResults(t *testing.T) {
	st := NewStyles("63", "241")

	t.Run("ShowsMatchesAndCursor", func(t *testing.T) {
		s := testState()
		s.Matches = []search.Match{{Path: "a.go", Line: 1}, {Path: "b.go"}}
		s.Cursor = 1

		out := RenderResults(s, st, 10)

		assert.Contains(t, out, "a.go")
		assert.Contains(t, out, "▸ b.go")
	})

	t.Run("ScrollsToCursor", func(t *testing.T) {
		s := testState()
		for _, p := range []string{"m0", "m1", "m2", "m3", "m4"} {
			s.Matches = append(s.Matches, search.Match{Path: p})
		}
		s.Cursor = 4

		out := RenderResults(s, st, 2)

		assert.NotContains(t, out, "m2")
		assert.Contains(t, out, "m3")
		assert.Contains(t, out, "▸ m4")
		assert.Len(t, strings.Split(out, "\n"), 2)
	})

	t.Run("UsesDisplayPaths", func(t *testing.T) {
		s := testState()
		s.Matches = []search.Match{{Path: "/repo/a.go", Line: 2}, {Path: "/repo/b.go", Line: 4}}
		s.DisplayPaths = []string{"a.go", "b.go"}

		out := RenderResults(s, st, 10)

		assert.Contains(t, out, "▸ a.go:2:1")
		assert.Contains(t, out, "b.go")
		assert.NotContains(t, out, "/repo")
	})

	t.Run("NoMatches", func(t *testing.T) {
		s := testState()
		s.Input.SetValue("zzz")
		assert.Contains(t, RenderResults(s, st, 5), "No matches")

		s.Searching = true
		assert.Empty(t, RenderResults(s, st, 5))
	})
}

func TestRenderStatus(t *testing.T) {
	st := NewStyles("63", "241")

	t.Run("Idle", func(t *testing.T) {
		assert.Contains(t, RenderStatus(testState(), st), "tab: mode")
	})

	t.Run("Capped", func(t *testing.T) {
		s := testState()
		s.Matches = make([]search.Match, 3)
		s.Outcome = "capped"
		s.Elapsed = 42 * time.Millisecond
		s.Warnings = 2
		s.Command = "rg --json x"

		out := RenderStatus(s, st)

		assert.Contains(t, out, "3 matches in 42ms (limit reached), 2 skipped")
		assert.Contains(t, out, "rg --json x")
	})

	t.Run("Failed", func(t *testing.T) {
		s := testState()
		s.Outcome = "failed"
		assert.Contains(t, RenderStatus(s, st), "search failed")
	})

	t.Run("DiagnosticWins", func(t *testing.T) {
		s := testState()
		s.Outcome = "completed"
		s.StatusMessage = "regex parse error"
		s.StatusIsError = true
		assert.Contains(t, RenderStatus(s, st), "regex parse error")
	})
}

func TestRenderPreview(t *testing.T) {
	st := NewStyles("63", "241")
	s := testState()
	assert.Empty(t, RenderPreview(s, st))

	s.PreviewPath = "/repo/blob.bin"
	s.PreviewPlaceholder = "Binary file"
	out := RenderPreview(s, st)
	assert.Contains(t, out, "/repo/blob.bin")
	assert.Contains(t, out, "Binary file")
}

func TestRenderRoot(t *testing.T) {
	s := testState()
	s.Matches = []search.Match{{Path: "a.go", Line: 2}}

	out := RenderRoot(s, NewStyles("63", "241"))

	assert.Contains(t, out, "content")
	assert.Contains(t, out, "a.go:2:1")
}
