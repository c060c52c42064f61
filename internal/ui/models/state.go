package models

import (
	"time"

	"github.com/Cyclone1070/lookout/internal/tool/search"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// State is everything the views need to draw one frame.
type State struct {
	Input   textinput.Model
	Preview viewport.Model
	Spinner spinner.Model

	Mode search.Mode

	// Results of the last accepted batch.
	Matches  []search.Match
	Cursor   int
	Outcome  string
	Command  string
	Warnings int
	Elapsed  time.Duration

	// DisplayPaths holds Matches[i].Path as shown, relative to the root when inside it.
	DisplayPaths []string

	Searching bool

	// PreviewPath is the absolute path shown in the preview pane.
	PreviewPath        string
	PreviewPlaceholder string

	// Last diagnostic, cleared by the next batch.
	StatusMessage string
	StatusIsError bool

	Width  int
	Height int
}

// Selected returns the match under the cursor.
func (s State) Selected() (search.Match, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Matches) {
		return search.Match{}, false
	}
	return s.Matches[s.Cursor], true
}

// Display returns the i-th match with its path replaced by the display path.
func (s State) Display(i int) search.Match {
	m := s.Matches[i]
	if i < len(s.DisplayPaths) {
		m.Path = s.DisplayPaths[i]
	}
	return m
}
