package ui

import (
	"context"
	"time"

	"github.com/Cyclone1070/lookout/internal/preview"
	"github.com/Cyclone1070/lookout/internal/session"
	"github.com/Cyclone1070/lookout/internal/tool/search"
	pathsvc "github.com/Cyclone1070/lookout/internal/tool/service/path"
	"github.com/Cyclone1070/lookout/internal/ui/models"
	"github.com/Cyclone1070/lookout/internal/ui/views"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state  models.State
	styles *views.Styles

	// Dependencies
	ctx      context.Context
	requests *requestSender
	previews Previewer
	paths    *pathsvc.Resolver

	root     string
	debounce time.Duration

	// seq identifies the latest keystroke; only its debounce tick submits.
	seq int
	// submitted is the query whose batch the results pane is waiting for.
	submitted search.Query

	// Coordinator -> UI channels
	batchChan <-chan session.Batch
	diagChan  <-chan session.Diagnostic

	selection *Selection
}

// Internal messages
type debounceMsg struct{ seq int }
type batchMsg session.Batch
type diagnosticMsg session.Diagnostic
type requestErrMsg struct{ err error }
type previewMsg struct {
	file    string
	preview preview.Preview
}

// newBubbleTeaModel creates a new Bubble Tea model
func newBubbleTeaModel(
	ctx context.Context,
	searcher Searcher,
	previews Previewer,
	styles *views.Styles,
	spinnerFactory SpinnerFactory,
	batchChan <-chan session.Batch,
	diagChan <-chan session.Diagnostic,
	opts Options,
) BubbleTeaModel {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.Prompt = "› "
	ti.SetValue(opts.Query)
	ti.Focus()

	return BubbleTeaModel{
		state: models.State{
			Input:   ti,
			Preview: viewport.New(80, 20),
			Spinner: spinnerFactory(),
			Mode:    opts.Mode,
		},
		styles:    styles,
		ctx:       ctx,
		requests:  newRequestSender(searcher),
		previews:  previews,
		paths:     pathsvc.NewResolver(opts.Root),
		root:      opts.Root,
		debounce:  opts.Debounce,
		batchChan: batchChan,
		diagChan:  diagChan,
	}
}

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		listenForBatches(m.batchChan),
		listenForDiagnostics(m.diagChan),
	}
	if m.state.Input.Value() != "" {
		cmds = append(cmds, func() tea.Msg { return debounceMsg{seq: m.seq} })
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.Preview.Width = max(1, msg.Width-views.ResultsWidth(msg.Width)-2)
		m.state.Preview.Height = max(1, views.BodyHeight(msg.Height)-1)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case debounceMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		return m.search()

	case batchMsg:
		return m.acceptBatch(session.Batch(msg))

	case diagnosticMsg:
		m.state.StatusMessage = msg.Message
		m.state.StatusIsError = msg.Source == "launch" || msg.Source == "decode"
		return m, listenForDiagnostics(m.diagChan)

	case requestErrMsg:
		m.state.Searching = false
		m.state.StatusMessage = msg.err.Error()
		m.state.StatusIsError = true
		return m, nil

	case previewMsg:
		if sel, ok := m.state.Selected(); !ok || sel.Path != msg.file {
			return m, nil
		}
		m.state.PreviewPath = msg.preview.Path
		m.state.PreviewPlaceholder = msg.preview.Placeholder
		m.state.Preview.SetContent(msg.preview.Rendered)
		m.state.Preview.GotoTop()
		if sel, _ := m.state.Selected(); sel.Line > 0 {
			m.state.Preview.SetYOffset(int(sel.Line) - 1 - m.state.Preview.Height/3)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		sel, ok := m.state.Selected()
		if !ok {
			return m, nil
		}
		path, err := m.previews.Resolve(sel.Path)
		if err != nil {
			m.state.StatusMessage = err.Error()
			m.state.StatusIsError = true
			return m, nil
		}
		m.selection = &Selection{Match: sel, Path: path}
		return m, tea.Quit

	case "tab":
		m.state.Mode = m.state.Mode.Next()
		return m.schedule()

	case "up", "ctrl+p", "ctrl+k":
		return m.moveCursor(-1)

	case "down", "ctrl+n", "ctrl+j":
		return m.moveCursor(1)

	case "pgup":
		m.state.Preview.HalfPageUp()
		return m, nil

	case "pgdown":
		m.state.Preview.HalfPageDown()
		return m, nil
	}

	before := m.state.Input.Value()
	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	if m.state.Input.Value() == before {
		return m, cmd
	}
	next, debounce := m.schedule()
	return next, tea.Batch(cmd, debounce)
}

// schedule starts a new debounce window; earlier pending windows become stale.
func (m BubbleTeaModel) schedule() (tea.Model, tea.Cmd) {
	m.seq++
	seq := m.seq
	if m.debounce <= 0 {
		return m, func() tea.Msg { return debounceMsg{seq: seq} }
	}
	return m, tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// search submits the current input, or cancels the running search when the input is empty.
func (m BubbleTeaModel) search() (tea.Model, tea.Cmd) {
	text := m.state.Input.Value()

	if text == "" {
		m.submitted = search.Query{}
		m.state.Searching = false
		m.state.Matches = nil
		m.state.DisplayPaths = nil
		m.state.Cursor = 0
		m.state.Outcome = ""
		m.state.PreviewPath = ""
		m.state.StatusMessage = ""
		return m, m.requests.cancel(m.ctx)
	}

	q := search.Query{Mode: m.state.Mode, Text: text, Root: m.root}
	m.submitted = q
	m.state.Searching = true
	m.state.StatusMessage = ""
	return m, tea.Batch(m.state.Spinner.Tick, m.requests.submit(m.ctx, q))
}

// acceptBatch shows b if it answers the latest submitted query.
func (m BubbleTeaModel) acceptBatch(b session.Batch) (tea.Model, tea.Cmd) {
	listen := listenForBatches(m.batchChan)
	if b.Query != m.submitted {
		return m, listen
	}

	m.state.Searching = false
	m.state.Matches = b.Matches
	m.state.DisplayPaths = m.displayPaths(b.Matches)
	m.state.Cursor = 0
	m.state.Outcome = b.Outcome.String()
	m.state.Command = b.Command
	m.state.Warnings = b.Warnings
	m.state.Elapsed = b.Elapsed
	if b.Outcome != session.OutcomeFailed {
		m.state.StatusMessage = ""
	}
	m.state.PreviewPath = ""

	return m, tea.Batch(listen, m.loadPreview())
}

// displayPaths shows paths inside the root relative to it; fd's global results are absolute.
func (m BubbleTeaModel) displayPaths(matches []search.Match) []string {
	out := make([]string, len(matches))
	for i, match := range matches {
		display, err := m.paths.Display(match.Path)
		if err != nil {
			display = match.Path
		}
		out[i] = display
	}
	return out
}

func (m BubbleTeaModel) moveCursor(delta int) (tea.Model, tea.Cmd) {
	if len(m.state.Matches) == 0 {
		return m, nil
	}
	next := min(max(m.state.Cursor+delta, 0), len(m.state.Matches)-1)
	if next == m.state.Cursor {
		return m, nil
	}
	m.state.Cursor = next
	return m, m.loadPreview()
}

// loadPreview reads the selected file off the Update goroutine.
func (m BubbleTeaModel) loadPreview() tea.Cmd {
	sel, ok := m.state.Selected()
	if !ok || m.previews == nil {
		return nil
	}
	previews := m.previews
	return func() tea.Msg {
		return previewMsg{file: sel.Path, preview: previews.Read(sel.Path)}
	}
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state, m.styles)
}

// Helper commands for listening to channels
func listenForBatches(ch <-chan session.Batch) tea.Cmd {
	return func() tea.Msg {
		return batchMsg(<-ch)
	}
}

func listenForDiagnostics(ch <-chan session.Diagnostic) tea.Cmd {
	return func() tea.Msg {
		return diagnosticMsg(<-ch)
	}
}
