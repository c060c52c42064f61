package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Cyclone1070/lookout/internal/preview"
	"github.com/Cyclone1070/lookout/internal/session"
	"github.com/Cyclone1070/lookout/internal/tool/search"
	"github.com/Cyclone1070/lookout/internal/ui/views"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSearcher struct {
	submitted []search.Query
	cancels   int
	err       error
}

func (s *mockSearcher) Submit(_ context.Context, q search.Query) error {
	s.submitted = append(s.submitted, q)
	return s.err
}

func (s *mockSearcher) Cancel(context.Context) error {
	s.cancels++
	return s.err
}

type mockPreviewer struct {
	reads []string
}

func (p *mockPreviewer) Resolve(file string) (string, error) {
	if file == "" {
		return "", errors.New("empty")
	}
	return "/repo/" + file, nil
}

func (p *mockPreviewer) Read(file string) preview.Preview {
	p.reads = append(p.reads, file)
	return preview.Preview{Path: "/repo/" + file, Code: "code of " + file, Rendered: "code of " + file}
}

func mockSpinnerFactory() spinner.Model {
	return spinner.New()
}

func createTestModel() (BubbleTeaModel, *mockSearcher, *mockPreviewer) {
	searcher := &mockSearcher{}
	previews := &mockPreviewer{}
	model := newBubbleTeaModel(
		context.Background(),
		searcher,
		previews,
		views.NewStyles("63", "241"),
		mockSpinnerFactory,
		make(chan session.Batch, 1),
		make(chan session.Diagnostic, 1),
		Options{Root: "/repo", Debounce: 50 * time.Millisecond},
	)
	return model, searcher, previews
}

func update(t *testing.T, m BubbleTeaModel, msg tea.Msg) (BubbleTeaModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(BubbleTeaModel), cmd
}

func typeText(t *testing.T, m BubbleTeaModel, text string) BubbleTeaModel {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// runCmd executes cmd and any batched commands it expands to, skipping ones that block on channels or timers.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			if c == nil {
				continue
			}
			done := make(chan tea.Msg, 1)
			go func(c tea.Cmd) { done <- c() }(c)
			select {
			case m := <-done:
				out = append(out, runCmd(func() tea.Msg { return m })...)
			case <-time.After(100 * time.Millisecond):
			}
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestInit_ReturnsCommands(t *testing.T) {
	model, _, _ := createTestModel()
	assert.NotNil(t, model.Init())
}

func TestUpdate_TypingDebounces(t *testing.T) {
	model, searcher, _ := createTestModel()

	model = typeText(t, model, "foo")
	assert.Equal(t, 3, model.seq)

	// Ticks from earlier keystrokes are stale.
	model, cmd := update(t, model, debounceMsg{seq: 1})
	assert.Nil(t, cmd)
	assert.False(t, model.state.Searching)

	model, cmd = update(t, model, debounceMsg{seq: 3})
	require.NotNil(t, cmd)
	assert.True(t, model.state.Searching)
	runCmd(cmd)

	require.Len(t, searcher.submitted, 1)
	assert.Equal(t, search.Query{Mode: search.ModeContentLiteral, Text: "foo", Root: "/repo"}, searcher.submitted[0])
}

func TestUpdate_EmptyQueryCancels(t *testing.T) {
	model, searcher, _ := createTestModel()
	model = typeText(t, model, "x")
	model.state.Matches = []search.Match{{Path: "a.go"}}

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyBackspace})
	model, cmd := update(t, model, debounceMsg{seq: model.seq})
	runCmd(cmd)

	assert.Equal(t, 1, searcher.cancels)
	assert.Empty(t, searcher.submitted)
	assert.Empty(t, model.state.Matches)
	assert.False(t, model.state.Searching)
}

func TestUpdate_TabCyclesModeAndResearches(t *testing.T) {
	model, _, _ := createTestModel()
	model = typeText(t, model, "foo")
	seq := model.seq

	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, search.ModeContentLiteral.Next(), model.state.Mode)
	assert.Equal(t, seq+1, model.seq)
	assert.NotNil(t, cmd)
}

func TestUpdate_BatchForLatestQueryIsShown(t *testing.T) {
	model, _, previews := createTestModel()
	model = typeText(t, model, "foo")
	model, _ = update(t, model, debounceMsg{seq: model.seq})

	batch := session.Batch{
		Query:   model.submitted,
		Command: "rg --json foo",
		Matches: []search.Match{{Path: "a.go", Line: 3, Col: 1}, {Path: "b.go", Line: 9}},
		Outcome: session.OutcomeCapped,
		Elapsed: 12 * time.Millisecond,
	}
	model, cmd := update(t, model, batchMsg(batch))

	assert.False(t, model.state.Searching)
	assert.Len(t, model.state.Matches, 2)
	assert.Equal(t, "capped", model.state.Outcome)

	for _, msg := range runCmd(cmd) {
		model, _ = update(t, model, msg)
	}
	assert.Equal(t, []string{"a.go"}, previews.reads)
	assert.Equal(t, "/repo/a.go", model.state.PreviewPath)
}

func TestUpdate_StaleBatchIgnored(t *testing.T) {
	model, _, _ := createTestModel()
	model = typeText(t, model, "new")
	model, _ = update(t, model, debounceMsg{seq: model.seq})

	stale := session.Batch{Query: search.Query{Text: "old", Root: "/repo"}, Matches: []search.Match{{Path: "x"}}}
	model, cmd := update(t, model, batchMsg(stale))

	assert.NotNil(t, cmd, "keeps listening")
	assert.True(t, model.state.Searching)
	assert.Empty(t, model.state.Matches)
}

func TestUpdate_RequestsDeliveredOutOfOrderKeepLatest(t *testing.T) {
	model, searcher, _ := createTestModel()
	model.debounce = 0

	model = typeText(t, model, "a")
	model, first := update(t, model, debounceMsg{seq: model.seq})
	model = typeText(t, model, "b")
	model, second := update(t, model, debounceMsg{seq: model.seq})

	// Bubble Tea runs commands concurrently, so the newer one may finish first.
	runCmd(second)
	runCmd(first)

	require.Len(t, searcher.submitted, 1)
	assert.Equal(t, "ab", searcher.submitted[0].Text)

	model, _ = update(t, model, batchMsg(session.Batch{
		Query:   searcher.submitted[0],
		Matches: []search.Match{{Path: "ab.go"}},
	}))
	assert.False(t, model.state.Searching)
	assert.Len(t, model.state.Matches, 1)
}

func TestUpdate_RequestsDeliveredInOrder(t *testing.T) {
	model, searcher, _ := createTestModel()

	model = typeText(t, model, "a")
	model, first := update(t, model, debounceMsg{seq: model.seq})
	runCmd(first)
	model = typeText(t, model, "b")
	_, second := update(t, model, debounceMsg{seq: model.seq})
	runCmd(second)

	require.Len(t, searcher.submitted, 2)
	assert.Equal(t, "a", searcher.submitted[0].Text)
	assert.Equal(t, "ab", searcher.submitted[1].Text)
}

func TestUpdate_StaleSubmitAfterCancelIsDropped(t *testing.T) {
	model, searcher, _ := createTestModel()

	model = typeText(t, model, "a")
	model, submit := update(t, model, debounceMsg{seq: model.seq})
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyBackspace})
	_, cancel := update(t, model, debounceMsg{seq: model.seq})

	runCmd(cancel)
	runCmd(submit)

	assert.Equal(t, 1, searcher.cancels)
	assert.Empty(t, searcher.submitted)
}

func TestUpdate_BatchPathsShownRelativeToRoot(t *testing.T) {
	model, _, _ := createTestModel()
	model = typeText(t, model, "readme")
	model, _ = update(t, model, debounceMsg{seq: model.seq})

	model, _ = update(t, model, batchMsg(session.Batch{
		Query:   model.submitted,
		Matches: []search.Match{{Path: "/repo/docs/README.md"}, {Path: "./a.go"}, {Path: "/etc/readme"}},
	}))

	assert.Equal(t, []string{"docs/README.md", "a.go", "/etc/readme"}, model.state.DisplayPaths)
	sel, ok := model.state.Selected()
	require.True(t, ok)
	assert.Equal(t, "/repo/docs/README.md", sel.Path, "selection keeps the reported path")
}

func TestUpdate_CursorMovementLoadsPreview(t *testing.T) {
	model, _, previews := createTestModel()
	model.state.Matches = []search.Match{{Path: "a.go"}, {Path: "b.go"}}

	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, model.state.Cursor)
	for _, msg := range runCmd(cmd) {
		model, _ = update(t, model, msg)
	}
	assert.Equal(t, []string{"b.go"}, previews.reads)

	model, cmd = update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, model.state.Cursor, "clamped at the last match")
	assert.Nil(t, cmd)

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, model.state.Cursor)
}

func TestUpdate_PreviewForOtherFileIgnored(t *testing.T) {
	model, _, _ := createTestModel()
	model.state.Matches = []search.Match{{Path: "a.go"}}

	model, _ = update(t, model, previewMsg{file: "z.go", preview: preview.Preview{Path: "/repo/z.go"}})

	assert.Empty(t, model.state.PreviewPath)
}

func TestUpdate_EnterSelectsAndQuits(t *testing.T) {
	model, _, _ := createTestModel()
	model.state.Matches = []search.Match{{Path: "a.go", Line: 4, Col: 2}}

	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, model.selection)
	assert.Equal(t, Selection{Match: search.Match{Path: "a.go", Line: 4, Col: 2}, Path: "/repo/a.go"}, *model.selection)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_EnterWithoutMatchesDoesNothing(t *testing.T) {
	model, _, _ := createTestModel()

	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, model.selection)
	assert.Nil(t, cmd)
}

func TestUpdate_EscQuits(t *testing.T) {
	model, _, _ := createTestModel()

	_, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_DiagnosticShownInStatus(t *testing.T) {
	model, _, _ := createTestModel()

	model, _ = update(t, model, diagnosticMsg{Source: "launch", Message: "rg: not found"})

	assert.Equal(t, "rg: not found", model.state.StatusMessage)
	assert.True(t, model.state.StatusIsError)
}

func TestUpdate_SubmitErrorShownInStatus(t *testing.T) {
	model, searcher, _ := createTestModel()
	searcher.err = session.ErrStopped
	model = typeText(t, model, "x")

	model, cmd := update(t, model, debounceMsg{seq: model.seq})
	for _, msg := range runCmd(cmd) {
		model, _ = update(t, model, msg)
	}

	assert.False(t, model.state.Searching)
	assert.Equal(t, session.ErrStopped.Error(), model.state.StatusMessage)
}

func TestUpdate_WindowSize(t *testing.T) {
	model, _, _ := createTestModel()

	model, _ = update(t, model, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, 100, model.state.Width)
	assert.Equal(t, 30, model.state.Height)
	assert.Greater(t, model.state.Preview.Width, 0)
	assert.NotEmpty(t, model.View())
}

func TestUI_SinkDoesNotBlockAfterExit(t *testing.T) {
	u := NewUI(&mockPreviewer{}, views.NewStyles("63", "241"), mockSpinnerFactory, Options{})
	close(u.done)

	done := make(chan struct{})
	go func() {
		for range 10 {
			u.Results(session.Batch{})
			u.Diagnostic(session.Diagnostic{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sink blocked after the UI exited")
	}
}
