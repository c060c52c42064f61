package ui

import (
	"context"
	"time"

	"github.com/Cyclone1070/lookout/internal/preview"
	"github.com/Cyclone1070/lookout/internal/session"
	"github.com/Cyclone1070/lookout/internal/tool/search"
	"github.com/Cyclone1070/lookout/internal/ui/views"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Searcher is the part of the session coordinator the UI drives.
type Searcher interface {
	Submit(ctx context.Context, q search.Query) error
	Cancel(ctx context.Context) error
}

// Previewer renders the file behind the selected match.
type Previewer interface {
	Resolve(file string) (string, error)
	Read(file string) preview.Preview
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// DefaultSpinner is the spinner shown while a search runs.
func DefaultSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Dot))
}

// Options configures the UI.
type Options struct {
	Root     string
	Mode     search.Mode
	Query    string
	Debounce time.Duration
}

// Selection is the match the user picked, with its path made absolute.
type Selection struct {
	Match search.Match
	Path  string
}

// UI implements session.Sink using Bubble Tea
type UI struct {
	previews Previewer
	styles   *views.Styles
	spinner  SpinnerFactory
	opts     Options

	// Coordinator -> UI channels
	batchChan chan session.Batch
	diagChan  chan session.Diagnostic

	// Closed when the program exits so the coordinator never blocks on a dead UI.
	done chan struct{}
}

var _ session.Sink = (*UI)(nil)

// NewUI creates a new Bubble Tea UI
func NewUI(previews Previewer, styles *views.Styles, spinnerFactory SpinnerFactory, opts Options) *UI {
	if spinnerFactory == nil {
		spinnerFactory = DefaultSpinner
	}
	return &UI{
		previews:  previews,
		styles:    styles,
		spinner:   spinnerFactory,
		opts:      opts,
		batchChan: make(chan session.Batch, 4),
		diagChan:  make(chan session.Diagnostic, 16),
		done:      make(chan struct{}),
	}
}

// Start runs the program until the user quits. It returns the selected match, or nil when
// the user quit without choosing one.
func (u *UI) Start(ctx context.Context, searcher Searcher) (*Selection, error) {
	defer close(u.done)

	model := newBubbleTeaModel(ctx, searcher, u.previews, u.styles, u.spinner, u.batchChan, u.diagChan, u.opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := program.Run()
	if err != nil {
		return nil, err
	}
	if m, ok := final.(BubbleTeaModel); ok {
		return m.selection, nil
	}
	return nil, nil
}

// Results delivers a batch to the program. It blocks until the program takes it or exits.
func (u *UI) Results(b session.Batch) {
	select {
	case u.batchChan <- b:
	case <-u.done:
	}
}

// Diagnostic sends a diagnostic to the status bar
func (u *UI) Diagnostic(d session.Diagnostic) {
	select {
	case u.diagChan <- d:
	default:
		// Drop if channel is full
	}
}
