package ui

import (
	"context"
	"sync"

	"github.com/Cyclone1070/lookout/internal/tool/search"
	tea "github.com/charmbracelet/bubbletea"
)

// requestSender delivers Submit and Cancel calls to the searcher in the order Update
// issued them. Bubble Tea runs each command on its own goroutine, so a call that
// arrives after a newer one has already been delivered is dropped.
type requestSender struct {
	searcher Searcher

	// issued is only touched from Update.
	issued uint64

	mu        sync.Mutex
	delivered uint64
}

func newRequestSender(searcher Searcher) *requestSender {
	return &requestSender{searcher: searcher}
}

func (s *requestSender) submit(ctx context.Context, q search.Query) tea.Cmd {
	return s.issue(func() error { return s.searcher.Submit(ctx, q) })
}

func (s *requestSender) cancel(ctx context.Context) tea.Cmd {
	return s.issue(func() error { return s.searcher.Cancel(ctx) })
}

func (s *requestSender) issue(call func() error) tea.Cmd {
	s.issued++
	seq := s.issued
	return func() tea.Msg {
		s.mu.Lock()
		defer s.mu.Unlock()
		if seq < s.delivered {
			return nil
		}
		s.delivered = seq
		if err := call(); err != nil {
			return requestErrMsg{err: err}
		}
		return nil
	}
}
