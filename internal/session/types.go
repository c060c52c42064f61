package session

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/Cyclone1070/lookout/internal/tool/search"
	"github.com/Cyclone1070/lookout/internal/tool/service/executor"
)

// ErrStopped is returned by requests made after Run has returned.
var ErrStopped = errors.New("session coordinator stopped")

// Outcome is how a session that emitted a batch came to an end.
type Outcome int

const (
	// OutcomeCompleted: the process exited on its own.
	OutcomeCompleted Outcome = iota
	// OutcomeCapped: the result cap was reached and the process was killed.
	OutcomeCapped
	// OutcomeFailed: the process could not be started or its output could not be decoded.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCapped:
		return "capped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Batch is the single result report of a session.
// Command is the literal argv joined by spaces and is only meant for display.
type Batch struct {
	SessionID string
	Query     search.Query
	Command   string
	Matches   []search.Match
	Outcome   Outcome
	Warnings  int
	Elapsed   time.Duration
}

// Diagnostic is a non-fatal problem observed during a session.
type Diagnostic struct {
	SessionID string
	Source    string // "launch", "stderr", "process" or "decode"
	Message   string
}

// Sink receives session output. Calls come from the coordinator's loop goroutine, one at a time.
// A slow sink delays the next event but never reorders them.
type Sink interface {
	Results(b Batch)
	Diagnostic(d Diagnostic)
}

// processStarter launches external commands.
type processStarter interface {
	Start(ctx context.Context, command []string, dir string, env []string) (executor.Process, io.ReadCloser, io.ReadCloser, error)
}
