package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Cyclone1070/lookout/internal/tool/search"
	"github.com/Cyclone1070/lookout/internal/tool/service/executor"
	"github.com/google/uuid"
)

// Options tunes a Coordinator. Zero values select defaults.
type Options struct {
	ChunkSize int
	Logger    *slog.Logger
}

// Coordinator runs at most one search session at a time and reports each session's results once.
//
// All session state is owned by the goroutine executing Run. Reader goroutines only post
// events; an event whose session is no longer current is dropped, and a retired session's
// readers stop posting as soon as it is detached. Starting a new query therefore can never
// receive output from the one it replaced.
type Coordinator struct {
	starter processStarter
	sink    Sink
	logger  *slog.Logger

	requests chan request
	events   chan event
	stopped  chan struct{}

	// Owned by the Run goroutine.
	newEngine search.Factory
	chunkSize int
	current   *session

	readers sync.WaitGroup
}

type requestKind int

const (
	requestQuery requestKind = iota
	requestCancel
	requestReconfigure
)

type request struct {
	kind      requestKind
	query     search.Query
	factory   search.Factory
	chunkSize int
}

type eventKind int

const (
	eventStdout eventKind = iota
	eventStderr
	eventExit
)

type event struct {
	session *session
	kind    eventKind
	data    []byte
	readErr error
	waitErr error
}

type session struct {
	id       string
	query    search.Query
	engine   search.Engine
	command  string
	proc     executor.Process
	started  time.Time
	detached chan struct{}
	killed   bool
	outcome  Outcome
	warnings int
}

// New creates a Coordinator. Call Run to start processing queries.
func New(starter processStarter, factory search.Factory, sink Sink, opts Options) *Coordinator {
	if starter == nil {
		panic("starter is required")
	}
	if factory == nil {
		panic("factory is required")
	}
	if sink == nil {
		panic("sink is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Coordinator{
		starter:   starter,
		sink:      sink,
		logger:    logger,
		chunkSize: opts.ChunkSize,
		requests:  make(chan request),
		events:    make(chan event, 64),
		stopped:   make(chan struct{}),
		newEngine: factory,
	}
}

// Run processes requests and process events until ctx is cancelled.
// On return the active session, if any, has been killed and all reader goroutines have exited.
func (c *Coordinator) Run(ctx context.Context) error {
	defer close(c.stopped)

	for {
		select {
		case <-ctx.Done():
			c.retire("shutdown")
			c.readers.Wait()
			return nil
		case req := <-c.requests:
			c.handle(ctx, req)
		case ev := <-c.events:
			c.dispatch(ev)
		}
	}
}

// Submit replaces the active session, if any, with a new one for q.
// The replaced session is killed and never reports a batch.
func (c *Coordinator) Submit(ctx context.Context, q search.Query) error {
	return c.send(ctx, request{kind: requestQuery, query: q})
}

// Cancel kills the active session without starting another.
func (c *Coordinator) Cancel(ctx context.Context) error {
	return c.send(ctx, request{kind: requestCancel})
}

// Reconfigure swaps the engine factory and read chunk size used for subsequent sessions.
// A chunkSize of zero keeps the current one. A running session keeps the settings it started with.
func (c *Coordinator) Reconfigure(ctx context.Context, factory search.Factory, chunkSize int) error {
	if factory == nil {
		panic("factory is required")
	}
	return c.send(ctx, request{kind: requestReconfigure, factory: factory, chunkSize: chunkSize})
}

func (c *Coordinator) send(ctx context.Context, req request) error {
	select {
	case c.requests <- req:
		return nil
	case <-c.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Coordinator) handle(ctx context.Context, req request) {
	switch req.kind {
	case requestQuery:
		c.retire("superseded")
		c.start(ctx, req.query)
	case requestCancel:
		c.retire("cancelled")
	case requestReconfigure:
		c.newEngine = req.factory
		if req.chunkSize > 0 {
			c.chunkSize = req.chunkSize
		}
	}
}

func (c *Coordinator) start(ctx context.Context, q search.Query) {
	s := &session{
		id:       uuid.NewString(),
		query:    q,
		started:  time.Now(),
		detached: make(chan struct{}),
		outcome:  OutcomeCompleted,
	}
	log := c.logger.With("session", s.id, "mode", q.Mode.String())

	engine, err := c.newEngine(q)
	if err != nil {
		log.Warn("invalid query", "error", err)
		c.fail(s, err)
		return
	}
	s.engine = engine
	argv := engine.Command()
	s.command = strings.Join(argv, " ")

	proc, stdout, stderr, err := c.starter.Start(ctx, argv, engine.Dir(), nil)
	if err != nil {
		log.Warn("failed to start search", "command", s.command, "error", err)
		c.fail(s, err)
		return
	}
	s.proc = proc
	c.current = s
	log.Debug("session started", "command", s.command, "dir", engine.Dir())

	chunkSize := c.chunkSize
	c.readers.Add(1)
	go func() {
		defer c.readers.Done()
		readErr, waitErr := executor.Stream(proc, stdout, stderr, chunkSize, executor.Handlers{
			Stdout: func(chunk []byte) bool {
				return c.post(event{session: s, kind: eventStdout, data: chunk})
			},
			Stderr: func(chunk []byte) bool {
				return c.post(event{session: s, kind: eventStderr, data: chunk})
			},
		})
		c.post(event{session: s, kind: eventExit, readErr: readErr, waitErr: waitErr})
	}()
}

// post delivers ev to the loop unless its session has been detached.
func (c *Coordinator) post(ev event) bool {
	select {
	case c.events <- ev:
		return true
	case <-ev.session.detached:
		return false
	}
}

func (c *Coordinator) dispatch(ev event) {
	s := ev.session
	if s != c.current {
		return
	}

	switch ev.kind {
	case eventStdout:
		if s.killed {
			return
		}
		feed := s.engine.Process(ev.data)
		for _, w := range feed.Warnings {
			s.warnings++
			c.logger.Debug("skipped record", "session", s.id, "error", w)
		}
		switch feed.Status {
		case search.StatusStop:
			c.logger.Debug("result cap reached", "session", s.id, "matches", len(s.engine.Results()))
			s.outcome = OutcomeCapped
			c.kill(s)
		case search.StatusFailed:
			s.outcome = OutcomeFailed
			c.diagnose(s, "decode", feed.Err.Error())
			c.kill(s)
		}

	case eventStderr:
		if msg := strings.TrimSpace(string(ev.data)); msg != "" {
			c.diagnose(s, "stderr", msg)
		}

	case eventExit:
		if ev.readErr != nil {
			c.diagnose(s, "process", ev.readErr.Error())
		}
		if !s.killed {
			// rg exits 1 when nothing matched; anything else is worth a log line only.
			if code := executor.ExitCode(ev.waitErr); code != 0 && code != 1 {
				c.logger.Warn("search exited abnormally", "session", s.id, "exit_code", code, "error", ev.waitErr)
			}
		}
		c.current = nil
		c.emit(s)
	}
}

// retire detaches the current session and then kills its process. Events already
// queued for it are dropped by dispatch.
func (c *Coordinator) retire(reason string) {
	s := c.current
	if s == nil {
		return
	}
	c.current = nil
	close(s.detached)
	if err := s.proc.Kill(); err != nil {
		c.logger.Warn("failed to kill search", "session", s.id, "error", err)
	}
	c.logger.Debug("session retired", "session", s.id, "reason", reason)
}

func (c *Coordinator) kill(s *session) {
	if s.killed {
		return
	}
	s.killed = true
	if err := s.proc.Kill(); err != nil {
		c.logger.Warn("failed to kill search", "session", s.id, "error", err)
	}
}

func (c *Coordinator) fail(s *session, err error) {
	s.outcome = OutcomeFailed
	c.diagnose(s, "launch", err.Error())
	c.emit(s)
}

func (c *Coordinator) diagnose(s *session, source, msg string) {
	c.sink.Diagnostic(Diagnostic{SessionID: s.id, Source: source, Message: msg})
}

func (c *Coordinator) emit(s *session) {
	b := Batch{
		SessionID: s.id,
		Query:     s.query,
		Command:   s.command,
		Outcome:   s.outcome,
		Warnings:  s.warnings,
		Elapsed:   time.Since(s.started),
	}
	if s.engine != nil {
		b.Matches = s.engine.Results()
	}
	c.logger.Debug("session finished", "session", s.id, "outcome", b.Outcome.String(), "matches", len(b.Matches), "elapsed", b.Elapsed)
	c.sink.Results(b)
}
