package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/Cyclone1070/lookout/internal/preview"
	"github.com/Cyclone1070/lookout/internal/session"
	"github.com/Cyclone1070/lookout/internal/tool/search"
)

// maxLineBytes bounds a single request line.
const maxLineBytes = 1024 * 1024

// Searcher is the part of the session coordinator the server drives.
type Searcher interface {
	Submit(ctx context.Context, q search.Query) error
	Cancel(ctx context.Context) error
}

// Previewer renders files for preview replies.
type Previewer interface {
	Resolve(file string) (string, error)
	Read(file string) preview.Preview
}

// Opener opens a selected location in an editor.
type Opener interface {
	Open(ctx context.Context, path string, m search.Match) error
}

// Options configures a Server.
type Options struct {
	Root        string
	DefaultMode search.Mode
	// Opener is optional; without it select only resolves the location.
	Opener Opener
	Logger *slog.Logger
}

// Server speaks a JSON-lines protocol: one Message per input line, one Reply per output line.
// It is also the session.Sink of the coordinator it drives, so batches and diagnostics are
// written to the same stream as request replies.
type Server struct {
	previews Previewer
	opts     Options
	logger   *slog.Logger

	mu  sync.Mutex
	enc *json.Encoder

	routes map[string]route
}

var _ session.Sink = (*Server)(nil)

// New creates a server writing replies to w.
func New(w io.Writer, previews Previewer, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		previews: previews,
		opts:     opts,
		logger:   logger,
		enc:      json.NewEncoder(w),
	}
}

// Serve reads requests from r until EOF or ctx is cancelled. Malformed lines produce
// error replies and never stop the loop.
func (s *Server) Serve(ctx context.Context, r io.Reader, searcher Searcher) error {
	s.routes = map[string]route{
		TypeList:    typed(s.listHandler(searcher)),
		TypePreview: typed(s.preview),
		TypeSelect:  typed(s.selectLocation),
		TypeCancel: func(ctx context.Context, _ string, _ map[string]any) (*Reply, error) {
			return nil, searcher.Cancel(ctx)
		},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		s.handleLine(ctx, line)
	}
	return scanner.Err()
}

func (s *Server) handleLine(ctx context.Context, line []byte) {
	var msg Message
	if err := json.Unmarshal(line, &msg); err != nil {
		s.replyError("request", err)
		return
	}

	handler, ok := s.routes[msg.Type]
	if !ok {
		s.replyError("request", &UnknownTypeError{Type: msg.Type})
		return
	}

	reply, err := handler(ctx, msg.Type, msg.Data)
	if err != nil {
		s.logger.Debug("request failed", "type", msg.Type, "error", err)
		s.replyError(msg.Type, err)
		return
	}
	if reply != nil {
		s.write(*reply)
	}
}

func (s *Server) listHandler(searcher Searcher) handlerFunc[ListInput] {
	return func(ctx context.Context, in ListInput) (*Reply, error) {
		mode := s.opts.DefaultMode
		if in.Mode != "" {
			mode, _ = search.ParseMode(in.Mode)
		}
		if in.Search == "" {
			if err := searcher.Cancel(ctx); err != nil {
				return nil, err
			}
			return &Reply{Type: TypeList, Data: ListOutput{
				Mode:    mode.String(),
				Matches: []search.Match{},
				Outcome: session.OutcomeCompleted.String(),
			}}, nil
		}
		q := search.Query{Mode: mode, Text: in.Search, Root: s.opts.Root}
		// The batch arrives later through Results.
		return nil, searcher.Submit(ctx, q)
	}
}

func (s *Server) preview(_ context.Context, in PreviewInput) (*Reply, error) {
	p := s.previews.Read(in.File)
	return &Reply{Type: TypePreview, Data: PreviewOutput{
		File:        in.File,
		Code:        p.Code,
		Theme:       p.Theme,
		Placeholder: p.Placeholder,
	}}, nil
}

func (s *Server) selectLocation(ctx context.Context, in SelectInput) (*Reply, error) {
	abs, err := s.previews.Resolve(in.File)
	if err != nil {
		return nil, err
	}
	out := SelectOutput{Path: abs, Line: in.Line, Column: in.Column}
	if s.opts.Opener != nil {
		m := search.Match{Path: in.File, Line: uint(in.Line), Col: uint(in.Column)}
		if err := s.opts.Opener.Open(ctx, abs, m); err != nil {
			return nil, err
		}
		out.Opened = true
	}
	return &Reply{Type: TypeSelect, Data: out}, nil
}

// Results implements session.Sink.
func (s *Server) Results(b session.Batch) {
	s.write(Reply{Type: TypeList, Data: NewListOutput(b)})
}

// Diagnostic implements session.Sink.
func (s *Server) Diagnostic(d session.Diagnostic) {
	s.write(Reply{Type: TypeError, Data: ErrorOutput{
		Message: d.Message,
		Source:  d.Source,
		Session: d.SessionID,
	}})
}

func (s *Server) replyError(source string, err error) {
	s.write(Reply{Type: TypeError, Data: ErrorOutput{
		Message: err.Error(),
		Source:  source,
	}})
}

func (s *Server) write(r Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(r); err != nil {
		s.logger.Warn("failed to write reply", "type", r.Type, "error", err)
	}
}
