package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Cyclone1070/lookout/internal/server"
	"github.com/Cyclone1070/lookout/internal/session"
	"github.com/Cyclone1070/lookout/internal/tool/search"
	"github.com/Cyclone1070/lookout/internal/ui/views"
	"github.com/urfave/cli/v2"
)

var errQueryRequired = errors.New("query text is required")

// querySink collects the single batch of a one-shot search and reports diagnostics to w.
type querySink struct {
	batches chan session.Batch
	w       io.Writer
}

func newQuerySink(w io.Writer) *querySink {
	return &querySink{batches: make(chan session.Batch, 1), w: w}
}

func (s *querySink) Results(b session.Batch) {
	select {
	case s.batches <- b:
	default:
	}
}

func (s *querySink) Diagnostic(d session.Diagnostic) {
	fmt.Fprintf(s.w, "%s: %s\n", d.Source, d.Message)
}

func queryCommand(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")
	if text == "" {
		return errQueryRequired
	}
	format := c.String("format")
	if format != "json" && format != "plain" {
		return fmt.Errorf("unknown format %q", format)
	}

	deps, err := setup(c)
	if err != nil {
		return err
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink := newQuerySink(c.App.ErrWriter)
	coord := newCoordinator(deps, sink)
	stopCoordinator := runCoordinator(ctx, deps, coord)
	defer stopCoordinator()

	if err := coord.Submit(ctx, search.Query{Mode: deps.Mode, Text: text, Root: deps.Root}); err != nil {
		return err
	}

	var batch session.Batch
	select {
	case batch = <-sink.batches:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := writeBatch(c.App.Writer, batch, format); err != nil {
		return err
	}
	if batch.Outcome == session.OutcomeFailed {
		return cli.Exit("search failed", 2)
	}
	return nil
}

func writeBatch(w io.Writer, b session.Batch, format string) error {
	if format == "plain" {
		for _, m := range b.Matches {
			if _, err := fmt.Fprintln(w, views.FormatMatch(m)); err != nil {
				return err
			}
		}
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(server.NewListOutput(b))
}
