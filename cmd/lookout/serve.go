package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/Cyclone1070/lookout/internal/preview"
	"github.com/Cyclone1070/lookout/internal/server"
	"github.com/urfave/cli/v2"
)

func serveCommand(c *cli.Context) error {
	deps, err := setup(c)
	if err != nil {
		return err
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Clients highlight code themselves, so previews carry raw text.
	previews, err := newPreviewService(deps, preview.ThemeNoTTY)
	if err != nil {
		return err
	}

	opts := server.Options{
		Root:        deps.Root,
		DefaultMode: deps.Mode,
		Logger:      deps.Logger,
	}
	if c.Bool("open") {
		opts.Opener = preview.NewOpener(c.String("editor")).Headless()
	}
	srv := server.New(c.App.Writer, previews, opts)

	coord := newCoordinator(deps, srv)
	stopCoordinator := runCoordinator(ctx, deps, coord)
	defer stopCoordinator()

	deps.Logger.Info("serving", "root", deps.Root)
	return srv.Serve(ctx, c.App.Reader, coord)
}
