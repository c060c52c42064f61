package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Cyclone1070/lookout/internal/preview"
	"github.com/Cyclone1070/lookout/internal/tool/search"
	"github.com/Cyclone1070/lookout/internal/ui"
	"github.com/Cyclone1070/lookout/internal/ui/views"
	"github.com/urfave/cli/v2"
)

func tuiCommand(c *cli.Context) error {
	deps, err := setup(c)
	if err != nil {
		return err
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	previews, err := newPreviewService(deps, deps.Config.UI.Theme)
	if err != nil {
		return err
	}

	userInterface := ui.NewUI(
		previews,
		views.NewStyles(deps.Config.UI.ColorPrimary, deps.Config.UI.ColorMuted),
		ui.DefaultSpinner,
		ui.Options{
			Root:     deps.Root,
			Mode:     deps.Mode,
			Query:    strings.Join(c.Args().Slice(), " "),
			Debounce: deps.Config.Debounce(),
		},
	)
	coord := newCoordinator(deps, userInterface)
	stopCoordinator := runCoordinator(ctx, deps, coord)

	deps.Logger.Info("lookout started", "root", deps.Root, "mode", deps.Mode.String())
	sel, err := userInterface.Start(ctx, coord)
	stopCoordinator()
	if err != nil {
		return err
	}
	if sel == nil {
		return nil
	}

	if c.Bool("print") {
		fmt.Println(views.FormatMatch(withPath(sel)))
		return nil
	}
	return preview.NewOpener(c.String("editor")).Open(context.WithoutCancel(ctx), sel.Path, sel.Match)
}

// withPath returns the selected match with its absolute path.
func withPath(sel *ui.Selection) search.Match {
	m := sel.Match
	m.Path = sel.Path
	return m
}
