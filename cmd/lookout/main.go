// Package main provides lookout, an interactive fuzzy finder over file contents and file names.
// It drives ripgrep and fd, keeps at most one search running, and previews the selected file.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// Version is set at build time.
var Version = "dev"

func newApp() *cli.App {
	return &cli.App{
		Name:                   "lookout",
		Usage:                  "Search file contents and names as you type",
		Version:                Version,
		UseShortOptionHandling: true,
		ArgsUsage:              "[query]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Directory to search (default: current directory)",
			},
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "Search mode: content, regex, files or global",
				Value:   "content",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: ~/.config/lookout/config.json or config.toml)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error or off",
				Value: "info",
			},
			&cli.IntFlag{
				Name:  "max-results",
				Usage: "Stop a search once more than this many matches are collected (overrides config)",
			},
			&cli.StringFlag{
				Name:  "editor",
				Usage: "Editor used to open the selected match (default: $VISUAL, $EDITOR, vi)",
			},
			&cli.BoolFlag{
				Name:  "print",
				Usage: "Print the selected location instead of opening it",
			},
		},
		Action: tuiCommand,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Speak the JSON-lines protocol on stdin/stdout",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open selected locations in the editor",
					},
				},
			},
			{
				Name:      "query",
				Usage:     "Run one search and print its results",
				ArgsUsage: "<text>",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format: json or plain",
						Value: "json",
					},
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
