package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Cyclone1070/lookout/internal/config"
	"github.com/Cyclone1070/lookout/internal/preview"
	"github.com/Cyclone1070/lookout/internal/session"
	"github.com/Cyclone1070/lookout/internal/tool/search"
	"github.com/Cyclone1070/lookout/internal/tool/service/executor"
	"github.com/Cyclone1070/lookout/internal/tool/service/fs"
	pathsvc "github.com/Cyclone1070/lookout/internal/tool/service/path"
	"github.com/urfave/cli/v2"
)

// Dependencies holds the components shared by every command.
type Dependencies struct {
	Config *config.Config
	Loader *config.Loader
	Root   string
	Mode   search.Mode
	Logger *slog.Logger

	// overrides re-applies command-line flags after a config reload.
	overrides func(*config.Config)
	closeLog  func() error
}

// Close releases the log file.
func (d *Dependencies) Close() error {
	if d.closeLog == nil {
		return nil
	}
	return d.closeLog()
}

func setup(c *cli.Context) (*Dependencies, error) {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	loader := config.NewLoader()
	if p := c.String("config"); p != "" {
		loader = loader.WithPath(p)
	}

	cfg, err := loader.Load()
	if err != nil {
		if c.String("config") != "" {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}

	overrides := func(cfg *config.Config) {
		if c.IsSet("max-results") {
			cfg.Search.MaxResults = c.Int("max-results")
		}
	}
	overrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rootFlag := c.String("root")
	if rootFlag == "" {
		rootFlag = "."
	}
	root, err := pathsvc.CanonicaliseRoot(rootFlag)
	if err != nil {
		return nil, err
	}

	mode, err := search.ParseMode(c.String("mode"))
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := newLogger(c.String("log-level"))
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		Config:    cfg,
		Loader:    loader,
		Root:      root,
		Mode:      mode,
		Logger:    logger,
		overrides: overrides,
		closeLog:  closeLog,
	}, nil
}

// newLogger writes JSON logs to the state directory, since the terminal belongs to the UI.
func newLogger(level string) (*slog.Logger, func() error, error) {
	if strings.EqualFold(level, "off") {
		return slog.New(slog.DiscardHandler), nil, nil
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	path, err := logPath()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return newJSONLogger(f, lvl), f.Close, nil
}

func newJSONLogger(w io.Writer, lvl slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func logPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "lookout", "lookout.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", "lookout", "lookout.log"), nil
}

func newCoordinator(deps *Dependencies, sink session.Sink) *session.Coordinator {
	return session.New(
		executor.NewOSStarter(),
		search.NewFactory(deps.Config.SearchOptions()),
		sink,
		session.Options{ChunkSize: deps.Config.Search.ReadChunkBytes, Logger: deps.Logger},
	)
}

func newPreviewService(deps *Dependencies, theme string) (*preview.Service, error) {
	renderer, err := preview.NewRenderer(theme, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create preview renderer: %w", err)
	}
	return preview.NewService(fs.NewOSFileSystem(), pathsvc.NewResolver(deps.Root), renderer, preview.Options{
		MaxFileSize:      deps.Config.Preview.MaxFileSize,
		CacheEntries:     deps.Config.Preview.CacheEntries,
		BinarySampleSize: deps.Config.Preview.BinarySampleSize,
		Logger:           deps.Logger,
	})
}

// runCoordinator starts coord and a config watcher feeding it. The returned function
// stops both and waits for them to exit.
func runCoordinator(ctx context.Context, deps *Dependencies, coord *session.Coordinator) func() {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = coord.Run(ctx)
	}()

	watcher, err := config.NewWatcher(deps.Loader, func(cfg *config.Config) {
		deps.overrides(cfg)
		if err := cfg.Validate(); err != nil {
			deps.Logger.Warn("ignoring reloaded config", "error", err)
			return
		}
		if err := coord.Reconfigure(ctx, search.NewFactory(cfg.SearchOptions()), cfg.Search.ReadChunkBytes); err != nil {
			deps.Logger.Debug("reconfigure skipped", "error", err)
		}
	}, deps.Logger)
	if err != nil {
		deps.Logger.Info("config reload disabled", "error", err)
	} else {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = watcher.Run(ctx)
		}()
	}

	return func() {
		cancel()
		wg.Wait()
	}
}
