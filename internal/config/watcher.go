package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDebounce collapses the burst of events editors produce when saving.
const DefaultReloadDebounce = 200 * time.Millisecond

// Watcher reloads configuration when a config file in the loader's directory changes.
type Watcher struct {
	loader   *Loader
	onChange func(*Config)
	debounce time.Duration
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
}

// NewWatcher watches the loader's config directory. onChange receives every successfully
// reloaded config; invalid files are logged and the previous config stays in effect.
func NewWatcher(loader *Loader, onChange func(*Config), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	dir := loader.Dir()
	if dir == "" {
		return nil, &WatchError{Dir: dir, Cause: errNoConfigDir}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &WatchError{Dir: dir, Cause: err}
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, &WatchError{Dir: dir, Cause: err}
	}

	return &Watcher{
		loader:   loader,
		onChange: onChange,
		debounce: DefaultReloadDebounce,
		logger:   logger,
		watcher:  fw,
	}, nil
}

// Run processes file events until ctx is cancelled, then closes the underlying watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-timer.C:
			pending = false
			w.reload()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	if w.loader.explicit != "" {
		return name == filepath.Base(w.loader.explicit)
	}
	return name == ConfigFile || name == ConfigFileTOML
}

func (w *Watcher) reload() {
	cfg, err := w.loader.Load()
	if err != nil {
		w.logger.Warn("config reload failed, keeping previous config", "error", err)
		return
	}
	w.logger.Info("config reloaded", "dir", w.loader.Dir())
	w.onChange(cfg)
}
