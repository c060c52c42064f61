package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "lookout"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
	// ConfigFileTOML is read when ConfigFile is absent
	ConfigFileTOML = "config.toml"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs       FileSystem
	getenv   func(string) string
	explicit string
}

// NewLoader creates a production Loader using the real filesystem and environment
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}, getenv: os.Getenv}
}

// NewLoaderWithFS creates a Loader with a custom filesystem and no environment (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs, getenv: func(string) string { return "" }}
}

// WithPath makes Load read path instead of searching ~/.config/lookout.
// A missing explicit file is an error.
func (l *Loader) WithPath(path string) *Loader {
	cp := *l
	cp.explicit = path
	return &cp
}

// WithEnv replaces the environment lookup used for overrides.
func (l *Loader) WithEnv(getenv func(string) string) *Loader {
	cp := *l
	cp.getenv = getenv
	return &cp
}

// Dir returns the directory searched for config files, or "" if the home directory is unknown.
func (l *Loader) Dir() string {
	if l.explicit != "" {
		return filepath.Dir(l.explicit)
	}
	homeDir, err := l.fs.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", ConfigDir)
}

// Load reads configuration from ~/.config/lookout/config.json, or config.toml when the
// JSON file is absent, and merges it with defaults. Environment overrides apply last.
// Returns default config if no dotfile exists.
// Returns error only for parse errors, permission issues, or validation failures.
//
// NOTE: File contents are unmarshalled directly over the default configuration.
// This allows explicit zero values (e.g., 0, "") in the config file to override defaults.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := l.overlayFile(cfg); err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg, l.getenv); err != nil {
		return nil, err
	}

	// Validate the merged configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) overlayFile(cfg *Config) error {
	if l.explicit != "" {
		data, err := l.fs.ReadFile(l.explicit)
		if err != nil {
			return err
		}
		return decode(l.explicit, data, cfg)
	}

	dir := l.Dir()
	if dir == "" {
		return nil // Use defaults if can't get home dir
	}

	for _, name := range []string{ConfigFile, ConfigFileTOML} {
		path := filepath.Join(dir, name)
		data, err := l.fs.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err // Return error for permission issues
		}
		return decode(path, data, cfg)
	}
	return nil // Use defaults if no file exists
}

// decode parses data over cfg, choosing the format from the file extension.
func decode(path string, data []byte, cfg *Config) error {
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}
