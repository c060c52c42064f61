package config

import (
	"time"

	"github.com/Cyclone1070/lookout/internal/tool/search"
)

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile or environment.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
// On a live reload only the search section is applied; preview and ui settings take
// effect on the next start.
type Config struct {
	Search  SearchConfig  `json:"search" toml:"search"`
	Preview PreviewConfig `json:"preview" toml:"preview"`
	UI      UIConfig      `json:"ui" toml:"ui"`
}

type SearchConfig struct {
	GrepBinary     string   `json:"grep_binary" toml:"grep_binary"`           // Default: "rg"
	FindBinary     string   `json:"find_binary" toml:"find_binary"`           // Default: "fd"
	MaxResults     int      `json:"max_results" toml:"max_results"`           // Default: 20 (soft cap)
	PerFileMatches int      `json:"per_file_matches" toml:"per_file_matches"` // Default: 5
	MaxFileSize    string   `json:"max_filesize" toml:"max_filesize"`         // Default: "1M"
	MaxRecordBytes int      `json:"max_record_bytes" toml:"max_record_bytes"` // Default: 10 * 1024 * 1024
	ReadChunkBytes int      `json:"read_chunk_bytes" toml:"read_chunk_bytes"` // Default: 32 * 1024
	Exclude        []string `json:"exclude" toml:"exclude"`
}

type PreviewConfig struct {
	MaxFileSize      int64 `json:"max_file_size" toml:"max_file_size"`           // Default: 10 * 1024 * 1024
	CacheEntries     int   `json:"cache_entries" toml:"cache_entries"`           // Default: 64
	BinarySampleSize int   `json:"binary_sample_size" toml:"binary_sample_size"` // Default: 8000
}

type UIConfig struct {
	DebounceMs   int    `json:"debounce_ms" toml:"debounce_ms"`     // Default: 120
	ColorPrimary string `json:"color_primary" toml:"color_primary"` // Default: "63"
	ColorMuted   string `json:"color_muted" toml:"color_muted"`     // Default: "241"
	Theme        string `json:"theme" toml:"theme"`                 // Default: "dark"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			GrepBinary:     "rg",
			FindBinary:     "fd",
			MaxResults:     20,
			PerFileMatches: 5,
			MaxFileSize:    "1M",
			MaxRecordBytes: 10 * 1024 * 1024,
			ReadChunkBytes: 32 * 1024,
			Exclude:        []string{},
		},
		Preview: PreviewConfig{
			MaxFileSize:      10 * 1024 * 1024,
			CacheEntries:     64,
			BinarySampleSize: 8000,
		},
		UI: UIConfig{
			DebounceMs:   120,
			ColorPrimary: "63",
			ColorMuted:   "241",
			Theme:        "dark",
		},
	}
}

// SearchOptions maps the search section onto engine options.
func (c *Config) SearchOptions() search.Options {
	return search.Options{
		GrepBinary:     c.Search.GrepBinary,
		FindBinary:     c.Search.FindBinary,
		MaxResults:     c.Search.MaxResults,
		PerFileMatches: c.Search.PerFileMatches,
		MaxFileSize:    c.Search.MaxFileSize,
		MaxRecordBytes: c.Search.MaxRecordBytes,
		Exclude:        append([]string(nil), c.Search.Exclude...),
	}
}

// Debounce is the UI keystroke debounce interval.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.UI.DebounceMs) * time.Millisecond
}
