package config

import (
	"fmt"

	"github.com/Cyclone1070/lookout/internal/tool/search"
	"github.com/bmatcuk/doublestar/v4"
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Search
	if c.Search.GrepBinary == "" {
		errs = append(errs, "search.grep_binary must not be empty")
	}
	if c.Search.FindBinary == "" {
		errs = append(errs, "search.find_binary must not be empty")
	}
	if c.Search.MaxResults < 1 {
		errs = append(errs, "search.max_results must be >= 1")
	}
	if c.Search.PerFileMatches < 1 {
		errs = append(errs, "search.per_file_matches must be >= 1")
	}
	if c.Search.MaxFileSize == "" {
		errs = append(errs, "search.max_filesize must not be empty")
	}
	if c.Search.MaxRecordBytes < 1 {
		errs = append(errs, "search.max_record_bytes must be >= 1")
	}
	if c.Search.ReadChunkBytes < 1 {
		errs = append(errs, "search.read_chunk_bytes must be >= 1")
	}
	for _, pattern := range c.Search.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, (&search.InvalidExcludeError{Pattern: pattern}).Error())
		}
	}

	// Preview
	if c.Preview.MaxFileSize < 1 {
		errs = append(errs, "preview.max_file_size must be >= 1")
	}
	if c.Preview.CacheEntries < 1 {
		errs = append(errs, "preview.cache_entries must be >= 1")
	}
	if c.Preview.BinarySampleSize < 1 {
		errs = append(errs, "preview.binary_sample_size must be >= 1")
	}

	// UI
	if c.UI.DebounceMs < 0 {
		errs = append(errs, "ui.debounce_ms must be >= 0")
	}
	switch c.UI.Theme {
	case "dark", "light", "notty":
	default:
		errs = append(errs, fmt.Sprintf("ui.theme must be dark, light or notty, got %q", c.UI.Theme))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
