package config

import (
	"fmt"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvGrepBinary = "LOOKOUT_GREP_BINARY"
	EnvFindBinary = "LOOKOUT_FIND_BINARY"
	EnvMaxResults = "LOOKOUT_MAX_RESULTS"
)

// LoadDotEnv loads variables from the given .env files into the process environment.
// Missing files are ignored; existing variables are never overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := godotenv.Read(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// ApplyEnv overrides cfg with LOOKOUT_* variables. Empty values are ignored.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if getenv == nil {
		return nil
	}
	if v := getenv(EnvGrepBinary); v != "" {
		cfg.Search.GrepBinary = v
	}
	if v := getenv(EnvFindBinary); v != "" {
		cfg.Search.FindBinary = v
	}
	if v := getenv(EnvMaxResults); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxResults, v, err)
		}
		cfg.Search.MaxResults = n
	}
	return nil
}
