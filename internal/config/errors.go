package config

import (
	"errors"
	"fmt"
)

var errNoConfigDir = errors.New("config directory is unknown")

// WatchError is returned when the config directory cannot be watched.
type WatchError struct {
	Dir   string
	Cause error
}

func (e *WatchError) Error() string {
	return fmt.Sprintf("failed to watch config directory %q: %v", e.Dir, e.Cause)
}

func (e *WatchError) Unwrap() error { return e.Cause }
