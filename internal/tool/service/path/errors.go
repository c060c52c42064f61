package path

import (
	"errors"
	"fmt"
)

// -- Error Types --

// RootError is returned when the search root is invalid.
type RootError struct {
	Root  string
	Cause error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("invalid search root %s: %v", e.Root, e.Cause)
}
func (e *RootError) Unwrap() error      { return e.Cause }
func (e *RootError) InvalidInput() bool { return true }

// -- Sentinels --

var (
	ErrRootNotSet    = errors.New("search root not set")
	ErrNotADirectory = errors.New("not a directory")
	ErrEmptyPath     = errors.New("path is empty")
)
