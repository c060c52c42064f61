package fs

import (
	"errors"
	"fmt"
	"os"
)

// -- Errors --

// ReadError wraps a failure to read a previewed file.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Cause)
}
func (e *ReadError) Unwrap() error { return e.Cause }

// FileMissing reports whether the file does not exist.
func (e *ReadError) FileMissing() bool { return errors.Is(e.Cause, os.ErrNotExist) }

// -- Sentinels --

var (
	ErrInvalidLimit = errors.New("invalid limit")
)
