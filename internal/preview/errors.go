package preview

import (
	"errors"
	"fmt"
)

// ErrNoEditor is returned when no editor command could be determined.
var ErrNoEditor = errors.New("no editor configured")

// OpenError is returned when the editor could not be launched.
type OpenError struct {
	Path  string
	Cause error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open %s: %v", e.Path, e.Cause)
}
func (e *OpenError) Unwrap() error { return e.Cause }
