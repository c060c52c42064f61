package executor

import (
	"errors"
	"fmt"
)

// ErrEmptyCommand is returned when Start is called without an argv.
var ErrEmptyCommand = errors.New("command is empty")

// CommandError wraps a failure at a given stage of a command's lifecycle.
type CommandError struct {
	Cmd   string
	Cause error
	Stage string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed at %s: %v", e.Cmd, e.Stage, e.Cause)
}

func (e *CommandError) Unwrap() error { return e.Cause }
