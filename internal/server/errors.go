package server

import "fmt"

// UnknownTypeError is returned for messages with an unrecognised type.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown message type: %q", e.Type)
}

func (e *UnknownTypeError) InvalidInput() bool { return true }

// MissingFieldError is returned when a required field is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *MissingFieldError) InvalidInput() bool { return true }

// NegativeFieldError is returned when a position field is negative.
type NegativeFieldError struct {
	Field string
	Value int
}

func (e *NegativeFieldError) Error() string {
	return fmt.Sprintf("%s must be >= 0, got %d", e.Field, e.Value)
}

func (e *NegativeFieldError) InvalidInput() bool { return true }

// DecodeError wraps a malformed request.
type DecodeError struct {
	Type  string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid %s request: %v", e.Type, e.Cause)
}

func (e *DecodeError) Unwrap() error      { return e.Cause }
func (e *DecodeError) InvalidInput() bool { return true }
