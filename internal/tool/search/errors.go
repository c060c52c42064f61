package search

import (
	"fmt"
	"unicode/utf8"
)

// QueryRequiredError is returned when the query text is empty.
type QueryRequiredError struct{}

func (e *QueryRequiredError) Error() string { return "query is required" }

func (e *QueryRequiredError) InvalidInput() bool { return true }

// UnknownModeError is returned for a mode name or value that has no engine.
type UnknownModeError struct {
	Value string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("unknown search mode: %q", e.Value)
}

func (e *UnknownModeError) InvalidInput() bool { return true }

// RelativeRootError is returned when the search root is not an absolute path.
type RelativeRootError struct {
	Root string
}

func (e *RelativeRootError) Error() string {
	return fmt.Sprintf("search root must be absolute: %q", e.Root)
}

func (e *RelativeRootError) InvalidInput() bool { return true }

// InvalidExcludeError is returned when an exclude glob does not parse.
type InvalidExcludeError struct {
	Pattern string
}

func (e *InvalidExcludeError) Error() string {
	return fmt.Sprintf("invalid exclude pattern: %q", e.Pattern)
}

func (e *InvalidExcludeError) InvalidInput() bool { return true }

// RecordTooLargeError is returned when an unterminated record grows past the decoder limit.
type RecordTooLargeError struct {
	Size  int
	Limit int
}

func (e *RecordTooLargeError) Error() string {
	return fmt.Sprintf("record of %d bytes exceeds limit of %d bytes", e.Size, e.Limit)
}

// RecordDecodeError describes one output line that could not be parsed.
// It is a warning: the line is skipped and decoding continues.
type RecordDecodeError struct {
	Record string
	Cause  error
}

func (e *RecordDecodeError) Error() string {
	return fmt.Sprintf("failed to decode record %q: %v", truncate(e.Record, 80), e.Cause)
}

func (e *RecordDecodeError) Unwrap() error { return e.Cause }

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
