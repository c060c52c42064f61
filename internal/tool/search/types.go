package search

import (
	"path/filepath"
	"strings"
)

// Mode selects which external tool runs a query and how the query text is interpreted.
type Mode int

const (
	ModeContentLiteral Mode = iota // rg, fixed string
	ModeContentRegex               // rg, regular expression
	ModeFilenameLocal              // fd, under the search root
	ModeFilenameGlobal             // fd, from the filesystem root
)

var modeNames = map[Mode]string{
	ModeContentLiteral: "content",
	ModeContentRegex:   "regex",
	ModeFilenameLocal:  "files",
	ModeFilenameGlobal: "global",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// IsContent reports whether the mode searches file contents rather than file names.
func (m Mode) IsContent() bool {
	return m == ModeContentLiteral || m == ModeContentRegex
}

// Next cycles through the modes in declaration order.
func (m Mode) Next() Mode {
	return (m + 1) % Mode(len(modeNames))
}

// ParseMode maps a mode name (as printed by String) back to a Mode.
// The empty string selects ModeContentLiteral.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeContentLiteral, nil
	}
	for mode, name := range modeNames {
		if strings.EqualFold(s, name) {
			return mode, nil
		}
	}
	return 0, &UnknownModeError{Value: s}
}

// Match is one decoded search hit.
// Line is 1-based and Col is a 0-based byte offset; both are 0 when not applicable.
type Match struct {
	Path string `json:"path"`
	Line uint   `json:"line"`
	Col  uint   `json:"col"`
}

// Query is one user submission. A new keystroke produces a new Query; queries are never updated.
type Query struct {
	Mode Mode   `json:"mode"`
	Text string `json:"text"`
	Root string `json:"root"`
}

// Validate checks the query can be handed to an engine.
func (q Query) Validate() error {
	if q.Text == "" {
		return &QueryRequiredError{}
	}
	if _, ok := modeNames[q.Mode]; !ok {
		return &UnknownModeError{Value: q.Mode.String()}
	}
	if !filepath.IsAbs(q.Root) {
		return &RelativeRootError{Root: q.Root}
	}
	return nil
}

// Status is the outcome of feeding one chunk of process output to an engine.
type Status int

const (
	// StatusContinue means the engine wants more output.
	StatusContinue Status = iota
	// StatusStop means the result cap was reached and the producer should be killed.
	StatusStop
	// StatusFailed means the stream cannot be decoded any further.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusContinue:
		return "continue"
	case StatusStop:
		return "stop"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Feed reports what happened while processing a chunk.
// Warnings hold per-record decode failures; those records were skipped.
// Err is set only when Status is StatusFailed.
type Feed struct {
	Status   Status
	Warnings []error
	Err      error
}

// Engine owns the command line and output decoding of one external search process.
// An Engine is used by a single session and is not safe for concurrent use.
type Engine interface {
	// Command returns the argv used to launch the search tool.
	Command() []string
	// Dir returns the working directory for the process.
	Dir() string
	// Process consumes the next chunk of stdout.
	Process(chunk []byte) Feed
	// Results returns the matches accumulated so far, in emission order.
	Results() []Match
}

// Options configures engine construction.
type Options struct {
	GrepBinary     string
	FindBinary     string
	MaxResults     int
	PerFileMatches int
	MaxFileSize    string
	MaxRecordBytes int
	Exclude        []string
}

// DefaultOptions mirrors config.DefaultConfig's search section.
func DefaultOptions() Options {
	return Options{
		GrepBinary:     "rg",
		FindBinary:     "fd",
		MaxResults:     20,
		PerFileMatches: 5,
		MaxFileSize:    "1M",
		MaxRecordBytes: 10 * 1024 * 1024,
	}
}
