package search

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"
)

// ContentEngine searches file contents with ripgrep's JSON output.
type ContentEngine struct {
	query Query
	opts  Options
	*collector
}

// NewContentEngine creates an engine for ModeContentLiteral or ModeContentRegex queries.
func NewContentEngine(q Query, opts Options) (*ContentEngine, error) {
	if !q.Mode.IsContent() {
		return nil, &UnknownModeError{Value: q.Mode.String()}
	}
	c, err := newCollector(opts, parseRipgrepRecord)
	if err != nil {
		return nil, err
	}
	return &ContentEngine{query: q, opts: opts, collector: c}, nil
}

// Command builds: rg --json --no-messages --smart-case --max-filesize=N -m=N [-F] -- <query> .
// The query always follows "--" so text starting with a dash is never read as a flag.
func (e *ContentEngine) Command() []string {
	cmd := []string{
		e.opts.GrepBinary,
		"--json",
		"--no-messages",
		"--smart-case",
		"--max-filesize=" + e.opts.MaxFileSize,
		"-m=" + strconv.Itoa(e.opts.PerFileMatches),
	}
	if e.query.Mode == ModeContentLiteral {
		cmd = append(cmd, "-F")
	}
	return append(cmd, "--", e.query.Text, ".")
}

func (e *ContentEngine) Dir() string { return e.query.Root }

func (e *ContentEngine) Process(chunk []byte) Feed { return e.feed(chunk) }

func (e *ContentEngine) Results() []Match { return e.results() }

// rgData is ripgrep's "arbitrary data" encoding: text when valid UTF-8, base64 bytes otherwise.
type rgData struct {
	Text  *string `json:"text"`
	Bytes *string `json:"bytes"`
}

func (d rgData) value() (string, error) {
	switch {
	case d.Text != nil:
		return *d.Text, nil
	case d.Bytes != nil:
		raw, err := base64.StdEncoding.DecodeString(*d.Bytes)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	default:
		return "", errMissingPath
	}
}

type rgMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type rgMatch struct {
	Path       rgData `json:"path"`
	LineNumber *uint  `json:"line_number"`
	Submatches []struct {
		Start uint `json:"start"`
	} `json:"submatches"`
}

var errMissingPath = errors.New("match record has no path")

// parseRipgrepRecord keeps "match" messages and ignores begin/end/context/summary framing.
func parseRipgrepRecord(record []byte) (Match, bool, error) {
	var msg rgMessage
	if err := json.Unmarshal(record, &msg); err != nil {
		return Match{}, false, err
	}
	if msg.Type != "match" {
		return Match{}, false, nil
	}

	var data rgMatch
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		return Match{}, false, err
	}
	path, err := data.Path.value()
	if err != nil {
		return Match{}, false, err
	}

	m := Match{Path: path}
	if data.LineNumber != nil {
		m.Line = *data.LineNumber
	}
	if len(data.Submatches) > 0 {
		m.Col = data.Submatches[0].Start
	}
	return m, true, nil
}
