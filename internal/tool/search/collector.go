package search

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// recordParser turns one complete output line into at most one match.
// ok is false for well-formed records that carry no match (framing, summaries).
type recordParser func(record []byte) (m Match, ok bool, err error)

// collector is the shared half of both engines: decoding, exclusion and the soft cap.
type collector struct {
	maxResults int
	decoder    *LineDecoder
	exclude    []string
	parse      recordParser
	matches    []Match
}

func newCollector(opts Options, parse recordParser) (*collector, error) {
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, &InvalidExcludeError{Pattern: pattern}
		}
	}
	return &collector{
		maxResults: opts.MaxResults,
		decoder:    NewLineDecoder(opts.MaxRecordBytes),
		exclude:    opts.Exclude,
		parse:      parse,
	}, nil
}

// feed checks the cap before touching the chunk, so a single chunk may push
// the total past maxResults. The next call then reports StatusStop.
func (c *collector) feed(chunk []byte) Feed {
	if len(c.matches) > c.maxResults {
		return Feed{Status: StatusStop}
	}

	records, decodeErr := c.decoder.Feed(chunk)

	var warnings []error
	for _, record := range records {
		m, ok, err := c.parse(record)
		if err != nil {
			warnings = append(warnings, &RecordDecodeError{Record: string(record), Cause: err})
			continue
		}
		if !ok || c.excluded(m.Path) {
			continue
		}
		c.matches = append(c.matches, m)
	}

	if decodeErr != nil {
		return Feed{Status: StatusFailed, Warnings: warnings, Err: decodeErr}
	}
	return Feed{Status: StatusContinue, Warnings: warnings}
}

// excluded matches path against the exclude globs. rg and fd report local results
// as "./dir/file", so the leading "./" is stripped first.
func (c *collector) excluded(path string) bool {
	slashed := strings.TrimPrefix(filepath.ToSlash(path), "./")
	for _, pattern := range c.exclude {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

func (c *collector) results() []Match {
	out := make([]Match, len(c.matches))
	copy(out, c.matches)
	return out
}
