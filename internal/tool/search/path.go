package search

// PathEngine matches file paths with fd. Every output line is a bare path.
type PathEngine struct {
	query Query
	opts  Options
	*collector
}

// NewPathEngine creates an engine for ModeFilenameLocal or ModeFilenameGlobal queries.
func NewPathEngine(q Query, opts Options) (*PathEngine, error) {
	if q.Mode != ModeFilenameLocal && q.Mode != ModeFilenameGlobal {
		return nil, &UnknownModeError{Value: q.Mode.String()}
	}
	c, err := newCollector(opts, parsePathRecord)
	if err != nil {
		return nil, err
	}
	return &PathEngine{query: q, opts: opts, collector: c}, nil
}

// Command builds: fd -i -t=f -p --search-path=<.|/> -F -- <query>
func (e *PathEngine) Command() []string {
	searchPath := "--search-path=."
	if e.query.Mode == ModeFilenameGlobal {
		searchPath = "--search-path=/"
	}
	return []string{
		e.opts.FindBinary,
		"-i",
		"-t=f",
		"-p",
		searchPath,
		"-F",
		"--",
		e.query.Text,
	}
}

func (e *PathEngine) Dir() string { return e.query.Root }

func (e *PathEngine) Process(chunk []byte) Feed { return e.feed(chunk) }

func (e *PathEngine) Results() []Match { return e.results() }

func parsePathRecord(record []byte) (Match, bool, error) {
	return Match{Path: string(record)}, true, nil
}
