package search

// Factory builds the engine for a query's mode.
type Factory func(q Query) (Engine, error)

// NewFactory returns a Factory that validates each query and picks the engine variant by mode.
func NewFactory(opts Options) Factory {
	return func(q Query) (Engine, error) {
		if err := q.Validate(); err != nil {
			return nil, err
		}
		if q.Mode.IsContent() {
			return NewContentEngine(q, opts)
		}
		return NewPathEngine(q, opts)
	}
}
