package grid

// Direction of the active sort. The zero value means unsorted.
type Direction int

const (
	Unsorted Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

// Sort is the single active sort, if any.
type Sort struct {
	Accessor  string
	Direction Direction
}

// Active reports whether a sort is applied.
func (s Sort) Active() bool {
	return s.Accessor != "" && s.Direction != Unsorted
}

// State is the complete interactive state of a grid. It is treated as an
// immutable value: Reduce always returns a new State and never mutates the
// Filters map of its input.
type State struct {
	Search  string
	Filters map[string]string
	Sort    Sort
	Page    int
}

// NewState returns the initial state: no search, no filters, unsorted, page 1.
func NewState() State {
	return State{Page: 1}
}

// Filter returns the active filter value for accessor.
func (s State) Filter(accessor string) (string, bool) {
	v, ok := s.Filters[accessor]
	return v, ok
}

// SortFor returns the sort direction applied to accessor.
func (s State) SortFor(accessor string) Direction {
	if s.Sort.Accessor != accessor {
		return Unsorted
	}
	return s.Sort.Direction
}

func (s State) withFilters(fn func(map[string]string)) State {
	next := make(map[string]string, len(s.Filters)+1)
	for k, v := range s.Filters {
		next[k] = v
	}
	fn(next)
	if len(next) == 0 {
		next = nil
	}
	s.Filters = next
	return s
}
