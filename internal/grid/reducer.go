package grid

// Event is a grid state transition request.
type Event interface {
	isEvent()
}

// SearchChanged replaces the global search text and returns to page 1.
type SearchChanged struct{ Text string }

// FilterSet activates a filter on one column. An empty Value clears it.
type FilterSet struct {
	Accessor string
	Value    string
}

// FilterCleared removes the filter on one column.
type FilterCleared struct{ Accessor string }

// FiltersReset removes every filter.
type FiltersReset struct{}

// SortToggled is a click on a column header: none -> asc -> desc -> none on
// the same column, and asc when switching to a different column.
type SortToggled struct{ Accessor string }

// PageSelected jumps to a page; values below 1 select page 1.
type PageSelected struct{ Page int }

// PageNext and PagePrev step one page.
type PageNext struct{}
type PagePrev struct{}

func (SearchChanged) isEvent() {}
func (FilterSet) isEvent()     {}
func (FilterCleared) isEvent() {}
func (FiltersReset) isEvent()  {}
func (SortToggled) isEvent()   {}
func (PageSelected) isEvent()  {}
func (PageNext) isEvent()      {}
func (PagePrev) isEvent()      {}

// Reduce is the pure transition function. It does not know the row count, so
// PageNext may step past the last page; Compute (and Grid.Dispatch) clamp.
func Reduce(s State, e Event) State {
	if s.Page < 1 {
		s.Page = 1
	}
	switch ev := e.(type) {
	case SearchChanged:
		s.Search = ev.Text
		s.Page = 1
	case FilterSet:
		if ev.Value == "" {
			return Reduce(s, FilterCleared{Accessor: ev.Accessor})
		}
		s = s.withFilters(func(m map[string]string) { m[ev.Accessor] = ev.Value })
	case FilterCleared:
		if _, ok := s.Filters[ev.Accessor]; !ok {
			return s
		}
		s = s.withFilters(func(m map[string]string) { delete(m, ev.Accessor) })
	case FiltersReset:
		s.Filters = nil
	case SortToggled:
		s.Sort = nextSort(s.Sort, ev.Accessor)
	case PageSelected:
		s.Page = max(ev.Page, 1)
	case PageNext:
		s.Page++
	case PagePrev:
		if s.Page > 1 {
			s.Page--
		}
	}
	return s
}

func nextSort(cur Sort, accessor string) Sort {
	if cur.Accessor != accessor || !cur.Active() {
		return Sort{Accessor: accessor, Direction: Ascending}
	}
	if cur.Direction == Ascending {
		return Sort{Accessor: accessor, Direction: Descending}
	}
	return Sort{}
}
