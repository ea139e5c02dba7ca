package grid

import (
	"sort"
	"strings"
)

// View is the derived, paginated result of applying a State to rows.
type View struct {
	// Rows holds the current page only.
	Rows []Row
	// Matched is the number of rows that survived search and filters.
	Matched int
	// Total is the number of source rows.
	Total      int
	Page       int
	PageSize   int
	TotalPages int
	Columns    []Column
}

// HasPrev reports whether "previous" is enabled.
func (v View) HasPrev() bool { return v.Page > 1 }

// HasNext reports whether "next" is enabled.
func (v View) HasNext() bool { return v.Page < v.TotalPages }

// ShowPager reports whether page controls should be rendered at all.
func (v View) ShowPager() bool { return v.TotalPages > 1 }

// PageButtons lists the page numbers, one button per page.
func (v View) PageButtons() []int {
	if !v.ShowPager() {
		return nil
	}
	pages := make([]int, v.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Compute runs search, filter, sort and paginate. It is deterministic: the
// same inputs always yield the same rows in the same order.
func Compute(rows []Row, columns []Column, s State, cfg Config) View {
	cfg = cfg.withDefaults()
	visible := Visible(rows, s, cfg)
	page, pageRows, totalPages := Paginate(visible, s.Page, cfg.PageSize)
	return View{
		Rows:       pageRows,
		Matched:    len(visible),
		Total:      len(rows),
		Page:       page,
		PageSize:   cfg.PageSize,
		TotalPages: totalPages,
		Columns:    VisibleColumns(columns),
	}
}

// Visible returns sort(filter(search(rows))) without pagination.
func Visible(rows []Row, s State, cfg Config) []Row {
	out := rows
	if !cfg.DisableGlobalSearch {
		out = Search(out, s.Search)
	}
	out = FilterRows(out, s.Filters)
	return SortRows(out, s.Sort)
}

// Search keeps rows where any flattened value contains query,
// case-insensitively. An empty query keeps everything.
func Search(rows []Row, query string) []Row {
	if query == "" {
		return rows
	}
	needle := strings.ToLower(query)
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if rowContains(row, needle) {
			out = append(out, row)
		}
	}
	return out
}

func rowContains(row Row, needle string) bool {
	for _, v := range row.Values {
		if strings.Contains(strings.ToLower(v.String()), needle) {
			return true
		}
	}
	return false
}

// FilterRows keeps rows passing every active filter (logical AND).
func FilterRows(rows []Row, filters map[string]string) []Row {
	if len(filters) == 0 {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if matchesFilters(row, filters) {
			out = append(out, row)
		}
	}
	return out
}

func matchesFilters(row Row, filters map[string]string) bool {
	for accessor, want := range filters {
		if !matchesFilter(row.Get(accessor), want) {
			return false
		}
	}
	return true
}

func matchesFilter(v Value, want string) bool {
	if want == EmptySentinel {
		return v.Empty()
	}
	return v.String() == want
}

// SortRows returns a stably sorted copy of rows. Values are compared by
// their string form with numeric-aware locale collation.
func SortRows(rows []Row, s Sort) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	if !s.Active() {
		return out
	}
	cmp := newComparer()
	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i].Get(s.Accessor).String(), out[j].Get(s.Accessor).String())
		if s.Direction == Descending {
			return c > 0
		}
		return c < 0
	})
	return out
}

// Paginate slices rows into the requested page, clamping page into range.
// It returns the effective page, the page's rows and the total page count.
func Paginate(rows []Row, page, size int) (int, []Row, int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := (len(rows) + size - 1) / size
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(rows) {
		return page, nil, totalPages
	}
	end := min(start+size, len(rows))
	return page, rows[start:end], totalPages
}
