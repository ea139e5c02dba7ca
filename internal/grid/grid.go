package grid

// Grid is one stateful grid instance: immutable column definitions and
// config, the current source records, and the interactive State. Grids are
// independent of each other and are not safe for concurrent use.
type Grid struct {
	columns []Column
	cfg     Config
	records []Record
	rows    []Row
	state   State
}

// New creates an empty grid.
func New(columns []Column, cfg Config) *Grid {
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Grid{
		columns: cols,
		cfg:     cfg.withDefaults(),
		state:   NewState(),
	}
}

// SetRecords replaces the source list and rematerializes rows. Search,
// filters and sort are kept; the page is clamped.
func (g *Grid) SetRecords(records []Record) {
	g.records = records
	g.rows = Materialize(records, g.columns, g.cfg.KeyAccessor)
	g.clamp()
}

// Dispatch applies an event. Sort and filter events aimed at columns that
// do not allow them are ignored.
func (g *Grid) Dispatch(e Event) {
	switch ev := e.(type) {
	case SortToggled:
		col, ok := findColumn(g.columns, ev.Accessor)
		if !ok || !col.Sortable() {
			return
		}
	case FilterSet:
		col, ok := findColumn(g.columns, ev.Accessor)
		if !ok || !col.Filterable() {
			return
		}
	case SearchChanged:
		if g.cfg.DisableGlobalSearch {
			return
		}
	}
	g.state = Reduce(g.state, e)
	g.clamp()
}

func (g *Grid) clamp() {
	g.state.Page = Compute(g.rows, g.columns, g.state, g.cfg).Page
}

// View computes the current page.
func (g *Grid) View() View {
	return Compute(g.rows, g.columns, g.state, g.cfg)
}

// Visible returns every row matching the current state, unpaginated.
func (g *Grid) Visible() []Row {
	return Visible(g.rows, g.state, g.cfg)
}

// Options returns filter choices for a filterable column.
func (g *Grid) Options(accessor string) []Option {
	col, ok := findColumn(g.columns, accessor)
	if !ok || !col.Filterable() {
		return nil
	}
	return FilterOptions(g.rows, accessor)
}

// Record returns the source record behind row, or nil.
func (g *Grid) Record(row Row) Record {
	if row.Index < 0 || row.Index >= len(g.records) {
		return nil
	}
	return g.records[row.Index]
}

func (g *Grid) State() State      { return g.state }
func (g *Grid) Config() Config    { return g.cfg }
func (g *Grid) Rows() []Row       { return g.rows }
func (g *Grid) Columns() []Column { return g.columns }
func (g *Grid) Len() int          { return len(g.rows) }
