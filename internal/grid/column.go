package grid

// Renderer maps a resolved cell value (and its whole flattened row) to the
// text shown in the cell.
type Renderer func(v Value, row Row) string

// Column describes one grid column. The zero value of the flags means the
// column is sortable, filterable and visible.
type Column struct {
	Title    string
	Accessor string
	NoSort   bool
	NoFilter bool
	Hidden   bool
	Render   Renderer
	// Width is a display hint in cells; zero lets the renderer decide.
	Width int
}

func (c Column) Sortable() bool   { return !c.NoSort }
func (c Column) Filterable() bool { return !c.NoFilter }
func (c Column) Visible() bool    { return !c.Hidden }

// Cell returns the display content for row under this column.
func (c Column) Cell(row Row) string {
	v := row.Get(c.Accessor)
	if c.Render != nil {
		return c.Render(v, row)
	}
	return v.String()
}

// VisibleColumns drops hidden columns, preserving order.
func VisibleColumns(columns []Column) []Column {
	out := make([]Column, 0, len(columns))
	for _, c := range columns {
		if c.Visible() {
			out = append(out, c)
		}
	}
	return out
}

func findColumn(columns []Column, accessor string) (Column, bool) {
	for _, c := range columns {
		if c.Accessor == accessor {
			return c, true
		}
	}
	return Column{}, false
}
