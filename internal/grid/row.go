package grid

// Row is a flattened, read-only snapshot of one source record keyed by
// column accessor path.
type Row struct {
	// Index is the record's position in the source list.
	Index int
	// Key is the caller's natural key (see Config.KeyAccessor), if any.
	Key    string
	Values map[string]Value
}

// Get returns the value stored under accessor, or Undefined.
func (r Row) Get(accessor string) Value {
	if v, ok := r.Values[accessor]; ok {
		return v
	}
	return Undefined()
}

// Materialize resolves every column accessor against every record. Search,
// filter and sort operate on the result, never on the nested records.
func Materialize(records []Record, columns []Column, keyAccessor string) []Row {
	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		values := make(map[string]Value, len(columns))
		for _, col := range columns {
			values[col.Accessor] = Resolve(rec, col.Accessor)
		}
		row := Row{Index: i, Values: values}
		if keyAccessor != "" {
			row.Key = Resolve(rec, keyAccessor).String()
		}
		rows = append(rows, row)
	}
	return rows
}
