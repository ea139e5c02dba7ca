package grid

import "sort"

const (
	// EmptySentinel is the filter value selecting rows whose value is
	// falsy and not zero.
	EmptySentinel = "!@null@!"
	// EmptyLabel is the display label of the sentinel option.
	EmptyLabel = "(empty)"
)

// Option is one selectable filter value.
type Option struct {
	Label string
	Value string
}

// FilterOptions derives the filter choices for a column from the unfiltered,
// unsearched rows: "(empty)" first when any row is empty, then each distinct
// non-empty value in collated order.
func FilterOptions(rows []Row, accessor string) []Option {
	seen := make(map[string]struct{})
	var values []string
	hasEmpty := false
	for _, row := range rows {
		v := row.Get(accessor)
		if v.Empty() {
			hasEmpty = true
			continue
		}
		s := v.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		values = append(values, s)
	}

	cmp := newComparer()
	sort.SliceStable(values, func(i, j int) bool { return cmp(values[i], values[j]) < 0 })

	opts := make([]Option, 0, len(values)+1)
	if hasEmpty {
		opts = append(opts, Option{Label: EmptyLabel, Value: EmptySentinel})
	}
	for _, s := range values {
		opts = append(opts, Option{Label: s, Value: s})
	}
	return opts
}
