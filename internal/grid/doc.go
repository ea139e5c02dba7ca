// Package grid implements the generic data grid behind every list screen:
// accessor-path flattening of nested records, global search, per-column
// filters, a three-state column sort, and pagination.
//
// The package has no UI dependencies. A screen supplies records (decoded
// JSON objects) and Column definitions; Materialize flattens each record into
// a Row keyed by accessor path, and Compute derives the visible page from a
// State:
//
//	visible = sort(filter(search(rows)))
//
// State is an immutable value and Reduce is its pure transition function, so
// the pipeline can be exercised without rendering anything. Grid bundles rows,
// columns, config and state for callers that want a single mutable handle.
//
// Nothing in this package returns an error. Accessor paths that do not
// resolve yield Undefined values, and all comparisons happen on string forms.
package grid
