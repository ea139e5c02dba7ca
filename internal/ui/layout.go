package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops the
	// account and theme segments.
	LayoutCompactWidth = 100

	// LayoutMinColumnWidth is the narrowest a grid column is drawn.
	LayoutMinColumnWidth = 4
)
