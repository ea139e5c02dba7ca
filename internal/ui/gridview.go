package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/flowdeck/internal/grid"
	"github.com/five82/flowdeck/internal/screens"
)

const (
	defaultColumnWidth = 14
	columnGap          = 1
)

// gridView is the interactive table bound to one grid.Grid.
type gridView struct {
	set       screens.Set
	g         *grid.Grid
	cursor    int // row index within the current page
	offset    int // first page row drawn
	col       int // index into visible columns
	search    textinput.Model
	searching bool
}

func newGridView(set screens.Set, pageSize int) *gridView {
	g := set.NewGrid(pageSize)
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = g.Config().SearchPlaceholder
	ti.CharLimit = 120
	return &gridView{set: set, g: g, search: ti}
}

// SetRecords replaces the rows, keeping the selection on the same key when
// it is still on the current page.
func (v *gridView) SetRecords(records []grid.Record) {
	selectedKey := ""
	if row, ok := v.SelectedRow(); ok {
		selectedKey = row.Key
	}

	v.g.SetRecords(records)

	rows := v.g.View().Rows
	if selectedKey != "" {
		for i, row := range rows {
			if row.Key == selectedKey {
				v.cursor = i
				return
			}
		}
	}
	v.clampCursor()
}

// SelectedRow returns the row under the cursor.
func (v *gridView) SelectedRow() (grid.Row, bool) {
	rows := v.g.View().Rows
	if v.cursor < 0 || v.cursor >= len(rows) {
		return grid.Row{}, false
	}
	return rows[v.cursor], true
}

// Selected returns the source record under the cursor.
func (v *gridView) Selected() (grid.Record, bool) {
	row, ok := v.SelectedRow()
	if !ok {
		return nil, false
	}
	rec := v.g.Record(row)
	return rec, rec != nil
}

func (v *gridView) visibleColumns() []grid.Column {
	return grid.VisibleColumns(v.g.Columns())
}

func (v *gridView) focusedColumn() (grid.Column, bool) {
	cols := v.visibleColumns()
	if v.col < 0 || v.col >= len(cols) {
		return grid.Column{}, false
	}
	return cols[v.col], true
}

func (v *gridView) dispatch(e grid.Event) {
	v.g.Dispatch(e)
	v.clampCursor()
}

func (v *gridView) clampCursor() {
	n := len(v.g.View().Rows)
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// cycleFilter steps the focused column's filter through its options and
// back to unfiltered.
func (v *gridView) cycleFilter() {
	col, ok := v.focusedColumn()
	if !ok || !col.Filterable() {
		return
	}
	opts := v.g.Options(col.Accessor)
	if len(opts) == 0 {
		return
	}
	current, active := v.g.State().Filter(col.Accessor)
	if !active {
		v.dispatch(grid.FilterSet{Accessor: col.Accessor, Value: opts[0].Value})
		return
	}
	for i, opt := range opts {
		if opt.Value == current && i+1 < len(opts) {
			v.dispatch(grid.FilterSet{Accessor: col.Accessor, Value: opts[i+1].Value})
			return
		}
	}
	v.dispatch(grid.FilterCleared{Accessor: col.Accessor})
}

// HandleKey applies a grid key. It reports whether the key was consumed.
func (v *gridView) HandleKey(msg tea.KeyMsg, keys keyMap) (bool, tea.Cmd) {
	if v.searching {
		return true, v.handleSearchKey(msg)
	}

	rows := len(v.g.View().Rows)
	switch {
	case key.Matches(msg, keys.Down):
		if v.cursor < rows-1 {
			v.cursor++
		}
	case key.Matches(msg, keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, keys.Top):
		v.cursor = 0
	case key.Matches(msg, keys.Bottom):
		v.cursor = max(rows-1, 0)
	case key.Matches(msg, keys.PrevColumn):
		if v.col > 0 {
			v.col--
		}
	case key.Matches(msg, keys.NextColumn):
		if v.col < len(v.visibleColumns())-1 {
			v.col++
		}
	case key.Matches(msg, keys.Sort):
		if col, ok := v.focusedColumn(); ok {
			v.dispatch(grid.SortToggled{Accessor: col.Accessor})
		}
	case key.Matches(msg, keys.CycleFilter):
		v.cycleFilter()
	case key.Matches(msg, keys.ClearFilters):
		v.dispatch(grid.FiltersReset{})
	case key.Matches(msg, keys.NextPage):
		v.dispatch(grid.PageNext{})
		v.cursor, v.offset = 0, 0
	case key.Matches(msg, keys.PrevPage):
		v.dispatch(grid.PagePrev{})
		v.cursor, v.offset = 0, 0
	case key.Matches(msg, keys.Search):
		if v.g.Config().DisableGlobalSearch {
			return false, nil
		}
		v.searching = true
		return true, v.search.Focus()
	default:
		return false, nil
	}
	return true, nil
}

func (v *gridView) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		v.searching = false
		v.search.Blur()
		return nil
	case "esc":
		v.searching = false
		v.search.Blur()
		v.search.SetValue("")
		v.dispatch(grid.SearchChanged{Text: ""})
		return nil
	}
	var cmd tea.Cmd
	before := v.search.Value()
	v.search, cmd = v.search.Update(msg)
	if after := v.search.Value(); after != before {
		v.dispatch(grid.SearchChanged{Text: after})
		v.cursor, v.offset = 0, 0
	}
	return cmd
}

// Render draws the search line, header, rows and pager into width x height.
func (v *gridView) Render(theme Theme, width, height int, loading bool) string {
	styles := theme.Styles()
	view := v.g.View()
	cfg := v.g.Config()

	var lines []string

	// Search and counter line
	var top []string
	if !cfg.DisableGlobalSearch {
		if v.searching || v.search.Value() != "" {
			top = append(top, v.styled(grid.RegionSearch, styles.Text).Render(v.search.View()))
		} else {
			top = append(top, v.styled(grid.RegionSearch, styles.FaintText).Render("/ "+cfg.SearchPlaceholder))
		}
	}
	if !cfg.HideCounter {
		top = append(top, v.styled(grid.RegionCounter, styles.MutedText).Render(fmt.Sprintf("(%d/%d)", view.Matched, view.Total)))
	}
	if summary := v.filterSummary(); summary != "" {
		top = append(top, styles.WarningText.Render(summary))
	}
	if len(top) > 0 {
		lines = append(lines, strings.Join(top, "  "))
	}

	cols := v.visibleColumns()
	widths := layoutColumns(cols, width)
	lines = append(lines, v.renderHeader(theme, cols, widths))

	pagerLines := 0
	if view.ShowPager() {
		pagerLines = 1
	}
	bodyHeight := max(height-len(lines)-pagerLines, 1)

	switch {
	case len(view.Rows) == 0 && loading:
		lines = append(lines, styles.MutedText.Render("Loading..."))
	case len(view.Rows) == 0 && view.Total > 0:
		lines = append(lines, styles.MutedText.Render("No rows match the current search and filters"))
	case len(view.Rows) == 0:
		lines = append(lines, styles.MutedText.Render("Nothing here yet"))
	default:
		v.scrollTo(bodyHeight)
		end := min(v.offset+bodyHeight, len(view.Rows))
		for i := v.offset; i < end; i++ {
			lines = append(lines, v.renderRow(theme, view.Rows[i], cols, widths, width, i == v.cursor))
		}
	}

	if view.ShowPager() {
		for len(lines) < height-1 {
			lines = append(lines, "")
		}
		lines = append(lines, v.renderPager(theme, view))
	}
	return strings.Join(lines, "\n")
}

func (v *gridView) scrollTo(height int) {
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+height {
		v.offset = v.cursor - height + 1
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

func (v *gridView) styled(region grid.Region, base lipgloss.Style) lipgloss.Style {
	if tok, ok := v.g.Config().Style(region); ok {
		return base.Foreground(lipgloss.Color(tok))
	}
	return base
}

func (v *gridView) filterSummary() string {
	filters := v.g.State().Filters
	if len(filters) == 0 {
		return ""
	}
	var parts []string
	for _, col := range v.g.Columns() {
		val, ok := filters[col.Accessor]
		if !ok {
			continue
		}
		if val == grid.EmptySentinel {
			val = grid.EmptyLabel
		}
		parts = append(parts, col.Title+"="+val)
	}
	return "filter: " + strings.Join(parts, ", ")
}

func (v *gridView) renderHeader(theme Theme, cols []grid.Column, widths []int) string {
	styles := theme.Styles()
	state := v.g.State()
	var cells []string
	for i, col := range cols {
		if widths[i] <= 0 {
			continue
		}
		title := col.Title
		switch state.SortFor(col.Accessor) {
		case grid.Ascending:
			title += " ▲"
		case grid.Descending:
			title += " ▼"
		}
		if _, ok := state.Filter(col.Accessor); ok {
			title += " *"
		}
		style := v.styled(grid.RegionHeader, styles.AccentText.Bold(true))
		if i == v.col {
			style = style.Underline(true).Foreground(lipgloss.Color(theme.Warning))
		}
		cells = append(cells, style.Render(padRight(truncate(title, widths[i]), widths[i])))
	}
	return strings.Join(cells, strings.Repeat(" ", columnGap))
}

func (v *gridView) renderRow(theme Theme, row grid.Row, cols []grid.Column, widths []int, width int, selected bool) string {
	styles := theme.Styles()
	var cells []string
	for i, col := range cols {
		if widths[i] <= 0 {
			continue
		}
		text := padRight(truncate(col.Cell(row), widths[i]), widths[i])
		switch {
		case selected:
			cells = append(cells, text)
		case isStatusAccessor(col.Accessor):
			color := theme.StatusColor(row.Get(col.Accessor).String())
			cells = append(cells, lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text))
		default:
			cells = append(cells, v.styled(grid.RegionRow, styles.Text).Render(text))
		}
	}
	line := strings.Join(cells, strings.Repeat(" ", columnGap))
	if selected {
		return v.styled(grid.RegionSelected, styles.Selected).Width(width).Render(line)
	}
	return line
}

func (v *gridView) renderPager(theme Theme, view grid.View) string {
	styles := theme.Styles()
	base := v.styled(grid.RegionPager, styles.MutedText)

	prev := base.Render("‹ prev")
	if !view.HasPrev() {
		prev = styles.FaintText.Render("‹ prev")
	}
	next := base.Render("next ›")
	if !view.HasNext() {
		next = styles.FaintText.Render("next ›")
	}

	parts := []string{prev}
	for _, p := range view.PageButtons() {
		if p == view.Page {
			parts = append(parts, styles.AccentText.Bold(true).Render(fmt.Sprintf("[%d]", p)))
			continue
		}
		parts = append(parts, base.Render(fmt.Sprintf("%d", p)))
	}
	parts = append(parts, next)
	return strings.Join(parts, " ")
}

// layoutColumns assigns display widths left to right. The last column that
// fits takes any remaining space; columns past the edge get zero.
func layoutColumns(cols []grid.Column, width int) []int {
	widths := make([]int, len(cols))
	remaining := width
	last := -1
	for i, col := range cols {
		w := col.Width
		if w <= 0 {
			w = defaultColumnWidth
		}
		if i > 0 {
			remaining -= columnGap
		}
		if remaining < LayoutMinColumnWidth {
			break
		}
		w = min(w, remaining)
		widths[i] = w
		remaining -= w
		last = i
	}
	if last >= 0 && remaining > 0 {
		widths[last] += remaining
	}
	return widths
}

func isStatusAccessor(accessor string) bool {
	lower := strings.ToLower(accessor)
	return strings.HasSuffix(lower, ".status") || strings.HasSuffix(lower, ".state")
}
