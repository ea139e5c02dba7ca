package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/five82/flowdeck/internal/grid"
	"github.com/five82/flowdeck/internal/screens"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func flowFixtures() []grid.Record {
	return []grid.Record{
		{"name": "f1", "properties": map[string]any{"displayName": "Invoices", "state": "Started"}},
		{"name": "f2", "properties": map[string]any{"displayName": "Alerts", "state": "Stopped"}},
		{"name": "f3", "properties": map[string]any{"displayName": "Backups", "state": "Started"}},
	}
}

func rowKeys(v *gridView) []string {
	var out []string
	for _, row := range v.g.View().Rows {
		out = append(out, row.Key)
	}
	return out
}

func TestGridViewCursorAndSelection(t *testing.T) {
	v := newGridView(screens.Flows, 10)
	v.SetRecords(flowFixtures())
	keys := DefaultKeyMap()

	v.HandleKey(runes("j"), keys)
	v.HandleKey(runes("j"), keys)
	v.HandleKey(runes("j"), keys)
	rec, ok := v.Selected()
	if !ok || rec["name"] != "f3" {
		t.Fatalf("Selected() = %v, %v; want f3", rec, ok)
	}

	// Reloading with f3 first keeps the cursor on f3.
	reordered := flowFixtures()
	reordered[0], reordered[2] = reordered[2], reordered[0]
	v.SetRecords(reordered)
	if row, _ := v.SelectedRow(); row.Key != "f3" || v.cursor != 0 {
		t.Fatalf("after reload selected %q at %d, want f3 at 0", row.Key, v.cursor)
	}

	v.SetRecords(nil)
	if _, ok := v.Selected(); ok {
		t.Fatalf("Selected() on empty grid reported a row")
	}
}

func TestGridViewSortToggle(t *testing.T) {
	v := newGridView(screens.Flows, 10)
	v.SetRecords(flowFixtures())
	keys := DefaultKeyMap()

	v.HandleKey(runes("s"), keys)
	if diff := cmp.Diff([]string{"f2", "f3", "f1"}, rowKeys(v)); diff != "" {
		t.Fatalf("ascending order mismatch (-want +got):\n%s", diff)
	}
	v.HandleKey(runes("s"), keys)
	if diff := cmp.Diff([]string{"f1", "f3", "f2"}, rowKeys(v)); diff != "" {
		t.Fatalf("descending order mismatch (-want +got):\n%s", diff)
	}
	v.HandleKey(runes("s"), keys)
	if got := v.g.State().Sort; got.Active() {
		t.Fatalf("third toggle left sort %+v, want unsorted", got)
	}
}

func TestGridViewFilterCycle(t *testing.T) {
	v := newGridView(screens.Flows, 10)
	v.SetRecords(flowFixtures())
	keys := DefaultKeyMap()

	v.HandleKey(runes("l"), keys) // State column
	col, _ := v.focusedColumn()
	if col.Accessor != "properties.state" {
		t.Fatalf("focused column = %q, want properties.state", col.Accessor)
	}

	steps := []struct {
		filter string
		rows   []string
	}{
		{"Started", []string{"f1", "f3"}},
		{"Stopped", []string{"f2"}},
		{"", []string{"f1", "f2", "f3"}},
	}
	for _, step := range steps {
		v.HandleKey(runes("f"), keys)
		got, _ := v.g.State().Filter("properties.state")
		if got != step.filter {
			t.Fatalf("filter = %q, want %q", got, step.filter)
		}
		if diff := cmp.Diff(step.rows, rowKeys(v)); diff != "" {
			t.Fatalf("rows mismatch for filter %q (-want +got):\n%s", step.filter, diff)
		}
	}

	v.HandleKey(runes("f"), keys)
	v.HandleKey(runes("F"), keys)
	if n := len(v.g.State().Filters); n != 0 {
		t.Fatalf("F left %d filters, want 0", n)
	}
}

func TestGridViewSearch(t *testing.T) {
	v := newGridView(screens.Flows, 10)
	v.SetRecords(flowFixtures())
	keys := DefaultKeyMap()

	if handled, _ := v.HandleKey(runes("/"), keys); !handled || !v.searching {
		t.Fatalf("'/' did not open search")
	}
	v.HandleKey(runes("b"), keys)
	v.HandleKey(runes("a"), keys)
	if got := v.g.State().Search; got != "ba" {
		t.Fatalf("search = %q, want ba", got)
	}
	if diff := cmp.Diff([]string{"f3"}, rowKeys(v)); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}

	v.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, keys)
	if v.searching || v.g.State().Search != "ba" {
		t.Fatalf("enter should keep search %q and close the box", v.g.State().Search)
	}

	v.HandleKey(runes("/"), keys)
	v.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, keys)
	if v.searching || v.g.State().Search != "" {
		t.Fatalf("esc should clear search, got %q", v.g.State().Search)
	}
	if len(rowKeys(v)) != 3 {
		t.Fatalf("rows after clearing search = %d, want 3", len(rowKeys(v)))
	}
}

func TestGridViewRenderPager(t *testing.T) {
	v := newGridView(screens.Flows, 2)
	v.SetRecords(flowFixtures())
	theme := GetTheme("Nightfox")

	out := v.Render(theme, 160, 12, false)
	for _, want := range []string{"(3/3)", "Name", "Invoices", "‹ prev", "[1]", "next ›"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}

	v.HandleKey(runes("]"), DefaultKeyMap())
	if got := v.g.View().Page; got != 2 {
		t.Fatalf("page after ] = %d, want 2", got)
	}

	single := newGridView(screens.Flows, 10)
	single.SetRecords(flowFixtures())
	if out := single.Render(theme, 160, 12, false); strings.Contains(out, "next ›") {
		t.Fatalf("single page render shows pager:\n%s", out)
	}
}

func TestGridViewRenderEmptyStates(t *testing.T) {
	theme := GetTheme("Nightfox")
	v := newGridView(screens.Flows, 10)

	if out := v.Render(theme, 120, 10, true); !strings.Contains(out, "Loading...") {
		t.Fatalf("loading render = %q", out)
	}
	if out := v.Render(theme, 120, 10, false); !strings.Contains(out, "Nothing here yet") {
		t.Fatalf("empty render = %q", out)
	}

	v.SetRecords(flowFixtures())
	v.dispatch(grid.SearchChanged{Text: "zzz"})
	if out := v.Render(theme, 120, 10, false); !strings.Contains(out, "No rows match") {
		t.Fatalf("no-match render = %q", out)
	}
}

func TestLayoutColumns(t *testing.T) {
	cols := []grid.Column{{Width: 10}, {Width: 10}, {Width: 10}}
	if diff := cmp.Diff([]int{10, 10, 14}, layoutColumns(cols, 36)); diff != "" {
		t.Fatalf("wide layout mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{10, 11, 0}, layoutColumns(cols, 23)); diff != "" {
		t.Fatalf("narrow layout mismatch (-want +got):\n%s", diff)
	}
}
