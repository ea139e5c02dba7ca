package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/five82/flowdeck/internal/flowapi"
	"github.com/five82/flowdeck/internal/grid"
	"github.com/five82/flowdeck/internal/screens"
)

// Output formats accepted by WriteListing.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatJSON  = "json"
)

// ListOptions select and arrange a flows listing.
type ListOptions struct {
	Environment string
	Search      string
	// Filters are "column=value" pairs; column is an accessor or a column
	// title and "(empty)" selects empty values.
	Filters []string
	// Sort is "column" or "column:desc".
	Sort     string
	Page     int
	PageSize int
}

// Listing is one computed page plus the full column set, hidden columns
// included.
type Listing struct {
	View    grid.View
	Columns []grid.Column
}

// ListFlows fetches the flows of an environment and runs them through the
// same search, filter, sort and paging rules as the dashboard grid.
func ListFlows(ctx context.Context, fetcher flowapi.Fetcher, opts ListOptions) (Listing, error) {
	env := strings.TrimSpace(opts.Environment)
	if env == "" {
		return Listing{}, fmt.Errorf("environment required")
	}
	events, err := listEvents(screens.Flows.Columns, opts)
	if err != nil {
		return Listing{}, err
	}

	records, err := fetcher.ListFlows(ctx, env)
	if err != nil {
		return Listing{}, fmt.Errorf("list flows: %w", err)
	}

	g := screens.Flows.NewGrid(opts.PageSize)
	rows := make([]grid.Record, len(records))
	for i, rec := range records {
		rows[i] = rec
	}
	g.SetRecords(rows)
	for _, e := range events {
		g.Dispatch(e)
	}
	return Listing{View: g.View(), Columns: g.Columns()}, nil
}

// listEvents translates options into grid events. Search goes first since
// it resets the page; the page goes last.
func listEvents(cols []grid.Column, opts ListOptions) ([]grid.Event, error) {
	var events []grid.Event
	if s := strings.TrimSpace(opts.Search); s != "" {
		events = append(events, grid.SearchChanged{Text: s})
	}

	for _, f := range opts.Filters {
		name, value, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("invalid filter %q: want column=value", f)
		}
		col, err := findColumn(cols, name)
		if err != nil {
			return nil, err
		}
		if !col.Filterable() {
			return nil, fmt.Errorf("column %q cannot be filtered", col.Title)
		}
		value = strings.TrimSpace(value)
		if value == grid.EmptyLabel {
			value = grid.EmptySentinel
		}
		events = append(events, grid.FilterSet{Accessor: col.Accessor, Value: value})
	}

	if s := strings.TrimSpace(opts.Sort); s != "" {
		name, dir, _ := strings.Cut(s, ":")
		col, err := findColumn(cols, name)
		if err != nil {
			return nil, err
		}
		if !col.Sortable() {
			return nil, fmt.Errorf("column %q cannot be sorted", col.Title)
		}
		events = append(events, grid.SortToggled{Accessor: col.Accessor})
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			events = append(events, grid.SortToggled{Accessor: col.Accessor})
		default:
			return nil, fmt.Errorf("invalid sort direction %q: want asc or desc", dir)
		}
	}

	if opts.Page > 0 {
		events = append(events, grid.PageSelected{Page: opts.Page})
	}
	return events, nil
}

// findColumn matches an accessor exactly or a title case-insensitively.
func findColumn(cols []grid.Column, name string) (grid.Column, error) {
	name = strings.TrimSpace(name)
	for _, c := range cols {
		if c.Accessor == name {
			return c, nil
		}
	}
	for _, c := range cols {
		if strings.EqualFold(c.Title, name) {
			return c, nil
		}
	}
	return grid.Column{}, fmt.Errorf("unknown column %q", name)
}

// listingDoc is the machine-readable shape of a Listing.
type listingDoc struct {
	Page       int                     `json:"page" yaml:"page"`
	TotalPages int                     `json:"totalPages" yaml:"totalPages"`
	Matched    int                     `json:"matched" yaml:"matched"`
	Total      int                     `json:"total" yaml:"total"`
	Rows       []map[string]grid.Value `json:"rows" yaml:"rows"`
}

func (l Listing) doc() listingDoc {
	rows := make([]map[string]grid.Value, 0, len(l.View.Rows))
	for _, row := range l.View.Rows {
		out := make(map[string]grid.Value, len(l.Columns))
		for _, col := range l.Columns {
			out[col.Accessor] = row.Get(col.Accessor)
		}
		rows = append(rows, out)
	}
	return listingDoc{
		Page:       l.View.Page,
		TotalPages: l.View.TotalPages,
		Matched:    l.View.Matched,
		Total:      l.View.Total,
		Rows:       rows,
	}
}

var (
	listAccent = lipgloss.Color("#719cd6")
	listMuted  = lipgloss.Color("#738091")
	listText   = lipgloss.Color("#cdcecf")
)

// WriteListing prints a listing as a table, YAML or JSON.
func WriteListing(w io.Writer, l Listing, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatTable:
		return writeTable(w, l)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(l.doc()); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l.doc()); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q: want table, yaml or json", format)
	}
}

func writeTable(w io.Writer, l Listing) error {
	if len(l.View.Rows) == 0 {
		_, err := fmt.Fprintf(w, "No flows match (%d total).\n", l.View.Total)
		return err
	}

	cols := grid.VisibleColumns(l.Columns)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = strings.ToUpper(c.Title)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(listMuted)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().
					Foreground(listAccent).
					Bold(true).
					Padding(0, 1)
			}
			return lipgloss.NewStyle().
				Foreground(listText).
				Padding(0, 1)
		})

	for _, row := range l.View.Rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.Cell(row)
		}
		t.Row(cells...)
	}

	footer := lipgloss.NewStyle().Foreground(listMuted).Render(
		fmt.Sprintf("page %d/%d · %d of %d flows", l.View.Page, max(l.View.TotalPages, 1), l.View.Matched, l.View.Total))
	_, err := fmt.Fprintln(w, t.Render()+"\n"+footer)
	return err
}
