package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Back       key.Binding
	Open       key.Binding
	Refresh    key.Binding
	Inspect    key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding

	// Grid
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	PrevColumn   key.Binding
	NextColumn   key.Binding
	Search       key.Binding
	Sort         key.Binding
	CycleFilter  key.Binding
	ClearFilters key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding

	// Flow actions
	RunFlow     key.Binding
	EnableFlow  key.Binding
	DisableFlow key.Binding
	DeleteFlow  key.Binding

	// Run actions
	CancelRun   key.Binding
	ResubmitRun key.Binding

	// Alerts
	DismissAlert key.Binding
	DismissAll   key.Binding

	// Modal
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "Back"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Refresh"),
		),
		Inspect: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Inspect record"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous tab"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First row"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last row"),
		),
		PrevColumn: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "Previous column"),
		),
		NextColumn: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "Next column"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sort column"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle column filter"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Clear filters"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]", "Next page"),
		),

		RunFlow: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Run flow"),
		),
		EnableFlow: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Enable flow"),
		),
		DisableFlow: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Disable flow"),
		),
		DeleteFlow: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete flow"),
		),

		CancelRun: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Cancel run"),
		),
		ResubmitRun: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Resubmit run"),
		),

		DismissAlert: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Dismiss newest alert"),
		),
		DismissAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "Dismiss all alerts"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "Confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "Cancel"),
		),
	}
}

// FullHelp returns key bindings grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Back, k.NextTab, k.PrevTab, k.Refresh, k.Inspect},
		{k.Up, k.Down, k.Top, k.Bottom, k.PrevColumn, k.NextColumn},
		{k.Search, k.Sort, k.CycleFilter, k.ClearFilters, k.PrevPage, k.NextPage},
		{k.RunFlow, k.EnableFlow, k.DisableFlow, k.DeleteFlow},
		{k.CancelRun, k.ResubmitRun},
		{k.DismissAlert, k.DismissAll, k.CycleTheme, k.Help, k.Quit},
	}
}
