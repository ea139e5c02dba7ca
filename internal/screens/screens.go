// Package screens holds the column sets for every list in the dashboard.
package screens

import (
	"github.com/five82/flowdeck/internal/grid"
	"github.com/five82/flowdeck/internal/state"
)

// Set is the column definition for one list screen.
type Set struct {
	Kind        state.Kind
	Title       string
	Columns     []grid.Column
	KeyAccessor string
	Placeholder string
}

// Config returns the grid configuration for the set.
func (s Set) Config(pageSize int) grid.Config {
	return grid.Config{
		PageSize:          pageSize,
		KeyAccessor:       s.KeyAccessor,
		SearchPlaceholder: s.Placeholder,
	}
}

// NewGrid builds an empty grid for the set.
func (s Set) NewGrid(pageSize int) *grid.Grid {
	return grid.New(s.Columns, s.Config(pageSize))
}

// Environments lists the environments visible to the token.
var Environments = Set{
	Kind:        state.KindEnvironments,
	Title:       "Environments",
	KeyAccessor: "name",
	Placeholder: "Search environments...",
	Columns: []grid.Column{
		{Title: "Name", Accessor: "properties.displayName", Width: 32},
		{Title: "Environment", Accessor: "name", Width: 40},
		{Title: "Location", Accessor: "location", Width: 14},
		{Title: "Default", Accessor: "properties.isDefault", Render: YesNo, Width: 8},
		{Title: "SKU", Accessor: "properties.environmentSku", Width: 12},
		{Title: "Created", Accessor: "properties.createdTime", Render: Date, Width: 13},
	},
}

// Flows lists the flows of an environment.
var Flows = Set{
	Kind:        state.KindFlows,
	Title:       "Flows",
	KeyAccessor: "name",
	Placeholder: "Search flows...",
	Columns: []grid.Column{
		{Title: "Name", Accessor: "properties.displayName", Width: 36},
		{Title: "State", Accessor: "properties.state", Render: FlowState, Width: 10},
		{Title: "Trigger", Accessor: "properties.definitionSummary.triggers.0.kind", Width: 12},
		{Title: "Type", Accessor: "properties.definitionSummary.triggers.0.type", Width: 12},
		{Title: "Created", Accessor: "properties.createdTime", Render: Date, Width: 13},
		{Title: "Modified", Accessor: "properties.lastModifiedTime", Render: Date, Width: 13},
		{Title: "ID", Accessor: "name", Hidden: true},
	},
}

// Runs lists the run history of a flow.
var Runs = Set{
	Kind:        state.KindRuns,
	Title:       "Runs",
	KeyAccessor: "name",
	Placeholder: "Search runs...",
	Columns: []grid.Column{
		{Title: "Run", Accessor: "name", Width: 30},
		{Title: "Status", Accessor: "properties.status", Width: 11},
		{Title: "Started", Accessor: "properties.startTime", Render: Date, Width: 13},
		{Title: "Ended", Accessor: "properties.endTime", Render: Date, Width: 13},
		{Title: "Duration", Accessor: "duration", NoSort: true, NoFilter: true, Render: RunDuration, Width: 9},
		{Title: "Code", Accessor: "properties.code", Width: 14},
		{Title: "Trigger", Accessor: "properties.trigger.name", Hidden: true},
		{Title: "Error", Accessor: "properties.error.message", NoFilter: true},
	},
}

// TriggerHistories lists trigger checks of a flow trigger.
var TriggerHistories = Set{
	Kind:        state.KindTriggerHistories,
	Title:       "Trigger history",
	KeyAccessor: "name",
	Placeholder: "Search trigger checks...",
	Columns: []grid.Column{
		{Title: "Check", Accessor: "name", Width: 30},
		{Title: "Status", Accessor: "properties.status", Width: 11},
		{Title: "Fired", Accessor: "properties.fired", Render: YesNo, Width: 6},
		{Title: "Started", Accessor: "properties.startTime", Render: Date, Width: 13},
		{Title: "Ended", Accessor: "properties.endTime", Render: Date, Width: 13},
		{Title: "Run", Accessor: "properties.run.name", Width: 30},
		{Title: "Code", Accessor: "properties.code", Width: 14},
	},
}

// Connections lists the connections a flow uses.
var Connections = Set{
	Kind:        state.KindConnections,
	Title:       "Connections",
	KeyAccessor: "name",
	Placeholder: "Search connections...",
	Columns: []grid.Column{
		{Title: "Name", Accessor: "properties.displayName", Width: 30},
		{Title: "Connector", Accessor: "properties.apiId", Render: LastSegment, Width: 24},
		{Title: "Status", Accessor: "properties.statuses.0.status", Width: 12},
		{Title: "Created", Accessor: "properties.createdTime", Render: Date, Width: 13},
		{Title: "ID", Accessor: "name", Hidden: true},
	},
}

// Triggers lists the trigger metadata of one flow; see TriggerRecords.
var Triggers = Set{
	Kind:        state.KindFlow,
	Title:       "Trigger metadata",
	KeyAccessor: "name",
	Placeholder: "Search triggers...",
	Columns: []grid.Column{
		{Title: "Trigger", Accessor: "name", Width: 20},
		{Title: "Type", Accessor: "type", Width: 14},
		{Title: "Kind", Accessor: "kind", Width: 14},
		{Title: "Recurrence", Accessor: "recurrence", Width: 18},
		{Title: "Metadata", Accessor: "metadata", NoSort: true, NoFilter: true},
	},
}

// For returns the list set for a resource kind.
func For(kind state.Kind) (Set, bool) {
	for _, s := range []Set{Environments, Flows, Runs, TriggerHistories, Connections} {
		if s.Kind == kind {
			return s, true
		}
	}
	return Set{}, false
}
