package screens

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/flowdeck/internal/flowapi"
	"github.com/five82/flowdeck/internal/grid"
	"github.com/five82/flowdeck/internal/state"
)

func sampleFlows() []grid.Record {
	return []grid.Record{
		{
			"name": "f-2",
			"properties": map[string]any{
				"displayName":      "Weekly report",
				"state":            "Stopped",
				"createdTime":      "2025-01-10T08:00:00Z",
				"lastModifiedTime": "2025-02-01T09:30:00Z",
				"definitionSummary": map[string]any{
					"triggers": []any{map[string]any{"type": "Recurrence"}},
				},
			},
		},
		{
			"name": "f-1",
			"properties": map[string]any{
				"displayName": "Approve invoice",
				"state":       "Started",
				"definitionSummary": map[string]any{
					"triggers": []any{map[string]any{"type": "Request", "kind": "Button"}},
				},
			},
		},
	}
}

func TestFlowsSetSortsAndFilters(t *testing.T) {
	g := Flows.NewGrid(0)
	g.SetRecords(sampleFlows())

	g.Dispatch(grid.SortToggled{Accessor: "properties.displayName"})
	view := g.View()
	var names []string
	for _, row := range view.Rows {
		names = append(names, row.Key)
	}
	if diff := cmp.Diff([]string{"f-1", "f-2"}, names); diff != "" {
		t.Fatalf("sorted keys mismatch (-want +got):\n%s", diff)
	}

	opts := g.Options("properties.definitionSummary.triggers.0.kind")
	if len(opts) != 2 || opts[0].Value != grid.EmptySentinel || opts[1].Value != "Button" {
		t.Fatalf("trigger kind options = %#v, want (empty) then Button", opts)
	}

	g.Dispatch(grid.FilterSet{Accessor: "properties.definitionSummary.triggers.0.kind", Value: grid.EmptySentinel})
	view = g.View()
	if view.Matched != 1 || view.Rows[0].Key != "f-2" {
		t.Fatalf("sentinel filter kept %d rows, want only f-2", view.Matched)
	}
}

func TestFlowsHiddenIDIsSearchable(t *testing.T) {
	g := Flows.NewGrid(10)
	g.SetRecords(sampleFlows())
	g.Dispatch(grid.SearchChanged{Text: "F-1"})
	if v := g.View(); v.Matched != 1 || v.Rows[0].Key != "f-1" {
		t.Fatalf("search by hidden id matched %d rows", v.Matched)
	}
}

func TestRenderers(t *testing.T) {
	date := DateIn(time.UTC)
	if got := date(grid.String("2025-03-04T05:06:07.123Z"), grid.Row{}); got != "Mar 04 05:06" {
		t.Fatalf("date = %q, want Mar 04 05:06", got)
	}
	if got := date(grid.Undefined(), grid.Row{}); got != "-" {
		t.Fatalf("date(undefined) = %q, want -", got)
	}

	tests := []struct {
		name string
		r    grid.Renderer
		v    grid.Value
		want string
	}{
		{"state started", FlowState, grid.String("Started"), "On"},
		{"state stopped", FlowState, grid.String("Stopped"), "Off"},
		{"state missing", FlowState, grid.Undefined(), "-"},
		{"yes", YesNo, grid.Bool(true), "yes"},
		{"no", YesNo, grid.Bool(false), "no"},
		{"blank", YesNo, grid.Null(), ""},
		{"segment", LastSegment, grid.String("/providers/Microsoft.PowerApps/apis/shared_office365"), "shared_office365"},
		{"segment plain", LastSegment, grid.String("plain"), "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r(tt.v, grid.Row{}); got != tt.want {
				t.Fatalf("render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunDuration(t *testing.T) {
	rows := grid.Materialize([]grid.Record{
		{"properties": map[string]any{"startTime": "2025-01-01T10:00:00Z", "endTime": "2025-01-01T10:03:05Z"}},
		{"properties": map[string]any{"startTime": "2025-01-01T10:00:00Z"}},
	}, Runs.Columns, "")
	if got := RunDuration(grid.Undefined(), rows[0]); got != "3m05s" {
		t.Fatalf("RunDuration = %q, want 3m05s", got)
	}
	if got := RunDuration(grid.Undefined(), rows[1]); got != "-" {
		t.Fatalf("RunDuration = %q, want - for running", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		850 * time.Millisecond:          "850ms",
		42 * time.Second:                "42s",
		2*time.Hour + 4*time.Minute + 9: "2h04m",
	}
	for d, want := range tests {
		if got := FormatDuration(d); got != want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestTriggerRecords(t *testing.T) {
	flow := flowapi.Record{
		"name": "f-1",
		"properties": map[string]any{
			"definitionSummary": map[string]any{
				"triggers": []any{map[string]any{"type": "Recurrence", "metadata": map[string]any{"operationMetadataId": "x"}}},
			},
			"definition": map[string]any{
				"triggers": map[string]any{
					"Recurrence": map[string]any{
						"type":       "Recurrence",
						"recurrence": map[string]any{"frequency": "Day", "interval": float64(1)},
					},
				},
			},
		},
	}
	recs := TriggerRecords(flow)
	if len(recs) != 1 {
		t.Fatalf("TriggerRecords returned %d records, want 1", len(recs))
	}
	if recs[0]["name"] != "Recurrence" || recs[0]["type"] != "Recurrence" || recs[0]["recurrence"] != "1 Day" {
		t.Fatalf("TriggerRecords = %#v", recs[0])
	}
	if got := PrimaryTrigger(flow); got != "Recurrence" {
		t.Fatalf("PrimaryTrigger = %q, want Recurrence", got)
	}
	if got := PrimaryTrigger(flowapi.Record{"name": "bare"}); got != "manual" {
		t.Fatalf("PrimaryTrigger = %q, want manual", got)
	}
}

func TestForKnownKinds(t *testing.T) {
	for _, k := range []state.Kind{state.KindEnvironments, state.KindFlows, state.KindRuns, state.KindTriggerHistories, state.KindConnections} {
		set, ok := For(k)
		if !ok || set.Kind != k {
			t.Fatalf("For(%q) = %v, %v", k, set.Kind, ok)
		}
	}
	if _, ok := For(state.KindFlow); ok {
		t.Fatalf("For(flow) should not return a list set")
	}
}

func TestTriggerRecordsPairsEachTriggerWithItsDefinition(t *testing.T) {
	flow := flowapi.Record{
		"name": "f-2",
		"properties": map[string]any{
			"definitionSummary": map[string]any{
				"triggers": []any{
					map[string]any{"type": "Request", "kind": "Button"},
					map[string]any{"type": "Recurrence"},
				},
			},
			"definition": map[string]any{
				"triggers": map[string]any{
					"manual": map[string]any{"type": "Request", "kind": "Button"},
					"Recurrence": map[string]any{
						"type":       "Recurrence",
						"recurrence": map[string]any{"frequency": "Day", "interval": float64(1)},
					},
				},
			},
		},
	}

	got := TriggerRecords(flow)
	want := []grid.Record{
		{"name": "Recurrence", "type": "Recurrence", "kind": "", "recurrence": "1 Day"},
		{"name": "manual", "type": "Request", "kind": "Button"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("TriggerRecords mismatch (-want +got):\n%s", diff)
	}
	if got := PrimaryTrigger(flow); got != "manual" {
		t.Fatalf("PrimaryTrigger = %q, want manual", got)
	}
}

func TestTriggerRecordsWithoutDefinition(t *testing.T) {
	flow := flowapi.Record{
		"name": "f-3",
		"properties": map[string]any{
			"definitionSummary": map[string]any{
				"triggers": []any{map[string]any{"type": "Request", "kind": "Http"}},
			},
		},
	}
	recs := TriggerRecords(flow)
	if len(recs) != 1 || recs[0]["name"] != "" || recs[0]["kind"] != "Http" {
		t.Fatalf("TriggerRecords = %#v", recs)
	}
	if got := PrimaryTrigger(flow); got != "manual" {
		t.Fatalf("PrimaryTrigger = %q, want manual", got)
	}
}
