package screens

import (
	"fmt"

	"github.com/five82/flowdeck/internal/flowapi"
	"github.com/five82/flowdeck/internal/grid"
)

// TriggerRecords returns one record per trigger of a flow. With an expanded
// definition each record is built from its own properties.definition.triggers
// entry, sorted by name, and recurrence reads "<interval> <frequency>".
// Without one the unnamed properties.definitionSummary.triggers entries are
// used as they are.
func TriggerRecords(flow flowapi.Record) []grid.Record {
	f, err := flowapi.Decode[flowapi.Flow](flow)
	if err == nil && f.Properties.Definition != nil && len(f.Properties.Definition.Triggers) > 0 {
		names := f.TriggerNames()
		out := make([]grid.Record, 0, len(names))
		for _, name := range names {
			def := f.Properties.Definition.Triggers[name]
			rec := grid.Record{
				"name": name,
				"type": def.Type,
				"kind": def.Kind,
			}
			if def.Metadata != nil {
				rec["metadata"] = def.Metadata
			}
			if def.Recurrence != nil && def.Recurrence.Frequency != "" {
				rec["recurrence"] = fmt.Sprintf("%d %s", def.Recurrence.Interval, def.Recurrence.Frequency)
			}
			out = append(out, rec)
		}
		return out
	}

	items, _ := grid.Resolve(flow, "properties.definitionSummary.triggers").Raw().([]any)
	out := make([]grid.Record, 0, len(items))
	for _, item := range items {
		out = append(out, grid.Record{
			"name":     "",
			"type":     grid.Resolve(item, "type").Raw(),
			"kind":     grid.Resolve(item, "kind").Raw(),
			"metadata": grid.Resolve(item, "metadata").Raw(),
		})
	}
	return out
}

// PrimaryTrigger returns the trigger used for manual runs and histories.
func PrimaryTrigger(flow flowapi.Record) string {
	f, err := flowapi.Decode[flowapi.Flow](flow)
	if err != nil {
		return "manual"
	}
	return f.PrimaryTrigger()
}
