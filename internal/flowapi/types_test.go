package flowapi

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeFlow(t *testing.T) {
	rec := Record{
		"name": "f1",
		"properties": map[string]any{
			"displayName": "Nightly export",
			"state":       "Started",
			"definitionSummary": map[string]any{
				"triggers": []any{map[string]any{"type": "Request", "kind": "Button"}},
			},
			"definition": map[string]any{
				"triggers": map[string]any{"zeta": map[string]any{}, "alpha": map[string]any{}},
			},
		},
	}
	flow, err := Decode[Flow](rec)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if !flow.Enabled() {
		t.Fatalf("Enabled = false, want true for Started")
	}
	if flow.Properties.DefinitionSummary.Triggers[0].Kind != "Button" {
		t.Fatalf("trigger kind = %q, want Button", flow.Properties.DefinitionSummary.Triggers[0].Kind)
	}
	if diff := cmp.Diff([]string{"alpha", "zeta"}, flow.TriggerNames()); diff != "" {
		t.Fatalf("TriggerNames mismatch (-want +got):\n%s", diff)
	}
}

func TestTriggerNamesFallback(t *testing.T) {
	if diff := cmp.Diff([]string{"manual"}, (Flow{}).TriggerNames()); diff != "" {
		t.Fatalf("TriggerNames mismatch (-want +got):\n%s", diff)
	}
}

func TestPrimaryTriggerPrefersManual(t *testing.T) {
	tests := []struct {
		name     string
		triggers map[string]any
		want     string
	}{
		{"request", map[string]any{"Recurrence": map[string]any{"type": "Recurrence"}, "manual": map[string]any{"type": "Request"}}, "manual"},
		{"http kind", map[string]any{"a_schedule": map[string]any{"type": "Recurrence"}, "webhook": map[string]any{"type": "HttpWebhook", "kind": "Http"}}, "webhook"},
		{"no manual trigger", map[string]any{"zeta": map[string]any{"type": "Recurrence"}, "alpha": map[string]any{"type": "OpenApiConnection"}}, "alpha"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow, err := Decode[Flow](Record{
				"name":       "f1",
				"properties": map[string]any{"definition": map[string]any{"triggers": tt.triggers}},
			})
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}
			if got := flow.PrimaryTrigger(); got != tt.want {
				t.Fatalf("PrimaryTrigger = %q, want %q", got, tt.want)
			}
		})
	}
	if got := (Flow{}).PrimaryTrigger(); got != "manual" {
		t.Fatalf("PrimaryTrigger = %q, want manual", got)
	}
}

func TestRunHelpers(t *testing.T) {
	run := Run{Properties: RunProperties{Status: "Running", StartTime: "2025-12-13T10:11:12Z"}}
	if !run.Running() {
		t.Fatalf("Running = false, want true")
	}
	if got := run.ParsedStartTime(); !got.Equal(time.Date(2025, 12, 13, 10, 11, 12, 0, time.UTC)) {
		t.Fatalf("ParsedStartTime = %v", got)
	}
	run.Properties.Status = "Succeeded"
	if run.Running() {
		t.Fatalf("Running = true, want false for Succeeded")
	}
}

func TestParseTimeInvalid(t *testing.T) {
	if !ParseTime("").IsZero() || !ParseTime("yesterday").IsZero() {
		t.Fatalf("ParseTime should return zero for invalid input")
	}
}
